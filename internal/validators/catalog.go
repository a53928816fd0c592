package validators

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MKhiriev/go-catalog-mirror/models"
)

const (
	FieldID           = "id"
	FieldName         = "name"
	FieldCoordinates  = "coordinates"
	FieldRestaurantID = "restaurant_id"
	FieldUserID       = "user_id"
)

var (
	recordFields   = []string{FieldID, FieldName, FieldCoordinates}
	favoriteFields = []string{FieldID, FieldRestaurantID, FieldUserID}
)

type CatalogValidator struct {
}

func NewCatalogValidator() Validator {
	return &CatalogValidator{}
}

// Validate checks a CatalogRecord or a FavoriteRecord. Without fields every
// rule of the type is applied and all violations are joined.
func (v *CatalogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CatalogRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.CatalogRecord:
		return v.validateRecord(ctx, *value, fields...)

	case models.FavoriteRecord:
		return v.validateFavorite(ctx, value, fields...)
	case *models.FavoriteRecord:
		return v.validateFavorite(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CatalogValidator) validateRecord(_ context.Context, record models.CatalogRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = recordFields
	}

	var errs []error
	for _, field := range fields {
		switch field {
		case FieldID:
			if isBlank(record.ID) {
				errs = append(errs, ErrEmptyID)
			}
		case FieldName:
			if isBlank(record.Name) {
				errs = append(errs, ErrEmptyName)
			}
		case FieldCoordinates:
			if record.Latitude != nil && !inRange(*record.Latitude, 90) {
				errs = append(errs, ErrInvalidLatitude)
			}
			if record.Longitude != nil && !inRange(*record.Longitude, 180) {
				errs = append(errs, ErrInvalidLongitude)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return errors.Join(errs...)
}

func (v *CatalogValidator) validateFavorite(_ context.Context, favorite models.FavoriteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = favoriteFields
	}

	var errs []error
	for _, field := range fields {
		switch field {
		case FieldID:
			if isBlank(favorite.ID) {
				errs = append(errs, ErrEmptyID)
			}
		case FieldRestaurantID:
			if isBlank(favorite.RestaurantID) {
				errs = append(errs, ErrEmptyRestaurantID)
			}
		case FieldUserID:
			if isBlank(favorite.UserID) {
				errs = append(errs, ErrEmptyUserID)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return errors.Join(errs...)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}
