package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/validators"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

// mapTransportError wraps a failure that happened before any response was
// received. Such failures are always transient.
func mapTransportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", ErrTransient, resp.StatusCode(), body)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrTransient, resp.StatusCode(), body)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}

// validateRecords drops rows that cannot be mirrored and logs each one.
func validateRecords(log *logger.Logger, records []models.CatalogRecord) []models.CatalogRecord {
	valid := records[:0]
	for _, record := range records {
		if err := validateRecord(record); err != nil {
			log.Warn().Err(err).
				Str("func", "adapter.validateRecords").
				Str("id", record.ID).
				Msg("skipping malformed catalog row")
			continue
		}
		valid = append(valid, record)
	}
	return valid
}

var rowValidator = validators.NewCatalogValidator()

func validateRecord(record models.CatalogRecord) error {
	if err := rowValidator.Validate(context.Background(), record); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}
	return nil
}

func validateFavorites(log *logger.Logger, favorites []models.FavoriteRecord) []models.FavoriteRecord {
	valid := favorites[:0]
	for _, favorite := range favorites {
		err := rowValidator.Validate(context.Background(), favorite, validators.FieldRestaurantID, validators.FieldUserID)
		if err != nil {
			log.Warn().Err(err).
				Str("func", "adapter.validateFavorites").
				Str("id", favorite.ID).
				Msg("skipping malformed favorite row")
			continue
		}
		valid = append(valid, favorite)
	}
	return valid
}
