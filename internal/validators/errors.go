package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID           = errors.New("id is required")
	ErrEmptyName         = errors.New("name is required")
	ErrInvalidLatitude   = errors.New("latitude must be within [-90, 90]")
	ErrInvalidLongitude  = errors.New("longitude must be within [-180, 180]")
	ErrEmptyRestaurantID = errors.New("restaurant id is required")
	ErrEmptyUserID       = errors.New("user id is required")
)
