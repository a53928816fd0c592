package models

// ReverseGeocodeResponse is the subset of a Nominatim reverse lookup
// response used by the geocoder.
type ReverseGeocodeResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}
