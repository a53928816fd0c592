package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const geocoderUserAgent = "go-catalog-mirror/1.0"

type nominatimGeocoder struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewNominatimGeocoder constructs a [Geocoder] for a Nominatim-compatible
// reverse geocoding endpoint at adapterCfg.GeocoderAddress.
func NewNominatimGeocoder(adapterCfg config.ClientAdapter, log *logger.Logger) (Geocoder, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.GeocoderAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	client.SetHeader("User-Agent", geocoderUserAgent)

	return &nominatimGeocoder{client: client, logger: log}, nil
}

func (n *nominatimGeocoder) Reverse(ctx context.Context, latitude, longitude float64) (string, error) {
	var result models.ReverseGeocodeResponse

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    strconv.FormatFloat(latitude, 'f', -1, 64),
			"lon":    strconv.FormatFloat(longitude, 'f', -1, 64),
		}).
		SetResult(&result).
		Get("/reverse")
	if err != nil {
		return "", mapTransportError("reverse geocode request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	address := strings.TrimSpace(result.DisplayName)
	if result.Error != "" || address == "" {
		return "", fmt.Errorf("%w: %s", ErrNoAddress, result.Error)
	}
	return address, nil
}
