package handler

import (
	"context"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/handler/http"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the control API handler when a listen address is
// configured. background is the engine context in which downloads started
// over the API run.
func NewHandlers(
	background context.Context,
	services *service.ClientServices,
	addresses http.AddressLookup,
	buildInfo models.AppBuildInfo,
	cfg config.ClientServer,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(background, services, addresses, buildInfo, logger),
	}, nil
}
