package http

import (
	"context"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

// AddressLookup returns addresses resolved by the address queue.
type AddressLookup interface {
	Address(id string) (string, bool)
	Stats() models.AddressQueueStats
}

type Handler struct {
	// background outlives requests; downloads started over the API run in it.
	background context.Context

	services  *service.ClientServices
	addresses AddressLookup
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(
	background context.Context,
	services *service.ClientServices,
	addresses AddressLookup,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		background: background,
		services:   services,
		addresses:  addresses,
		buildInfo:  buildInfo,
		logger:     logger,
	}
}
