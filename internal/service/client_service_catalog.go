package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const defaultSearchLimit = 50

type clientCatalogService struct {
	storages *store.ClientStorages
}

// NewClientCatalogService creates a read-only view over the local mirror.
func NewClientCatalogService(storages *store.ClientStorages) ClientCatalogService {
	return &clientCatalogService{storages: storages}
}

func (c *clientCatalogService) Records(ctx context.Context, limit, offset int) ([]models.CatalogRecord, error) {
	return c.storages.Catalog.GetRecords(ctx, limit, offset)
}

func (c *clientCatalogService) Search(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return c.storages.Catalog.SearchRecords(ctx, strings.TrimSpace(query), limit)
}

func (c *clientCatalogService) Record(ctx context.Context, id string) (models.CatalogRecord, error) {
	return c.storages.Catalog.GetRecord(ctx, id)
}

func (c *clientCatalogService) Stats(ctx context.Context) (models.Stats, error) {
	return c.storages.Stats(ctx)
}
