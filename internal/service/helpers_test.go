package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/mock"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

func newTestRemote(t *testing.T) *mock.MockRemoteAdapter {
	t.Helper()
	return mock.NewMockRemoteAdapter(gomock.NewController(t))
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }

func record(id string) models.CatalogRecord {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.CatalogRecord{
		ID:        id,
		Name:      "Restaurant " + id,
		Category:  "cafe",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func records(prefix string, from, to int) []models.CatalogRecord {
	out := make([]models.CatalogRecord, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, record(prefix+strconv.Itoa(i)))
	}
	return out
}
