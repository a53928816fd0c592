package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
)

// errorStatusMap is checked in order; the first match wins.
var errorStatusMap = []struct {
	target error
	status int
}{
	{ErrInvalidPageParameter, http.StatusBadRequest},
	{ErrInvalidLimitParameter, http.StatusBadRequest},
	{ErrEmptySearchQuery, http.StatusBadRequest},
	{ErrAddressNotResolved, http.StatusNotFound},

	{service.ErrInvalidPage, http.StatusBadRequest},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrSyncInProgress, http.StatusConflict},
	{service.ErrDownloadInProgress, http.StatusConflict},
	{service.ErrLoadInProgress, http.StatusConflict},

	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrFavoriteNotFound, http.StatusNotFound},
	{store.ErrEntryNotFound, http.StatusNotFound},
	{store.ErrRecordReferenced, http.StatusConflict},

	{adapter.ErrTransient, http.StatusServiceUnavailable},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrForbidden, http.StatusBadGateway},
	{adapter.ErrNotFound, http.StatusBadGateway},
	{adapter.ErrBadRequest, http.StatusBadGateway},
	{adapter.ErrConflict, http.StatusBadGateway},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
