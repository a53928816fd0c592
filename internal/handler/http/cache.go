package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type cacheStatusResponse struct {
	models.CacheStatus
	State string `json:"state"`
}

type cacheReadyResponse struct {
	Ready bool   `json:"ready"`
	State string `json:"state"`
}

func (h *Handler) getCacheStatus(w http.ResponseWriter, r *http.Request) {
	cache := h.services.CacheService
	utils.WriteJSON(w, cacheStatusResponse{
		CacheStatus: cache.CurrentStatus(),
		State:       cache.State().String(),
	}, http.StatusOK)
}

func (h *Handler) getCacheReady(w http.ResponseWriter, r *http.Request) {
	cache := h.services.CacheService
	utils.WriteJSON(w, cacheReadyResponse{
		Ready: cache.IsReadyForOffline(),
		State: cache.State().String(),
	}, http.StatusOK)
}

// startDownload starts a download session in the background and answers 202.
// Progress is observed through GET /api/cache/status.
func (h *Handler) startDownload(w http.ResponseWriter, r *http.Request) {
	cache := h.services.CacheService
	if cache.State() == service.DownloadDownloading {
		utils.WriteError(w, service.ErrDownloadInProgress.Error(), http.StatusConflict)
		return
	}

	h.runInBackground(r, "*Handler.startDownload", cache.StartDownload)
	utils.WriteJSON(w, cacheStatusResponse{
		CacheStatus: cache.CurrentStatus(),
		State:       cache.State().String(),
	}, http.StatusAccepted)
}

func (h *Handler) refreshCache(w http.ResponseWriter, r *http.Request) {
	h.runInBackground(r, "*Handler.refreshCache", h.services.CacheService.RefreshCache)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.CacheService.ClearCache(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.clearCache").Msg("error clearing cache")
		utils.WriteError(w, "error clearing cache", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// runInBackground runs fn in the handler's background context, carrying the
// request logger and trace id so the session keeps both.
func (h *Handler) runInBackground(r *http.Request, funcName string, fn func(context.Context) error) {
	log := logger.FromRequest(r)
	ctx := log.WithContext(h.background)
	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok {
		ctx = utils.WithTraceID(ctx, traceID)
	}

	go func() {
		err := fn(ctx)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrDownloadInProgress), errors.Is(err, context.Canceled):
			log.Debug().Err(err).Str("func", funcName).Msg("download session not completed")
		default:
			log.Err(err).Str("func", funcName).Msg("download session failed")
		}
	}()
}
