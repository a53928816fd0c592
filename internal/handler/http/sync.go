package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type syncResponse struct {
	models.SyncReport
	Error string `json:"error,omitempty"`
}

type statsResponse struct {
	models.Stats
	SyncInProgress bool  `json:"sync_in_progress"`
	SyncRequested  int64 `json:"sync_requested"`
	SyncExecuted   int64 `json:"sync_executed"`

	Addresses *models.AddressQueueStats `json:"addresses,omitempty"`
}

// runSync runs one sync cycle and returns its report. A report is written
// even when one of the tables failed, together with the error text.
func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	report, err := h.services.SyncService.Sync(r.Context())
	if errors.Is(err, service.ErrSyncInProgress) {
		utils.WriteError(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.runSync").Msg("sync failed")
		utils.WriteJSON(w, syncResponse{SyncReport: report, Error: err.Error()}, statusFromError(err))
		return
	}

	utils.WriteJSON(w, syncResponse{SyncReport: report}, http.StatusOK)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	stats, err := h.services.CatalogService.Stats(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStats").Msg("error reading local stats")
		utils.WriteError(w, "error reading local stats", statusFromError(err))
		return
	}

	syncSvc := h.services.SyncService
	resp := statsResponse{
		Stats:          stats,
		SyncInProgress: syncSvc.InProgress(),
		SyncRequested:  syncSvc.Requested(),
		SyncExecuted:   syncSvc.Executed(),
	}
	if h.addresses != nil {
		addressStats := h.addresses.Stats()
		resp.Addresses = &addressStats
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}
