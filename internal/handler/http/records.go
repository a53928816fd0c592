package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type recordsPageResponse struct {
	Items   []models.CatalogRecord `json:"items"`
	Page    int                    `json:"page"`
	HasMore bool                   `json:"has_more"`
}

type recordsResponse struct {
	Items  []models.CatalogRecord `json:"items"`
	Length int                    `json:"length"`
}

// getRecordsPage drives the paginated loader. Page 1 applies the search and
// category filter and replaces the working set; later pages are merged into
// it under the filter already in effect. The whole working set is returned.
func (h *Handler) getRecordsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	query := r.URL.Query()

	page, err := positiveIntParam(query, "page", 1, ErrInvalidPageParameter)
	if err != nil {
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	loader := h.services.LoaderService
	if page == 1 {
		err = loader.SetFilter(ctx, strings.TrimSpace(query.Get("search")), strings.TrimSpace(query.Get("category")))
	} else {
		err = loader.LoadPage(ctx, page)
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecordsPage").Int("page", page).Msg("error loading page")
		utils.WriteError(w, "error loading page: "+err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, recordsPageResponse{
		Items:   h.withAddresses(loader.Items()),
		Page:    loader.CurrentPage(),
		HasMore: loader.HasMore(),
	}, http.StatusOK)
}

// searchRecords searches the local mirror, so it works offline.
func (h *Handler) searchRecords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	query := r.URL.Query()

	text := strings.TrimSpace(query.Get("q"))
	if text == "" {
		utils.WriteError(w, ErrEmptySearchQuery.Error(), http.StatusBadRequest)
		return
	}
	limit, err := positiveIntParam(query, "limit", 0, ErrInvalidLimitParameter)
	if err != nil {
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	records, err := h.services.CatalogService.Search(r.Context(), text, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.searchRecords").Msg("error searching local records")
		utils.WriteError(w, "error searching local records", statusFromError(err))
		return
	}

	utils.WriteJSON(w, recordsResponse{Items: h.withAddresses(records), Length: len(records)}, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	record, err := h.services.CatalogService.Record(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecord").Str("id", id).Msg("error reading local record")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.withAddresses([]models.CatalogRecord{record})[0], http.StatusOK)
}

// withAddresses fills Address from the address queue for records that do not
// carry one. The input slice is not modified.
func (h *Handler) withAddresses(records []models.CatalogRecord) []models.CatalogRecord {
	out := make([]models.CatalogRecord, len(records))
	copy(out, records)
	if h.addresses == nil {
		return out
	}

	for i := range out {
		if out[i].Address != nil {
			continue
		}
		if address, ok := h.addresses.Address(out[i].ID); ok {
			out[i].Address = &address
		}
	}
	return out
}

func positiveIntParam(query url.Values, name string, fallback int, invalid error) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%w: %q", invalid, raw)
	}
	return value, nil
}
