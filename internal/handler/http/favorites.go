package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type favoritesResponse struct {
	Favorites []models.FavoriteRecord `json:"favorites"`
	Length    int                     `json:"length"`
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	favorites, err := h.services.FavoriteService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listFavorites").Msg("error listing favorites")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, favoritesResponse{Favorites: favorites, Length: len(favorites)}, http.StatusOK)
}

// addFavorite marks the record as a favorite locally; the row is pushed on
// the next sync.
func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	recordID := chi.URLParam(r, "id")

	favorite, err := h.services.FavoriteService.Add(r.Context(), recordID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addFavorite").Str("record_id", recordID).Msg("error adding favorite")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, favorite, http.StatusOK)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	recordID := chi.URLParam(r, "id")

	if err := h.services.FavoriteService.Remove(r.Context(), recordID); err != nil {
		log.Err(err).Str("func", "*Handler.removeFavorite").Str("record_id", recordID).Msg("error removing favorite")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
