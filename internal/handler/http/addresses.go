package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
)

type addressResponse struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if h.addresses != nil {
		if address, ok := h.addresses.Address(id); ok {
			utils.WriteJSON(w, addressResponse{ID: id, Address: address}, http.StatusOK)
			return
		}
	}

	utils.WriteError(w, ErrAddressNotResolved.Error(), http.StatusNotFound)
}
