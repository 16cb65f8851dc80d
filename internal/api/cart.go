package api

import (
	"net/http"

	"littlelemon/internal/cart"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart/menu-items", h.List)
	r.Post("/cart/menu-items", h.Add)
	r.Delete("/cart/menu-items", h.Clear)
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context(), callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart.ToViews(entries))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.svc.Add(r.Context(), callerFrom(r), payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "cart updated")
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.Clear(r.Context(), callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}
