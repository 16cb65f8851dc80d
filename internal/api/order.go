package api

import (
	"fmt"
	"net/http"

	"littlelemon/internal/order"
	"littlelemon/internal/utils"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	for _, base := range []string{"/orders", "/cart/orders"} {
		r.Get(base, h.List)
		r.Post(base, h.Create)
	}
	r.Get("/orders/{id}", h.Get)
	r.Put("/orders/{id}", h.Replace)
	r.Patch("/orders/{id}", h.Update)
	r.Delete("/orders/{id}", h.Delete)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.List(r.Context(), callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order.ToListView(listing))
}

// Create handles POST /api/orders. The caller's cart becomes the order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.svc.Create(r.Context(), callerFrom(r), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, fmt.Sprintf("order number %06d placed.", o.ID))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	o, err := h.svc.Get(r.Context(), callerFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order.ToDetailView(o))
}

func (h *OrderHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Replace(r.Context(), callerFrom(r), id, payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "order status successfully updated")
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), callerFrom(r), id, payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "order status successfully updated")
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), callerFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("order %d deleted", id))
}

func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSONError(w, fmt.Sprintf("order %s not found", chi.URLParam(r, "id")), http.StatusNotFound)
	}
	return id, ok
}
