package api

import (
	"context"
	"fmt"
	"net/http"

	"littlelemon/internal/access"
	"littlelemon/internal/menu"
	"littlelemon/internal/utils"

	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	svc menu.Service
}

func NewMenuHandler(svc menu.Service) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu-items", h.List)
	r.Post("/menu-items", h.Create)
	r.Get("/menu-items/{id}", h.Get)
	r.Put("/menu-items/{id}", h.Replace)
	r.Patch("/menu-items/{id}", h.Update)
	r.Delete("/menu-items/{id}", h.Delete)
}

// List handles GET /api/menu-items?ordering=-price,title&search=<category>.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.List(r.Context(), q.Get("ordering"), q.Get("search"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu.ToViews(items))
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.Create(r.Context(), callerFrom(r), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, menu.ToView(item))
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSONError(w, fmt.Sprintf("no MenuItem with id %s", chi.URLParam(r, "id")), http.StatusNotFound)
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu.ToView(item))
}

func (h *MenuHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.svc.Replace, "Menu item '%s' successfully updated")
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.svc.Update, "Menu item '%s' updated")
}

type menuWrite func(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*menu.MenuItem, error)

func (h *MenuHandler) write(w http.ResponseWriter, r *http.Request, op menuWrite, format string) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSONError(w, fmt.Sprintf("Menu item '%s' does not exist", chi.URLParam(r, "id")), http.StatusNotFound)
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := op(r.Context(), callerFrom(r), id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf(format, item.Title))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSONError(w, "Menu item does not exist.", http.StatusNotFound)
		return
	}

	if err := h.svc.Delete(r.Context(), callerFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Menu item deleted")
}
