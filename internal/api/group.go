package api

import (
	"fmt"
	"net/http"

	"littlelemon/internal/access"
	"littlelemon/internal/user"
	"littlelemon/internal/utils"

	"github.com/go-chi/chi/v5"
)

// groupRoute binds a URL segment to a stored group name and the wording
// used in responses.
type groupRoute struct {
	slug     string
	group    string
	addedMsg string
	gonedMsg string
}

var groupRoutes = []groupRoute{
	{
		slug:     "manager",
		group:    access.GroupManager,
		addedMsg: "User '%s' added to Manager Group",
		gonedMsg: "Successfully removed '%s' from Manager group.",
	},
	{
		slug:     "delivery-crew",
		group:    access.GroupDeliveryCrew,
		addedMsg: "User '%s' added to Delivery Crew group",
		gonedMsg: "Successfully removed '%s' from Delivery Crew group.",
	},
}

type GroupHandler struct {
	svc user.Service
}

func NewGroupHandler(svc user.Service) *GroupHandler {
	return &GroupHandler{svc: svc}
}

func (h *GroupHandler) RegisterRoutes(r chi.Router) {
	for _, g := range groupRoutes {
		base := "/groups/" + g.slug + "/users"
		r.Get(base, h.list(g))
		r.Post(base, h.assign(g))
		r.Delete(base+"/{id}", h.remove(g))
	}
}

func (h *GroupHandler) list(g groupRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.svc.ListGroup(r.Context(), callerFrom(r), g.group)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user.ToSummaries(users))
	}
}

func (h *GroupHandler) assign(g groupRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ref := user.Ref{
			ID:       optionalString(payload, "id"),
			Username: optionalString(payload, "username"),
		}
		u, err := h.svc.AssignToGroup(r.Context(), callerFrom(r), g.group, ref)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusCreated, fmt.Sprintf(g.addedMsg, u.Username))
	}
}

func (h *GroupHandler) remove(g groupRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFrom(r)
		if !caller.Is(access.Manager) {
			writeError(w, r, user.ErrForbidden)
			return
		}

		id, ok := pathID(r)
		if !ok {
			utils.WriteJSONError(w, fmt.Sprintf("No user found with id: '%s'", chi.URLParam(r, "id")), http.StatusNotFound)
			return
		}

		u, err := h.svc.RemoveFromGroup(r.Context(), caller, g.group, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, fmt.Sprintf(g.gonedMsg, u.Username))
	}
}
