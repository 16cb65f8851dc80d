package api

import (
	"net/http"

	"littlelemon/internal/user"
)

type AuthHandler struct {
	svc user.Service
}

func NewAuthHandler(svc user.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /auth/users. New accounts join the Customer group.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), user.RegisterInput{
		Username:  stringField(payload, "username"),
		Password:  stringField(payload, "password"),
		Email:     stringField(payload, "email"),
		FirstName: stringField(payload, "first_name"),
		LastName:  stringField(payload, "last_name"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user.ToSummary(u))
}

// Login handles POST /auth/token/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.svc.Login(r.Context(), stringField(payload, "username"), stringField(payload, "password"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"auth_token": token})
}
