package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"littlelemon/internal/access"
	"littlelemon/internal/utils"

	"github.com/go-chi/chi/v5"
)

// CallerResolver loads the roles of an authenticated user.
type CallerResolver interface {
	Resolve(ctx context.Context, userID uint) (access.Caller, error)
}

// RequireCaller rejects anonymous requests and stores the resolved caller
// in the request context.
func RequireCaller(resolver CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.WriteJSONError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
				return
			}

			caller, err := resolver.Resolve(r.Context(), userID)
			if errors.Is(err, access.ErrUnknownUser) {
				utils.WriteJSONError(w, "User not found", http.StatusUnauthorized)
				return
			}
			if err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithCaller(r.Context(), caller)))
		})
	}
}

func callerFrom(r *http.Request) access.Caller {
	c, _ := access.CallerFrom(r.Context())
	return c
}

// pathID parses the {id} URL parameter. ok is false for anything that is
// not a positive integer.
func pathID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
