package auth

import (
	"net/http"
	"strings"
)

// TokenCookie is read when a client sends no Authorization header.
const TokenCookie = "auth_token"

// tokenSchemes are the Authorization schemes accepted, compared without
// regard to case. "Token" is the scheme clients of the login endpoint use.
var tokenSchemes = []string{"token", "bearer"}

// ExtractAccessToken returns the raw token of r, or "" when none was sent.
// The Authorization header wins over the cookie.
func ExtractAccessToken(r *http.Request) string {
	if scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " "); ok {
		for _, s := range tokenSchemes {
			if strings.EqualFold(scheme, s) {
				return strings.TrimSpace(token)
			}
		}
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
