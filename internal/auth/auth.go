// Package auth models the external identity provider as a narrow port: it
// resolves a request to an opaque user identifier or to nothing at all.
package auth

import (
	"net/http"
	"strings"
)

// Identity resolves the authenticated user for a request. An empty string
// means the request carries no valid identity.
type Identity interface {
	UserID(r *http.Request) string
}

// TokenIdentity maps opaque bearer tokens to user identifiers. It stands in
// for a managed auth provider; the mapping is loaded once at startup and
// read-only afterwards, so lookups need no locking.
type TokenIdentity struct {
	tokens map[string]string
}

// NewTokenIdentity creates an identity from a token -> userID mapping.
func NewTokenIdentity(tokens map[string]string) *TokenIdentity {
	return &TokenIdentity{tokens: tokens}
}

// UserID extracts the bearer token from the Authorization header and
// resolves it. Unknown or missing tokens resolve to "".
func (t *TokenIdentity) UserID(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return ""
	}
	return t.tokens[token]
}

// ParseTokenPairs parses "token:user,token2:user2" from configuration into
// a token mapping. Malformed pairs are skipped.
func ParseTokenPairs(s string) map[string]string {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		token, user, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" || user == "" {
			continue
		}
		tokens[token] = user
	}
	return tokens
}
