package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
)

// identify resolves the caller from the Authorization header.
// No header means an anonymous, local-only caller; a header that is present
// but malformed, invalid or expired is rejected.
func (s *Server) identify(authHeader string) (collectionsync.Identity, error) {
	if authHeader == "" {
		return collectionsync.Identity{}, nil
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return collectionsync.Identity{}, huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.tokens.VerifyAccessToken(strings.TrimSpace(token))
	if err != nil {
		return collectionsync.Identity{}, err
	}

	return collectionsync.Identity{UserID: claims.UserID}, nil
}
