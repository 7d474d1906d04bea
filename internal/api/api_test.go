package api

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/pagetrail/pagetrail-server/internal/auth"
	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
	"github.com/pagetrail/pagetrail-server/internal/service"
	"github.com/pagetrail/pagetrail-server/internal/store"
	"github.com/pagetrail/pagetrail-server/internal/store/sqlite"
	"github.com/pagetrail/pagetrail-server/internal/validation"
)

// testEnvelope mirrors the response envelope with a typed payload.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details"`
}

type testServer struct {
	*Server
	api    humatest.TestAPI
	tokens *auth.TokenService
	local  *store.Store
	remote *sqlite.Store
}

func setupTestServer(t *testing.T, configure ...func(*Options)) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	local, err := store.NewInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	remote, err := sqlite.Open(filepath.Join(t.TempDir(), "remote.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = remote.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	collections := service.NewCollections(collectionsync.New(local, remote, logger))
	services := &Services{
		Library:   service.NewLibraryService(collections, validation.New(), logger),
		Analytics: service.NewAnalyticsService(collections, logger),
	}

	opts := Options{Cache: local, Remote: remote}
	for _, fn := range configure {
		fn(&opts)
	}

	s := NewServer(services, tokens, opts, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.API()),
		tokens: tokens,
		local:  local,
		remote: remote,
	}
}

// authHeader issues a token for userID and returns it as a request header.
func (ts *testServer) authHeader(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := ts.tokens.GenerateAccessToken(userID, userID+"@example.com")
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

// createBook adds a book through the API and returns it.
func (ts *testServer) createBook(t *testing.T, header, title string, totalPages int) BookResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/books", header, map[string]any{
		"title":      title,
		"author":     "Author of " + title,
		"totalPages": totalPages,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	env := decode[MutationResponse](t, resp.Body.Bytes())
	require.True(t, env.Data.Found)
	require.NotNil(t, env.Data.Book)
	return *env.Data.Book
}

func (ts *testServer) remoteCount(t *testing.T, userID string) int {
	t.Helper()
	n, err := ts.remote.CountBooks(context.Background(), userID)
	require.NoError(t, err)
	return n
}

func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}
