package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/pagetrail/pagetrail-server/internal/errors"
)

func TestWrap(t *testing.T) {
	data, err := json.Marshal(Wrap(map[string]string{"id": "book-1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1,"success":true,"data":{"id":"book-1"}}`, string(data))
}

func TestWrap_NilData(t *testing.T) {
	data, err := json.Marshal(Wrap(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1,"success":true,"data":null}`, string(data))
}

func TestFail(t *testing.T) {
	data, err := json.Marshal(Fail(domainerrors.CodeValidation, "validation failed", map[string]string{"title": "is required"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"v": 1,
		"success": false,
		"error": "validation failed",
		"code": "VALIDATION",
		"details": {"title": "is required"}
	}`, string(data))
}

func TestTooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	TooManyRequests(w, "slow down", logger)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "RATE_LIMITED", result.Code)
	assert.Equal(t, "slow down", result.Error)
}

func TestInternalError(t *testing.T) {
	w := httptest.NewRecorder()

	InternalError(w, "boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var result ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "INTERNAL", result.Code)
}
