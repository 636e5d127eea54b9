package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetAppError(t *testing.T) {
	t.Run("found through fmt wrapping", func(t *testing.T) {
		cause := io.ErrUnexpectedEOF
		err := fmt.Errorf("decode: %w", NewValidationError("bad body").WithCause(cause))

		appErr := GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrorTypeValidation, appErr.Type)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, "VALIDATION: bad body (caused by: unexpected EOF)", appErr.Error())
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Nil(t, GetAppError(io.EOF))
	})
}

func TestErrorHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantLevel  zapcore.Level
	}{
		{"validation", NewValidationError("bad body"), http.StatusBadRequest, "VALIDATION", zapcore.WarnLevel},
		{"unavailable", NewUnavailableError("graph"), http.StatusServiceUnavailable, "UNAVAILABLE", zapcore.ErrorLevel},
		{"wrapped validation", fmt.Errorf("node: %w", NewValidationError("bad label")), http.StatusBadRequest, "VALIDATION", zapcore.WarnLevel},
		{"plain", io.EOF, http.StatusInternalServerError, "INTERNAL", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := NewErrorHandler(zap.New(core), false)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/nodes", nil)

			h.Handle(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.True(t, body.Error)
			assert.Equal(t, tt.wantType, body.Type)
			assert.Empty(t, body.Details)

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.wantLevel, logs.All()[0].Level)
		})
	}
}

func TestErrorHandler_Handle_IncludesDetails(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	w := httptest.NewRecorder()
	w.Header().Set("X-Request-ID", "req-1")

	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/graph", nil),
		NewUnavailableError("graph-api").WithDetails(map[string]interface{}{"reason": "too many failures"}))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "service 'graph-api' is unavailable", body.Message)
	assert.Equal(t, "too many failures", body.Details["reason"])
	assert.Equal(t, "req-1", body.RequestID)
}

func TestErrorHandler_Middleware_RecoversPanics(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
