package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []string
	warns  []string
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.errors = append(l.errors, msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.warns = append(l.warns, msg) }

func TestHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		ErrCodeInvalidPayload:     http.StatusBadRequest,
		ErrCodeValidationFailed:   http.StatusBadRequest,
		ErrCodeInvalidInterests:   http.StatusBadRequest,
		ErrCodePayloadTooLarge:    http.StatusRequestEntityTooLarge,
		ErrCodeSchemaDrift:        http.StatusInternalServerError,
		ErrCodeArtifactLoadFailed: http.StatusInternalServerError,
		ErrCodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPStatus(code), string(code))
	}
}

func TestNormalize(t *testing.T) {
	t.Run("standard error passes through wrapping", func(t *testing.T) {
		orig := NewValidationFailedError([]string{"x"})
		got := Normalize(fmt.Errorf("wrapped: %w", orig))
		assert.Same(t, orig, got)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := stderrors.New("index out of range")
		got := Normalize(cause)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "index out of range", got.Message)
		assert.Contains(t, got.Trace, "index out of range")
		assert.True(t, stderrors.Is(got, cause))
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_WriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)

	t.Run("invalid payload has only error key", func(t *testing.T) {
		log := &recordingLogger{}
		rec := httptest.NewRecorder()
		NewErrorHandler(log, true).WriteError(rec, req, NewInvalidPayloadError())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]interface{}{"error": "Invalid or empty JSON payload"}, decode(t, rec))
		assert.Len(t, log.warns, 1)
	})

	t.Run("validation lists details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewErrorHandler(&recordingLogger{}, true).WriteError(rec, req,
			NewValidationFailedError([]string{"a", "b"}))

		body := decode(t, rec)
		assert.Equal(t, "Validation failed", body["error"])
		assert.Equal(t, []interface{}{"a", "b"}, body["details"])
	})

	t.Run("schema drift carries diagnostics", func(t *testing.T) {
		log := &recordingLogger{}
		rec := httptest.NewRecorder()
		NewErrorHandler(log, true).WriteError(rec, req,
			NewSchemaDriftError("Feature shape mismatch", map[string]interface{}{"num_dim": 11}, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Feature shape mismatch", body["error"])
		assert.Equal(t, float64(11), body["details"].(map[string]interface{})["num_dim"])
		assert.Len(t, log.errors, 1)
	})

	t.Run("traceback gated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewErrorHandler(&recordingLogger{}, true).WriteError(rec, req, stderrors.New("boom"))
		body := decode(t, rec)
		assert.Equal(t, "boom", body["error"])
		assert.NotEmpty(t, body["traceback"])

		rec = httptest.NewRecorder()
		NewErrorHandler(&recordingLogger{}, false).WriteError(rec, req, stderrors.New("boom"))
		body = decode(t, rec)
		_, hasTrace := body["traceback"]
		assert.False(t, hasTrace)
	})
}
