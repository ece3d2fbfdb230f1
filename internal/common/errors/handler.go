// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
)

// ErrorHandler turns errors into JSON responses.
type ErrorHandler struct {
	logger          Logger
	exposeTraceback bool
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger, exposeTraceback bool) *ErrorHandler {
	return &ErrorHandler{logger: logger, exposeTraceback: exposeTraceback}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// Body renders the response body for a StandardError:
//
//	{"error": msg}                       payload / interests errors
//	{"error": msg, "details": [...]}     validation errors
//	{"error": msg, "details": {...}}     schema drift
//	{"error": msg, "traceback": "..."}   unexpected errors
func (h *ErrorHandler) Body(stdErr *StandardError) map[string]interface{} {
	body := map[string]interface{}{"error": stdErr.Message}
	switch stdErr.Code {
	case ErrCodeValidationFailed, ErrCodeSchemaDrift:
		body["details"] = stdErr.Details
	case ErrCodeInternal:
		if h.exposeTraceback {
			body["traceback"] = stdErr.Trace
		}
	}
	return body
}

// WriteError logs err and writes it to w.
func (h *ErrorHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"status":        status,
		"path":          r.URL.Path,
	}
	if stdErr.Details != nil {
		fields["details"] = stdErr.Details
	}
	if status >= http.StatusInternalServerError {
		if stdErr.Cause != nil {
			fields["cause"] = stdErr.Cause
		}
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Warn("request rejected", fields)
	}

	WriteJSON(w, status, h.Body(stdErr))
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
