package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	apperrors "career-predictor/internal/common/errors"
	"career-predictor/internal/common/logger"
	"career-predictor/internal/models"
)

const maxBodyBytes = 1 << 20

// Predictor is the prediction pipeline as seen by the HTTP layer.
type Predictor interface {
	PredictRaw(ctx context.Context, body []byte) (*models.PredictionResult, error)
	Health() models.HealthResponse
}

type Handler struct {
	svc    Predictor
	errors *apperrors.ErrorHandler
	log    logger.Logger
}

func NewHandler(svc Predictor, log logger.Logger, exposeTraceback bool) *Handler {
	log = logger.ForComponent(log, "api")
	return &Handler{
		svc:    svc,
		errors: apperrors.NewErrorHandler(log, exposeTraceback),
		log:    log,
	}
}

// Predict handles POST /predict.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.errors.WriteError(w, r, apperrors.NewPayloadTooLargeError(tooLarge.Limit))
		return
	}
	if err != nil {
		// an unreadable body is treated as an absent one
		h.log.Debug("failed to read request body", map[string]interface{}{
			"requestId": RequestIDFromContext(r.Context()),
			"error":     err.Error(),
		})
		body = nil
	}

	result, err := h.svc.PredictRaw(r.Context(), body)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, result)
}

// Health handles GET /health. It always answers 200 once the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, h.svc.Health())
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
}

func tooManyRequests(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too Many Requests"})
}
