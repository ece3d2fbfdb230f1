// Package predictor implements the /predict pipeline: payload validation,
// feature assembly against the loaded artifacts, and inference.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"time"

	"career-predictor/internal/artifacts"
	apperrors "career-predictor/internal/common/errors"
	"career-predictor/internal/common/logger"
	"career-predictor/internal/common/metrics"
	"career-predictor/internal/common/observability"
	"career-predictor/internal/models"
	"career-predictor/pkg/registry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	outcomeSuccess = "success"

	heuristicWarning = "Classifier does not report its expected input width; features were stacked using a heuristic"
)

type Service struct {
	validator  *Validator
	assembler  *Assembler
	inferencer *Inferencer

	sklearnVersion  string
	expectedVersion string

	log logger.Logger
	obs *observability.Observability
}

// NewService wires the pipeline over an already loaded bundle. bundle and reg
// are shared read-only across requests.
func NewService(reg *registry.Registry, bundle *artifacts.Bundle, expectedVersion string,
	log logger.Logger, obs *observability.Observability) *Service {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Service{
		validator:       NewValidator(reg),
		assembler:       NewAssembler(reg, bundle),
		inferencer:      NewInferencer(bundle),
		sklearnVersion:  bundle.SklearnVersion(),
		expectedVersion: expectedVersion,
		log:             logger.ForComponent(log, "predictor"),
		obs:             obs,
	}
}

// ParsePayload decodes a request body. Anything but a non-empty JSON object
// is ErrInvalidPayload.
func ParsePayload(body []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrInvalidPayload
	}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, ErrInvalidPayload
	}
	payload, ok := v.(map[string]interface{})
	if !ok || len(payload) == 0 {
		return nil, ErrInvalidPayload
	}
	return payload, nil
}

// PredictRaw parses body and runs Predict.
func (s *Service) PredictRaw(ctx context.Context, body []byte) (*models.PredictionResult, error) {
	payload, err := ParsePayload(body)
	if err != nil {
		return nil, s.fail(ctx, err, time.Now())
	}
	return s.Predict(ctx, payload)
}

// Predict runs validate, assemble and infer. Errors are *apperrors.StandardError.
func (s *Service) Predict(ctx context.Context, payload map[string]interface{}) (*models.PredictionResult, error) {
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, "predictor.Predict")
	defer span.End()

	record, err := s.validator.Validate(payload)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	_, assembleSpan := s.obs.StartSpan(ctx, "predictor.Assemble")
	assembly, err := s.assembler.Assemble(record)
	assembleSpan.End()
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	sel := assembly.Selection
	span.SetAttributes(
		attribute.String("strategy", sel.Strategy.Name),
		attribute.Bool("heuristic", sel.Heuristic),
		attribute.Int("features", len(assembly.X)),
	)

	result, err := s.inferencer.Infer(assembly.X)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}
	result.Strategy = sel.Label()

	fields := map[string]interface{}{
		"strategy":   sel.Strategy.Name,
		"numDim":     assembly.Widths.Numeric,
		"catDim":     assembly.Widths.Categorical,
		"mlbDim":     assembly.Widths.Interests,
		"interests":  assembly.FilteredInterests,
		"careerPath": result.CareerPath,
	}
	if sel.Heuristic {
		result.Warning = heuristicWarning
		s.log.Warn("classifier input width unknown, stacking chosen heuristically", fields)
	} else {
		s.log.Debug("prediction completed", fields)
	}

	metrics.PredictionsTotal.WithLabelValues(outcomeSuccess, sel.Strategy.Name, strconv.FormatBool(sel.Heuristic)).Inc()
	metrics.PredictionDuration.WithLabelValues(outcomeSuccess).Observe(time.Since(start).Seconds())
	s.obs.RecordPrediction(ctx, outcomeSuccess, sel.Strategy.Name)
	s.obs.RecordPredictionDuration(ctx, time.Since(start), outcomeSuccess)
	return result, nil
}

// Health reports the training library version recorded in the artifacts.
func (s *Service) Health() models.HealthResponse {
	return models.HealthResponse{
		Status:                 "ok",
		SklearnVersion:         s.sklearnVersion,
		ExpectedSklearnVersion: s.expectedVersion,
		VersionMatch:           s.sklearnVersion == s.expectedVersion,
	}
}

func (s *Service) fail(ctx context.Context, err error, start time.Time) error {
	stdErr := toStandardError(err)
	outcome := apperrors.GetErrorCategory(stdErr.Code)

	switch stdErr.Code {
	case apperrors.ErrCodeSchemaDrift:
		var (
			reason string
			drift  *SchemaDriftError
		)
		if stderrors.As(err, &drift) {
			reason = drift.Reason
		}
		metrics.SchemaDriftTotal.WithLabelValues(reason).Inc()
	case apperrors.ErrCodeInvalidPayload, apperrors.ErrCodeValidationFailed, apperrors.ErrCodeInvalidInterests:
		metrics.ValidationFailures.WithLabelValues(string(stdErr.Code)).Inc()
	}

	metrics.PredictionsTotal.WithLabelValues(outcome, "", "false").Inc()
	metrics.PredictionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	s.obs.RecordPrediction(ctx, outcome, "")

	if stdErr.Code == apperrors.ErrCodeInternal || stdErr.Code == apperrors.ErrCodeSchemaDrift {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, stdErr.Message)
	}
	return stdErr
}
