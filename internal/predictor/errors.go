package predictor

import (
	stderrors "errors"
	"fmt"

	apperrors "career-predictor/internal/common/errors"
)

const (
	msgInterestsType   = "Interests must be an array of strings"
	msgTransformFailed = "column_transformer transform failed"
	msgShapeMismatch   = "Feature shape mismatch"
)

// ErrInvalidPayload is returned for an absent, malformed, non-object or empty body.
var ErrInvalidPayload = stderrors.New("Invalid or empty JSON payload")

// ValidationError aggregates every numeric and categorical problem in a payload.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation failed: %d problem(s)", len(e.Details))
}

// InterestsTypeError is returned, before any other check, when Interests is
// neither null, a string nor a list.
type InterestsTypeError struct {
	Got string
}

func (e *InterestsTypeError) Error() string { return msgInterestsType }

// SchemaDriftError signals that the loaded artifacts do not fit the request
// schema or each other. Diagnostics is rendered verbatim as response details.
type SchemaDriftError struct {
	Message     string
	Reason      string
	Diagnostics Diagnostics
	Cause       error
}

func (e *SchemaDriftError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SchemaDriftError) Unwrap() error { return e.Cause }

// toStandardError maps pipeline errors onto response errors. Anything not
// recognised is unexpected and carries a stack trace.
func toStandardError(err error) *apperrors.StandardError {
	var (
		validationErr *ValidationError
		interestsErr  *InterestsTypeError
		driftErr      *SchemaDriftError
	)
	switch {
	case stderrors.Is(err, ErrInvalidPayload):
		return apperrors.NewInvalidPayloadError()
	case stderrors.As(err, &validationErr):
		return apperrors.NewValidationFailedError(validationErr.Details)
	case stderrors.As(err, &interestsErr):
		return apperrors.NewInvalidInterestsError(interestsErr.Error())
	case stderrors.As(err, &driftErr):
		return apperrors.NewSchemaDriftError(driftErr.Message, driftErr.Diagnostics, err)
	}
	return apperrors.NewInternalError(err)
}
