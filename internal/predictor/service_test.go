package predictor

import (
	"context"
	"errors"
	"testing"

	"career-predictor/internal/artifacts"
	apperrors "career-predictor/internal/common/errors"
	"career-predictor/internal/common/logger"
	"career-predictor/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, bundle *artifacts.Bundle) *Service {
	t.Helper()
	return NewService(registry.Default(), bundle, "1.6.1", logger.NewTestLogger(t), nil)
}

func asStandard(t *testing.T, err error) *apperrors.StandardError {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr), "got %T", err)
	return stdErr
}

func TestService_EndToEndExample(t *testing.T) {
	svc := newService(t, realBundle(t, true))

	res, err := svc.PredictRaw(context.Background(), []byte(`{
		"LogicalScore": 8, "CodingScore": 9, "CGPA": 8.5,
		"PreferredWorkStyle": "Creative", "HackathonParticipation": "Yes",
		"Interests": ["AI", "Music"]
	}`))
	require.NoError(t, err)

	assert.NotEmpty(t, res.CareerPath)
	assert.Empty(t, res.Warning)
	assert.Equal(t, "cat_trans + mlb", res.Strategy)

	var sum float64
	for _, p := range res.Probabilities {
		sum += p
	}
	assert.Len(t, res.Probabilities, 3)
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestService_BareStringInterestsEquivalent(t *testing.T) {
	svc := newService(t, realBundle(t, true))

	a, err := svc.Predict(context.Background(), map[string]interface{}{"CGPA": 7.0, "Interests": "Python"})
	require.NoError(t, err)
	b, err := svc.Predict(context.Background(), map[string]interface{}{"CGPA": 7.0, "Interests": []interface{}{"Python"}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestService_HeuristicSetsWarning(t *testing.T) {
	svc := newService(t, realBundle(t, false))

	res, err := svc.Predict(context.Background(), map[string]interface{}{"CodingScore": 9.0, "Interests": []interface{}{"AI"}})
	require.NoError(t, err)
	assert.Equal(t, heuristicWarning, res.Warning)
	assert.Equal(t, "cat_trans + mlb (heuristic)", res.Strategy)
}

func TestService_ClientErrors(t *testing.T) {
	svc := newService(t, realBundle(t, true))

	tests := []struct {
		name string
		body string
		code apperrors.ErrorCode
		msg  string
	}{
		{"empty body", "", apperrors.ErrCodeInvalidPayload, "Invalid or empty JSON payload"},
		{"empty object", "{}", apperrors.ErrCodeInvalidPayload, "Invalid or empty JSON payload"},
		{"array body", `[{"CGPA": 1}]`, apperrors.ErrCodeInvalidPayload, "Invalid or empty JSON payload"},
		{"bad numeric", `{"CGPA": "high"}`, apperrors.ErrCodeValidationFailed, "Validation failed"},
		{"bad interests", `{"CGPA": 1, "Interests": 5}`, apperrors.ErrCodeInvalidInterests, "Interests must be an array of strings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PredictRaw(context.Background(), []byte(tt.body))
			stdErr := asStandard(t, err)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.Equal(t, tt.msg, stdErr.Message)
		})
	}
}

func TestService_EnumRejectedBeforeAnyArtifactRuns(t *testing.T) {
	clf := &fakeClassifier{width: 20, known: true}
	tr := &fakeTransformer{out: make([]float64, 17)}
	enc := &fakeEncoder{classes: []string{"AI", "Python", "Web Development"}}
	bundle := &artifacts.Bundle{
		Classifier:  clf,
		Transformer: tr,
		Decoder:     &fakeDecoder{classes: []string{"Analyst"}},
		Encoder:     enc,
	}

	_, err := newService(t, bundle).PredictRaw(context.Background(), []byte(`{"PreferredWorkStyle": "Sleepy"}`))
	stdErr := asStandard(t, err)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Equal(t, []string{
		"PreferredWorkStyle must be one of [Research-oriented Organized/Managerial Technical Hands-on Creative]",
	}, stdErr.Details)

	assert.Zero(t, tr.calls)
	assert.Zero(t, enc.calls)
	assert.Zero(t, clf.calls)
}

func TestService_SchemaDrift(t *testing.T) {
	bundle := realBundle(t, true)
	bundle.Encoder = &fakeEncoder{classes: []string{"AI"}}

	_, err := newService(t, bundle).Predict(context.Background(), map[string]interface{}{"CGPA": 8.0})
	stdErr := asStandard(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaDrift, stdErr.Code)
	assert.Equal(t, "Feature shape mismatch", stdErr.Message)

	details, ok := stdErr.Details.(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"model_expected_features", "num_dim", "cat_dim", "mlb_dim", "provided_if_all_concatenated", "note", "strategies_tried"} {
		assert.Contains(t, details, key)
	}
}

func TestService_UnexpectedError(t *testing.T) {
	// Without a recorded width the heuristic picks a 18-wide row for a 20-wide model.
	bundle := realBundle(t, false)
	bundle.Encoder = &fakeEncoder{classes: []string{"AI"}}

	_, err := newService(t, bundle).Predict(context.Background(), map[string]interface{}{"CGPA": 8.0})
	stdErr := asStandard(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, stdErr.Code)
	assert.Contains(t, stdErr.Message, "X has 18 features")
	assert.NotEmpty(t, stdErr.Trace)
}

func TestService_Health(t *testing.T) {
	h := newService(t, realBundle(t, true)).Health()
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "1.6.1", h.SklearnVersion)
	assert.True(t, h.VersionMatch)

	bundle := &artifacts.Bundle{
		Classifier:  &fakeClassifier{},
		Transformer: &fakeTransformer{},
		Decoder:     bareArtifact{},
		Encoder:     &fakeEncoder{},
	}
	h = NewService(registry.Default(), bundle, "1.6.1", logger.NewNoOpLogger(), nil).Health()
	assert.Equal(t, artifacts.UnknownVersion, h.SklearnVersion)
	assert.False(t, h.VersionMatch)
}
