package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSONKinds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind string
	}{
		{"classifier", classifierJSON, KindLogisticRegression},
		{"transformer", transformerJSON, KindColumnTransformer},
		{"label encoder", labelJSON, KindLabelEncoder},
		{"binarizer", mlbJSON, KindMultiLabelBinarizer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, a.Kind())
		})
	}
}

func TestDecode_YAMLFallback(t *testing.T) {
	raw := `
kind: LabelEncoder
sklearn_version: "1.6.1"
classes:
  - Analyst
  - Engineer
`
	a, err := Decode([]byte(raw))
	require.NoError(t, err)

	le, ok := a.(*LabelEncoder)
	require.True(t, ok)
	assert.Equal(t, []string{"Analyst", "Engineer"}, le.Classes())
	assert.Equal(t, "1.6.1", le.SklearnVersion())
}

func TestDecode_YAMLClassifier(t *testing.T) {
	raw := `
kind: LogisticRegression
classes: [0, 1]
coef: [[0.5, -0.5]]
intercept: [0.1]
n_features_in: 2
`
	a, err := Decode([]byte(raw))
	require.NoError(t, err)
	n, ok := a.(FeatureCounter).NumFeaturesIn()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		errMsg string
	}{
		{"missing kind", `{"classes": ["a"]}`, "kind"},
		{"unknown kind", `{"kind": "RandomForest"}`, "kind"},
		{"schema violation", `{"kind": "LogisticRegression", "classes": [0, 1], "intercept": [0]}`, "coef"},
		{"wrong item type", `{"kind": "LabelEncoder", "classes": [1, 2]}`, "LabelEncoder"},
		{"duplicate label", `{"kind": "LabelEncoder", "classes": ["Engineer", "Engineer", "Analyst"]}`, "LabelEncoder"},
		{"neither format", "kind: [unclosed", "neither JSON nor YAML"},
		{"yaml scalar", "just some text", "document validation failed"},
		{"constructor check", `{"kind": "LogisticRegression", "classes": [0, 1], "coef": [[1]], "intercept": [0], "n_features_in": 3}`, "does not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Decode([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
