package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	classifierJSON = `{
		"kind": "LogisticRegression",
		"sklearn_version": "1.6.1",
		"classes": [0, 1, 2],
		"coef": [[1, 0], [0, 1], [-1, -1]],
		"intercept": [0, 0, 0],
		"multi_class": "multinomial",
		"n_features_in": 2
	}`

	transformerJSON = `{
		"kind": "ColumnTransformer",
		"feature_names_in": ["score", "style"],
		"transformers": [
			{"name": "num", "type": "standard_scaler", "columns": ["score"], "mean": [5], "scale": [2]},
			{"name": "cat", "type": "one_hot", "columns": ["style"], "categories": [["A", "B"]], "handle_unknown": "ignore"}
		]
	}`

	labelJSON = `{"kind": "LabelEncoder", "classes": ["Analyst", "Engineer", "Researcher"]}`

	mlbJSON = `{"kind": "MultiLabelBinarizer", "classes": ["AI", "Music"]}`
)

func writeArtifact(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0644))
}

func writeBundleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeArtifact(t, dir, "career_model.json", classifierJSON)
	writeArtifact(t, dir, "column_transformer.json", transformerJSON)
	writeArtifact(t, dir, "label_encoder.json", labelJSON)
	writeArtifact(t, dir, "multilabelbinarizer.json", mlbJSON)
	return dir
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
