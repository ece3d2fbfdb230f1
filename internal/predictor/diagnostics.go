package predictor

import "career-predictor/internal/artifacts"

// Diagnostics is the details object of a schema drift response.
type Diagnostics map[string]interface{}

const shapeMismatchNote = "Tried common stacking options but none matched model expected feature count."

// Drift reasons, used as metric labels.
const (
	ReasonTransformFailed = "transform_failed"
	ReasonShapeMismatch   = "shape_mismatch"
)

func expectedValue(expected int, known bool) interface{} {
	if !known {
		return nil
	}
	return expected
}

func shapeMismatchDiagnostics(m *ShapeMismatch) Diagnostics {
	return Diagnostics{
		"model_expected_features":      m.Expected,
		"num_dim":                      m.Widths.Numeric,
		"cat_dim":                      m.Widths.Categorical,
		"mlb_dim":                      m.Widths.Interests,
		"provided_if_all_concatenated": m.Widths.Total(),
		"note":                         shapeMismatchNote,
		"strategies_tried":             m.Tried,
	}
}

// transformFailureDiagnostics describes a failed transformer call. The
// categorical width is unknown at that point and reported as null.
func transformFailureDiagnostics(cause error, columns []string, tr artifacts.Transformer,
	expected int, known bool, numDim, mlbDim int) Diagnostics {
	d := Diagnostics{
		"transform_error":         cause.Error(),
		"provided_columns":        columns,
		"model_expected_features": expectedValue(expected, known),
		"num_dim":                 numDim,
		"cat_dim":                 nil,
		"mlb_dim":                 mlbDim,
		"strategies_tried":        []string{},
	}
	if namer, ok := tr.(artifacts.FeatureNamer); ok && namer.FeatureNamesIn() != nil {
		d["transformer_feature_names_in_"] = namer.FeatureNamesIn()
	} else if comp, ok := tr.(artifacts.ComponentNamer); ok {
		d["transformers_"] = comp.TransformerNames()
	}
	return d
}
