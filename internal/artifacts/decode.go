package artifacts

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type envelope struct {
	Kind string `json:"kind"`
}

// Decode parses a serialized artifact. JSON is tried first; a document that
// is not valid JSON is retried as YAML. The document is checked against the
// schema for its kind before being built.
func Decode(raw []byte) (Artifact, error) {
	if json.Valid(raw) {
		return decodeJSON(raw)
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("artifact is neither JSON nor YAML: %w", err)
	}
	// re-encode so both formats share one decode path
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml artifact is not JSON-compatible: %w", err)
	}
	return decodeJSON(jsonBytes)
}

func decodeJSON(raw []byte) (Artifact, error) {
	res, err := envelopeSchema.ValidateBytes(raw)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	res, err = kindSchemas[env.Kind].ValidateBytes(raw)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", env.Kind, err)
	}

	switch env.Kind {
	case KindLogisticRegression:
		return build(raw, env.Kind, NewLogisticRegression)
	case KindColumnTransformer:
		return build(raw, env.Kind, NewColumnTransformer)
	case KindLabelEncoder:
		return build(raw, env.Kind, NewLabelEncoder)
	case KindMultiLabelBinarizer:
		return build(raw, env.Kind, NewMultiLabelBinarizer)
	}
	return nil, fmt.Errorf("unsupported artifact kind %q", env.Kind)
}

func build[D any, A Artifact](raw []byte, kind string, newFn func(D) (A, error)) (Artifact, error) {
	var doc D
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	a, err := newFn(doc)
	if err != nil {
		return nil, err
	}
	return a, nil
}
