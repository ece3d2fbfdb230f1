// Package artifacts defines the pre-fit model bundle the predictor depends on:
// the collaborator interfaces, the concrete document-backed implementations,
// and the sources they are fetched from.
package artifacts

import "fmt"

// UnknownVersion is reported when no artifact records the training library version.
const UnknownVersion = "unknown"

// Artifact is anything that can be loaded into a bundle slot.
type Artifact interface {
	Kind() string
}

// Classifier maps a feature row to an encoded label.
type Classifier interface {
	Artifact
	Predict(x []float64) (int, error)
}

// Transformer converts a named single-row frame into numeric features.
type Transformer interface {
	Artifact
	Transform(frame Frame) ([]float64, error)
}

// InterestEncoder maps a set of tags onto a fixed vocabulary indicator vector.
type InterestEncoder interface {
	Artifact
	Classes() []string
	Transform(tags []string) ([]float64, error)
}

// Optional capabilities, discovered with type assertions.

type ProbabilityPredictor interface {
	PredictProba(x []float64) ([]float64, error)
}

// FeatureCounter reports the input width a classifier was fit on.
// ok is false when the width was not recorded.
type FeatureCounter interface {
	NumFeaturesIn() (n int, ok bool)
}

type FeatureNamer interface {
	FeatureNamesIn() []string
}

type ComponentNamer interface {
	TransformerNames() []string
}

type InverseTransformer interface {
	InverseTransform(label int) (string, error)
}

type ClassLister interface {
	Classes() []string
}

// Versioned artifacts record the version of the library that fit them.
type Versioned interface {
	SklearnVersion() string
}

// Frame is a single named row. Numeric columns hold float64, categorical
// columns hold string.
type Frame struct {
	Columns []string
	Values  []interface{}
}

// Lookup returns the value of column col.
func (f Frame) Lookup(col string) (interface{}, bool) {
	for i, c := range f.Columns {
		if c == col {
			return f.Values[i], true
		}
	}
	return nil, false
}

// Bundle is the immutable set of four artifacts loaded at startup.
type Bundle struct {
	Classifier  Classifier
	Transformer Transformer
	Decoder     Artifact
	Encoder     InterestEncoder
}

func (b *Bundle) Validate() error {
	switch {
	case b.Classifier == nil:
		return fmt.Errorf("bundle: classifier is missing")
	case b.Transformer == nil:
		return fmt.Errorf("bundle: transformer is missing")
	case b.Decoder == nil:
		return fmt.Errorf("bundle: decoder is missing")
	case b.Encoder == nil:
		return fmt.Errorf("bundle: encoder is missing")
	}
	return nil
}

// SklearnVersion returns the first version recorded by any artifact,
// checking the classifier first.
func (b *Bundle) SklearnVersion() string {
	for _, a := range []Artifact{b.Classifier, b.Transformer, b.Decoder, b.Encoder} {
		if v, ok := a.(Versioned); ok && v.SklearnVersion() != "" {
			return v.SklearnVersion()
		}
	}
	return UnknownVersion
}
