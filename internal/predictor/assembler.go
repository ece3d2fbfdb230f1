package predictor

import (
	"fmt"

	"career-predictor/internal/artifacts"
	"career-predictor/internal/models"
	"career-predictor/pkg/registry"
)

// Assembly is a feature row ready for the classifier, plus how it was built.
type Assembly struct {
	X                 []float64
	Widths            Widths
	Selection         Selection
	Expected          int
	ExpectedKnown     bool
	FilteredInterests []string
}

// Assembler reconciles a validated record with the loaded transformer,
// interest encoder and classifier input width.
type Assembler struct {
	reg         *registry.Registry
	transformer artifacts.Transformer
	encoder     artifacts.InterestEncoder
	classifier  artifacts.Classifier
	vocabulary  map[string]struct{}
}

func NewAssembler(reg *registry.Registry, bundle *artifacts.Bundle) *Assembler {
	classes := bundle.Encoder.Classes()
	vocab := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		vocab[c] = struct{}{}
	}
	return &Assembler{
		reg:         reg,
		transformer: bundle.Transformer,
		encoder:     bundle.Encoder,
		classifier:  bundle.Classifier,
		vocabulary:  vocab,
	}
}

func (a *Assembler) Assemble(rec *models.CandidateRecord) (*Assembly, error) {
	numeric := rec.NumericVector(a.reg.NumericFields)

	filtered := a.filterInterests(rec.Interests)
	var interests []float64
	if len(a.vocabulary) > 0 {
		var err error
		interests, err = a.encoder.Transform(filtered)
		if err != nil {
			return nil, fmt.Errorf("interest encoder transform: %w", err)
		}
	}

	expected, known := a.expectedWidth()

	frame := a.frame(rec, numeric)
	categorical, err := a.transformer.Transform(frame)
	if err != nil {
		return nil, &SchemaDriftError{
			Message:     msgTransformFailed,
			Reason:      ReasonTransformFailed,
			Diagnostics: transformFailureDiagnostics(err, frame.Columns, a.transformer, expected, known, len(numeric), len(interests)),
			Cause:       err,
		}
	}

	widths := Widths{Numeric: len(numeric), Categorical: len(categorical), Interests: len(interests)}
	sel, err := SelectStrategy(widths, expected, known)
	if err != nil {
		mismatch := err.(*ShapeMismatch)
		return nil, &SchemaDriftError{
			Message:     msgShapeMismatch,
			Reason:      ReasonShapeMismatch,
			Diagnostics: shapeMismatchDiagnostics(mismatch),
			Cause:       err,
		}
	}

	blocks := map[Block][]float64{
		BlockNumeric:     numeric,
		BlockCategorical: categorical,
		BlockInterests:   interests,
	}
	x := make([]float64, 0, sel.Strategy.Width(widths))
	for _, b := range sel.Strategy.Blocks {
		x = append(x, blocks[b]...)
	}

	return &Assembly{
		X:                 x,
		Widths:            widths,
		Selection:         sel,
		Expected:          expected,
		ExpectedKnown:     known,
		FilteredInterests: filtered,
	}, nil
}

// filterInterests keeps vocabulary tags in their original order.
func (a *Assembler) filterInterests(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := a.vocabulary[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (a *Assembler) expectedWidth() (int, bool) {
	fc, ok := a.classifier.(artifacts.FeatureCounter)
	if !ok {
		return 0, false
	}
	return fc.NumFeaturesIn()
}

// frame lays out numeric fields then categorical fields, in registry order.
func (a *Assembler) frame(rec *models.CandidateRecord, numeric []float64) artifacts.Frame {
	cols := a.reg.Columns()
	values := make([]interface{}, 0, len(cols))
	for _, v := range numeric {
		values = append(values, v)
	}
	for _, f := range a.reg.CategoricalFields {
		values = append(values, rec.Categorical(f.Name))
	}
	return artifacts.Frame{Columns: cols, Values: values}
}
