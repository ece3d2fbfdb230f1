package predictor

import (
	"errors"
	"testing"

	"career-predictor/internal/artifacts"

	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	width int
	known bool
	label int
	err   error
	gotX  []float64
	calls int
}

func (c *fakeClassifier) Kind() string { return "FakeClassifier" }

func (c *fakeClassifier) NumFeaturesIn() (int, bool) { return c.width, c.known }

func (c *fakeClassifier) Predict(x []float64) (int, error) {
	c.calls++
	c.gotX = append([]float64(nil), x...)
	return c.label, c.err
}

type fakeProbClassifier struct {
	fakeClassifier
	probs []float64
}

func (c *fakeProbClassifier) PredictProba([]float64) ([]float64, error) { return c.probs, nil }

type fakeTransformer struct {
	out        []float64
	err        error
	namesIn    []string
	components []string
	gotFrame   artifacts.Frame
	calls      int
}

func (t *fakeTransformer) Kind() string { return "FakeTransformer" }

func (t *fakeTransformer) Transform(f artifacts.Frame) ([]float64, error) {
	t.calls++
	t.gotFrame = f
	return t.out, t.err
}

// namedTransformer also reports fit-time column names.
type namedTransformer struct{ *fakeTransformer }

func (t namedTransformer) FeatureNamesIn() []string { return t.namesIn }

// componentTransformer only reports component names.
type componentTransformer struct{ *fakeTransformer }

func (t componentTransformer) TransformerNames() []string { return t.components }

type fakeEncoder struct {
	classes []string
	calls   int
}

func (e *fakeEncoder) Kind() string      { return "FakeEncoder" }
func (e *fakeEncoder) Classes() []string { return e.classes }

func (e *fakeEncoder) Transform(tags []string) ([]float64, error) {
	e.calls++
	out := make([]float64, len(e.classes))
	for i, c := range e.classes {
		for _, t := range tags {
			if t == c {
				out[i] = 1
			}
		}
	}
	return out, nil
}

type fakeDecoder struct {
	classes []string
}

func (d *fakeDecoder) Kind() string      { return "FakeDecoder" }
func (d *fakeDecoder) Classes() []string { return d.classes }

func (d *fakeDecoder) InverseTransform(label int) (string, error) {
	if label < 0 || label >= len(d.classes) {
		return "", errors.New("unseen label")
	}
	return d.classes[label], nil
}

// bareArtifact has no optional capabilities.
type bareArtifact struct{}

func (bareArtifact) Kind() string { return "Bare" }

// realBundle builds document-backed artifacts that fit the default registry:
// 17 transformer outputs, 3 interest tags, 3 career paths.
func realBundle(t *testing.T, recordWidth bool) *artifacts.Bundle {
	t.Helper()

	numeric := []string{
		"LogicalScore", "CodingScore", "QuantitativeScore", "VerbalScore",
		"CGPA", "ProjectsDone", "Internships", "Certifications",
		"SoftSkills", "Leadership", "ProgrammingLanguagesKnown",
	}
	mean := make([]float64, len(numeric))
	scale := make([]float64, len(numeric))
	for i := range numeric {
		mean[i], scale[i] = 5, 2
	}
	tr, err := artifacts.NewColumnTransformer(artifacts.ColumnTransformerDoc{
		SklearnVersion: "1.6.1",
		FeatureNamesIn: append(append([]string{}, numeric...), "PreferredWorkStyle", "HackathonParticipation"),
		Transformers: []artifacts.ComponentDoc{
			{Name: "num", Type: artifacts.ComponentStandardScaler, Columns: numeric, Mean: mean, Scale: scale},
			{
				Name:    "cat",
				Type:    artifacts.ComponentOneHot,
				Columns: []string{"PreferredWorkStyle", "HackathonParticipation"},
				Categories: [][]string{
					{"Creative", "Organized/Managerial", "Research-oriented", "Technical Hands-on"},
					{"No", "Yes"},
				},
				HandleUnknown: "ignore",
			},
		},
	})
	require.NoError(t, err)

	enc, err := artifacts.NewMultiLabelBinarizer(artifacts.MultiLabelBinarizerDoc{Classes: []string{"AI", "Python", "Web Development"}})
	require.NoError(t, err)

	dec, err := artifacts.NewLabelEncoder(artifacts.LabelEncoderDoc{Classes: []string{"Data Scientist", "Software Engineer", "UX Designer"}})
	require.NoError(t, err)

	const width = 17 + 3
	coef := make([][]float64, 3)
	for i := range coef {
		coef[i] = make([]float64, width)
		for j := range coef[i] {
			coef[i][j] = float64((i+j)%5-2) / 10
		}
	}
	doc := artifacts.LogisticRegressionDoc{
		SklearnVersion: "1.6.1",
		Classes:        []int{0, 1, 2},
		Coef:           coef,
		Intercept:      []float64{0.1, 0, -0.1},
	}
	if recordWidth {
		n := width
		doc.NFeaturesIn = &n
	}
	clf, err := artifacts.NewLogisticRegression(doc)
	require.NoError(t, err)

	return &artifacts.Bundle{Classifier: clf, Transformer: tr, Decoder: dec, Encoder: enc}
}
