package artifacts

import (
	"fmt"
	"math"
)

const KindLogisticRegression = "LogisticRegression"

// LogisticRegressionDoc is the serialized form of a fitted linear classifier.
type LogisticRegressionDoc struct {
	Kind           string      `json:"kind"`
	SklearnVersion string      `json:"sklearn_version,omitempty"`
	Classes        []int       `json:"classes"`
	Coef           [][]float64 `json:"coef"`
	Intercept      []float64   `json:"intercept"`
	MultiClass     string      `json:"multi_class,omitempty"`
	NFeaturesIn    *int        `json:"n_features_in,omitempty"`
	Probability    *bool       `json:"probability,omitempty"`
}

// LogisticRegression implements Classifier, ProbabilityPredictor and FeatureCounter.
type LogisticRegression struct {
	classes     []int
	coef        [][]float64
	intercept   []float64
	multinomial bool
	width       int
	nFeatures   int
	hasNFeature bool
	version     string
}

// hardClassifier hides PredictProba for models fit without probability support.
type hardClassifier struct {
	lr *LogisticRegression
}

// NewLogisticRegression builds a classifier from doc. The returned value
// implements ProbabilityPredictor unless doc.Probability is false.
func NewLogisticRegression(doc LogisticRegressionDoc) (Classifier, error) {
	if len(doc.Classes) < 2 {
		return nil, fmt.Errorf("logistic regression: need at least 2 classes, got %d", len(doc.Classes))
	}
	rows := len(doc.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(doc.Coef) != rows {
		return nil, fmt.Errorf("logistic regression: coef has %d rows, want %d", len(doc.Coef), rows)
	}
	if len(doc.Intercept) != rows {
		return nil, fmt.Errorf("logistic regression: intercept has %d values, want %d", len(doc.Intercept), rows)
	}
	width := len(doc.Coef[0])
	for i, row := range doc.Coef {
		if len(row) != width {
			return nil, fmt.Errorf("logistic regression: coef row %d has width %d, want %d", i, len(row), width)
		}
	}

	lr := &LogisticRegression{
		classes:     append([]int(nil), doc.Classes...),
		coef:        doc.Coef,
		intercept:   doc.Intercept,
		multinomial: doc.MultiClass != "ovr",
		width:       width,
		version:     doc.SklearnVersion,
	}
	if doc.NFeaturesIn != nil {
		if *doc.NFeaturesIn != width {
			return nil, fmt.Errorf("logistic regression: n_features_in %d does not match coef width %d", *doc.NFeaturesIn, width)
		}
		lr.nFeatures, lr.hasNFeature = *doc.NFeaturesIn, true
	}

	if doc.Probability != nil && !*doc.Probability {
		return hardClassifier{lr: lr}, nil
	}
	return lr, nil
}

func (m *LogisticRegression) Kind() string { return KindLogisticRegression }

func (m *LogisticRegression) SklearnVersion() string { return m.version }

func (m *LogisticRegression) NumFeaturesIn() (int, bool) { return m.nFeatures, m.hasNFeature }

func (m *LogisticRegression) Predict(x []float64) (int, error) {
	p, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for i := range p {
		if p[i] > p[best] {
			best = i
		}
	}
	return m.classes[best], nil
}

// PredictProba returns one probability per class, in class order.
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	scores, err := m.decision(x)
	if err != nil {
		return nil, err
	}

	if len(scores) == 1 {
		p := sigmoid(scores[0])
		return []float64{1 - p, p}, nil
	}
	if m.multinomial {
		return softmax(scores), nil
	}

	// one-vs-rest: independent sigmoids, normalized
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = sigmoid(s)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

func (m *LogisticRegression) decision(x []float64) ([]float64, error) {
	if len(x) != m.width {
		return nil, fmt.Errorf("X has %d features, but LogisticRegression is expecting %d features as input", len(x), m.width)
	}
	scores := make([]float64, len(m.coef))
	for i, row := range m.coef {
		z := m.intercept[i]
		for j, w := range row {
			z += w * x[j]
		}
		scores[i] = z
	}
	return scores, nil
}

func (h hardClassifier) Kind() string                     { return KindLogisticRegression }
func (h hardClassifier) SklearnVersion() string           { return h.lr.version }
func (h hardClassifier) NumFeaturesIn() (int, bool)       { return h.lr.NumFeaturesIn() }
func (h hardClassifier) Predict(x []float64) (int, error) { return h.lr.Predict(x) }

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(z []float64) []float64 {
	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}
	out := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		out[i] = math.Exp(v - maxZ)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
