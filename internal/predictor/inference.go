package predictor

import (
	"fmt"
	"strconv"

	"career-predictor/internal/artifacts"
	"career-predictor/internal/models"
)

// Inferencer runs the classifier and decodes its output.
type Inferencer struct {
	classifier artifacts.Classifier
	decoder    artifacts.Artifact
}

func NewInferencer(bundle *artifacts.Bundle) *Inferencer {
	return &Inferencer{classifier: bundle.Classifier, decoder: bundle.Decoder}
}

// Infer predicts a career path for x. Probabilities are nil when the
// classifier cannot produce them.
func (in *Inferencer) Infer(x []float64) (*models.PredictionResult, error) {
	encoded, err := in.classifier.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	label := strconv.Itoa(encoded)
	if inv, ok := in.decoder.(artifacts.InverseTransformer); ok {
		if label, err = inv.InverseTransform(encoded); err != nil {
			return nil, fmt.Errorf("decode label: %w", err)
		}
	}

	result := &models.PredictionResult{CareerPath: label}

	pp, ok := in.classifier.(artifacts.ProbabilityPredictor)
	if !ok {
		return result, nil
	}
	probs, err := pp.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("predict_proba: %w", err)
	}

	labels := indexLabels(len(probs))
	if cl, ok := in.decoder.(artifacts.ClassLister); ok {
		labels = cl.Classes()
		if len(labels) != len(probs) {
			return nil, fmt.Errorf("decoder knows %d classes but classifier returned %d probabilities", len(labels), len(probs))
		}
	}

	result.Probabilities = make(map[string]float64, len(probs))
	for i, p := range probs {
		result.Probabilities[labels[i]] = p
	}
	return result, nil
}

func indexLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
