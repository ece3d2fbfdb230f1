package models

// PredictionResult is the outcome of a single /predict call and its 200 body.
type PredictionResult struct {
	CareerPath    string             `json:"career_path"`
	Probabilities map[string]float64 `json:"probabilities"`
	Warning       string             `json:"warning,omitempty"`
	// Strategy names the feature layout fed to the classifier. Not part of the response body.
	Strategy string `json:"-"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status                 string `json:"status"`
	SklearnVersion         string `json:"sklearn_version"`
	ExpectedSklearnVersion string `json:"expected_sklearn_version"`
	VersionMatch           bool   `json:"version_match"`
}
