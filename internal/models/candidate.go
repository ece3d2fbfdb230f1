package models

const (
	fieldPreferredWorkStyle     = "PreferredWorkStyle"
	fieldHackathonParticipation = "HackathonParticipation"
)

// CandidateRecord is a validated /predict payload.
type CandidateRecord struct {
	Scores                 map[string]float64 `json:"scores"`
	PreferredWorkStyle     string             `json:"preferredWorkStyle"`
	HackathonParticipation string             `json:"hackathonParticipation"`
	Interests              []string           `json:"interests"`
	// Extra holds categorical fields added by a registry overlay.
	Extra map[string]string `json:"extra,omitempty"`
}

// NumericVector returns the scores in the given field order. Missing fields are 0.
func (c *CandidateRecord) NumericVector(fields []string) []float64 {
	out := make([]float64, len(fields))
	for i, f := range fields {
		out[i] = c.Scores[f]
	}
	return out
}

// Categorical returns the value of a categorical field by name.
func (c *CandidateRecord) Categorical(name string) string {
	switch name {
	case fieldPreferredWorkStyle:
		return c.PreferredWorkStyle
	case fieldHackathonParticipation:
		return c.HackathonParticipation
	}
	return c.Extra[name]
}

func (c *CandidateRecord) SetCategorical(name, value string) {
	switch name {
	case fieldPreferredWorkStyle:
		c.PreferredWorkStyle = value
	case fieldHackathonParticipation:
		c.HackathonParticipation = value
	default:
		if c.Extra == nil {
			c.Extra = make(map[string]string)
		}
		c.Extra[name] = value
	}
}
