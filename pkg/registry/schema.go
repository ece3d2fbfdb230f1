// pkg/registry/schema.go
package registry

// Registry describes the request fields the model was trained against.
// Column order is significant: it is the order the categorical transformer
// saw at training time.
type Registry struct {
	Version           string             `json:"version"`
	LastUpdated       string             `json:"lastUpdated"`
	NumericFields     []string           `json:"numericFields"`
	CategoricalFields []CategoricalField `json:"categoricalFields"`
}

type CategoricalField struct {
	Name    string   `json:"name"`
	Allowed []string `json:"allowed"`
}

const (
	FieldPreferredWorkStyle     = "PreferredWorkStyle"
	FieldHackathonParticipation = "HackathonParticipation"
	FieldInterests              = "Interests"
)

// Default returns the field set used by the current career model.
func Default() *Registry {
	return &Registry{
		Version: "1.0.0",
		NumericFields: []string{
			"LogicalScore", "CodingScore", "QuantitativeScore", "VerbalScore",
			"CGPA", "ProjectsDone", "Internships", "Certifications",
			"SoftSkills", "Leadership", "ProgrammingLanguagesKnown",
		},
		CategoricalFields: []CategoricalField{
			{
				Name:    FieldPreferredWorkStyle,
				Allowed: []string{"Research-oriented", "Organized/Managerial", "Technical Hands-on", "Creative"},
			},
			{
				Name:    FieldHackathonParticipation,
				Allowed: []string{"Yes", "No"},
			},
		},
	}
}

// Columns returns numeric fields followed by categorical fields.
func (r *Registry) Columns() []string {
	cols := make([]string, 0, len(r.NumericFields)+len(r.CategoricalFields))
	cols = append(cols, r.NumericFields...)
	for _, f := range r.CategoricalFields {
		cols = append(cols, f.Name)
	}
	return cols
}

func (f CategoricalField) Allows(value string) bool {
	for _, a := range f.Allowed {
		if a == value {
			return true
		}
	}
	return false
}
