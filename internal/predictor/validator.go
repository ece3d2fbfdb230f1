package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"career-predictor/internal/models"
	"career-predictor/pkg/registry"
)

// Validator turns a loosely typed payload into a CandidateRecord.
type Validator struct {
	reg *registry.Registry
}

func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate checks Interests first and returns immediately on a type error.
// Numeric and categorical problems are then collected in registry order.
func (v *Validator) Validate(payload map[string]interface{}) (*models.CandidateRecord, error) {
	if len(payload) == 0 {
		return nil, ErrInvalidPayload
	}

	interests, err := coerceInterests(payload[registry.FieldInterests])
	if err != nil {
		return nil, err
	}

	record := &models.CandidateRecord{
		Scores:    make(map[string]float64, len(v.reg.NumericFields)),
		Interests: interests,
	}
	var details []string

	for _, name := range v.reg.NumericFields {
		f, ok := coerceNumeric(payload[name])
		if !ok {
			details = append(details, fmt.Sprintf("Numeric field '%s' must be a number", name))
			continue
		}
		record.Scores[name] = f
	}

	for _, field := range v.reg.CategoricalFields {
		raw := payload[field.Name]
		if raw == nil {
			record.SetCategorical(field.Name, "")
			continue
		}
		s, isString := raw.(string)
		if isString && (s == "" || field.Allows(s)) {
			record.SetCategorical(field.Name, s)
			continue
		}
		details = append(details, fmt.Sprintf("%s must be one of %v", field.Name, field.Allowed))
	}

	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}
	return record, nil
}

func coerceInterests(raw interface{}) ([]string, error) {
	switch x := raw.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{x}, nil
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, item := range x {
			// non-strings can never match the vocabulary
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, nil
	case []string:
		return append([]string{}, x...), nil
	}
	return nil, &InterestsTypeError{Got: fmt.Sprintf("%T", raw)}
}

// coerceNumeric accepts numbers, numeric strings and booleans. Absent or null is 0.
func coerceNumeric(raw interface{}) (float64, bool) {
	var f float64
	switch x := raw.(type) {
	case nil:
		return 0, true
	case float64:
		f = x
	case int:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
