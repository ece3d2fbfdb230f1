package artifacts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const KindColumnTransformer = "ColumnTransformer"

// Component types.
const (
	ComponentStandardScaler = "standard_scaler"
	ComponentOneHot         = "one_hot"
	ComponentPassthrough    = "passthrough"
	ComponentDrop           = "drop"
)

type ColumnTransformerDoc struct {
	Kind           string         `json:"kind"`
	SklearnVersion string         `json:"sklearn_version,omitempty"`
	FeatureNamesIn []string       `json:"feature_names_in,omitempty"`
	Transformers   []ComponentDoc `json:"transformers"`
}

type ComponentDoc struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Columns       []string   `json:"columns"`
	Mean          []float64  `json:"mean,omitempty"`
	Scale         []float64  `json:"scale,omitempty"`
	Categories    [][]string `json:"categories,omitempty"`
	HandleUnknown string     `json:"handle_unknown,omitempty"`
}

// ColumnTransformer applies named components to column subsets of a frame and
// concatenates their outputs in declaration order.
type ColumnTransformer struct {
	featureNamesIn []string
	components     []ComponentDoc
	version        string
}

func NewColumnTransformer(doc ColumnTransformerDoc) (*ColumnTransformer, error) {
	if len(doc.Transformers) == 0 {
		return nil, fmt.Errorf("column transformer: no transformers")
	}
	for _, c := range doc.Transformers {
		if err := checkComponent(c); err != nil {
			return nil, fmt.Errorf("column transformer: %s: %w", c.Name, err)
		}
	}
	return &ColumnTransformer{
		featureNamesIn: append([]string(nil), doc.FeatureNamesIn...),
		components:     doc.Transformers,
		version:        doc.SklearnVersion,
	}, nil
}

func checkComponent(c ComponentDoc) error {
	switch c.Type {
	case ComponentStandardScaler:
		if len(c.Mean) != len(c.Columns) || len(c.Scale) != len(c.Columns) {
			return fmt.Errorf("mean and scale must have one value per column")
		}
	case ComponentOneHot:
		if len(c.Categories) != len(c.Columns) {
			return fmt.Errorf("categories must have one list per column")
		}
		if c.HandleUnknown != "" && c.HandleUnknown != "ignore" && c.HandleUnknown != "error" {
			return fmt.Errorf("handle_unknown %q is not supported", c.HandleUnknown)
		}
	case ComponentPassthrough, ComponentDrop:
	default:
		return fmt.Errorf("component type %q is not supported", c.Type)
	}
	return nil
}

func (t *ColumnTransformer) Kind() string { return KindColumnTransformer }

func (t *ColumnTransformer) SklearnVersion() string { return t.version }

// FeatureNamesIn returns the columns seen at fit time, or nil if not recorded.
func (t *ColumnTransformer) FeatureNamesIn() []string {
	if len(t.featureNamesIn) == 0 {
		return nil
	}
	return append([]string(nil), t.featureNamesIn...)
}

func (t *ColumnTransformer) TransformerNames() []string {
	names := make([]string, len(t.components))
	for i, c := range t.components {
		names[i] = c.Name
	}
	return names
}

func (t *ColumnTransformer) Transform(frame Frame) ([]float64, error) {
	if len(t.featureNamesIn) > 0 {
		var missing []string
		for _, name := range t.featureNamesIn {
			if _, ok := frame.Lookup(name); !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return nil, fmt.Errorf("columns are missing: {%s}", quoteJoin(missing))
		}
	}

	var out []float64
	for _, c := range t.components {
		if c.Type == ComponentDrop {
			continue
		}
		for i, col := range c.Columns {
			v, ok := frame.Lookup(col)
			if !ok {
				return nil, fmt.Errorf("%s: column %q not found in input", c.Name, col)
			}
			switch c.Type {
			case ComponentStandardScaler, ComponentPassthrough:
				f, err := toFloat(v)
				if err != nil {
					return nil, fmt.Errorf("%s: column %q: %w", c.Name, col, err)
				}
				if c.Type == ComponentStandardScaler {
					scale := c.Scale[i]
					if scale == 0 {
						scale = 1
					}
					f = (f - c.Mean[i]) / scale
				}
				out = append(out, f)
			case ComponentOneHot:
				block, err := oneHot(c, i, v)
				if err != nil {
					return nil, err
				}
				out = append(out, block...)
			}
		}
	}
	return out, nil
}

func oneHot(c ComponentDoc, idx int, v interface{}) ([]float64, error) {
	cats := c.Categories[idx]
	s := toCategory(v)
	block := make([]float64, len(cats))
	for j, cat := range cats {
		if cat == s {
			block[j] = 1
			return block, nil
		}
	}
	if c.HandleUnknown == "error" {
		return nil, fmt.Errorf("Found unknown categories ['%s'] in column %d during transform", s, idx)
	}
	return block, nil
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: '%s'", x)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("could not convert None to float")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func toCategory(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func quoteJoin(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "'" + n + "'"
	}
	return strings.Join(q, ", ")
}
