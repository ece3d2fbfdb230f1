package artifacts

import "fmt"

const KindLabelEncoder = "LabelEncoder"

type LabelEncoderDoc struct {
	Kind           string   `json:"kind"`
	SklearnVersion string   `json:"sklearn_version,omitempty"`
	Classes        []string `json:"classes"`
}

// LabelEncoder decodes class indices back to career-path labels.
type LabelEncoder struct {
	classes []string
	version string
}

func NewLabelEncoder(doc LabelEncoderDoc) (*LabelEncoder, error) {
	if len(doc.Classes) == 0 {
		return nil, fmt.Errorf("label encoder: no classes")
	}
	seen := make(map[string]struct{}, len(doc.Classes))
	for _, c := range doc.Classes {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("label encoder: duplicate class %q", c)
		}
		seen[c] = struct{}{}
	}
	return &LabelEncoder{classes: append([]string(nil), doc.Classes...), version: doc.SklearnVersion}, nil
}

func (e *LabelEncoder) Kind() string { return KindLabelEncoder }

func (e *LabelEncoder) SklearnVersion() string { return e.version }

func (e *LabelEncoder) Classes() []string { return append([]string(nil), e.classes...) }

func (e *LabelEncoder) InverseTransform(label int) (string, error) {
	if label < 0 || label >= len(e.classes) {
		return "", fmt.Errorf("y contains previously unseen labels: [%d]", label)
	}
	return e.classes[label], nil
}
