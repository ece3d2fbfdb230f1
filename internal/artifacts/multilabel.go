package artifacts

import "fmt"

const KindMultiLabelBinarizer = "MultiLabelBinarizer"

type MultiLabelBinarizerDoc struct {
	Kind           string   `json:"kind"`
	SklearnVersion string   `json:"sklearn_version,omitempty"`
	Classes        []string `json:"classes"`
}

// MultiLabelBinarizer maps a tag set onto a fixed vocabulary. Tags outside the
// vocabulary are ignored.
type MultiLabelBinarizer struct {
	classes []string
	index   map[string]int
	version string
}

func NewMultiLabelBinarizer(doc MultiLabelBinarizerDoc) (*MultiLabelBinarizer, error) {
	index := make(map[string]int, len(doc.Classes))
	for i, c := range doc.Classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("multilabel binarizer: duplicate class %q", c)
		}
		index[c] = i
	}
	return &MultiLabelBinarizer{
		classes: append([]string(nil), doc.Classes...),
		index:   index,
		version: doc.SklearnVersion,
	}, nil
}

func (b *MultiLabelBinarizer) Kind() string { return KindMultiLabelBinarizer }

func (b *MultiLabelBinarizer) SklearnVersion() string { return b.version }

func (b *MultiLabelBinarizer) Classes() []string { return append([]string(nil), b.classes...) }

func (b *MultiLabelBinarizer) Transform(tags []string) ([]float64, error) {
	out := make([]float64, len(b.classes))
	for _, t := range tags {
		if i, ok := b.index[t]; ok {
			out[i] = 1
		}
	}
	return out, nil
}
