package predictor

import (
	"fmt"
	"strings"
)

// Block identifies one of the three computed feature groups.
type Block int

const (
	BlockNumeric Block = iota
	BlockCategorical
	BlockInterests
)

// Widths are the computed block widths for one request.
type Widths struct {
	Numeric     int
	Categorical int
	Interests   int
}

func (w Widths) of(b Block) int {
	switch b {
	case BlockNumeric:
		return w.Numeric
	case BlockCategorical:
		return w.Categorical
	}
	return w.Interests
}

// Total is the width if every block were concatenated.
func (w Widths) Total() int { return w.Numeric + w.Categorical + w.Interests }

// Strategy is one way of stacking blocks into the classifier input.
type Strategy struct {
	Name   string
	Blocks []Block
	// NoInterests restricts the strategy to requests whose interest block is empty.
	NoInterests bool
}

func (s Strategy) Width(w Widths) int {
	n := 0
	for _, b := range s.Blocks {
		n += w.of(b)
	}
	return n
}

func (s Strategy) applies(w Widths, expected int) bool {
	if s.NoInterests && w.Interests != 0 {
		return false
	}
	return s.Width(w) == expected
}

// Strategies are evaluated in this order; the first exact width match wins.
var Strategies = []Strategy{
	{Name: "cat_trans + mlb", Blocks: []Block{BlockCategorical, BlockInterests}},
	{Name: "numeric + cat_trans + mlb", Blocks: []Block{BlockNumeric, BlockCategorical, BlockInterests}},
	{Name: "cat_trans only", Blocks: []Block{BlockCategorical}, NoInterests: true},
	{Name: "numeric + cat_trans", Blocks: []Block{BlockNumeric, BlockCategorical}, NoInterests: true},
}

const (
	strategyCatInterests        = 0
	strategyNumericCatInterests = 1
)

// Selection is the chosen strategy. Heuristic is set when the classifier did
// not report its input width and the choice was a guess.
type Selection struct {
	Strategy  Strategy
	Heuristic bool
}

// Label names the selection for logs and metrics.
func (s Selection) Label() string {
	if s.Heuristic {
		return s.Strategy.Name + " (heuristic)"
	}
	return s.Strategy.Name
}

// ShapeMismatch is returned when no strategy matches the expected width.
type ShapeMismatch struct {
	Expected int
	Widths   Widths
	Tried    []string
}

func (e *ShapeMismatch) Error() string {
	return fmt.Sprintf("no stacking strategy yields %d features (num=%d cat=%d mlb=%d, tried %s)",
		e.Expected, e.Widths.Numeric, e.Widths.Categorical, e.Widths.Interests, strings.Join(e.Tried, "; "))
}

// SelectStrategy picks the stacking strategy for the given widths. With a
// known expected width it returns the first exact match or a *ShapeMismatch.
// Otherwise it assumes the categorical transformer subsumes the numeric
// features whenever its output is at least as wide as the numeric block.
func SelectStrategy(w Widths, expected int, known bool) (Selection, error) {
	if !known {
		if w.Categorical >= w.Numeric {
			return Selection{Strategy: Strategies[strategyCatInterests], Heuristic: true}, nil
		}
		return Selection{Strategy: Strategies[strategyNumericCatInterests], Heuristic: true}, nil
	}

	tried := make([]string, 0, len(Strategies))
	for _, s := range Strategies {
		tried = append(tried, s.Name)
		if s.applies(w, expected) {
			return Selection{Strategy: s}, nil
		}
	}
	return Selection{}, &ShapeMismatch{Expected: expected, Widths: w, Tried: tried}
}

// StrategyNames lists every strategy in evaluation order.
func StrategyNames() []string {
	names := make([]string, len(Strategies))
	for i, s := range Strategies {
		names[i] = s.Name
	}
	return names
}
