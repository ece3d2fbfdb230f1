package predictor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With an empty interest block the later strategies have the same widths as
// the first two, so the earlier ones always win.
func TestSelectStrategy_ExactMatch(t *testing.T) {
	tests := []struct {
		name     string
		widths   Widths
		expected int
		want     string
	}{
		{"cat + mlb", Widths{Numeric: 11, Categorical: 17, Interests: 3}, 20, "cat_trans + mlb"},
		{"numeric + cat + mlb", Widths{Numeric: 11, Categorical: 6, Interests: 3}, 20, "numeric + cat_trans + mlb"},
		{"empty interests, cat width", Widths{Numeric: 11, Categorical: 17, Interests: 0}, 17, "cat_trans + mlb"},
		{"empty interests, numeric + cat width", Widths{Numeric: 11, Categorical: 6, Interests: 0}, 17, "numeric + cat_trans + mlb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := SelectStrategy(tt.widths, tt.expected, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.Strategy.Name)
			assert.False(t, sel.Heuristic)
			assert.Equal(t, tt.expected, sel.Strategy.Width(tt.widths))
		})
	}
}

func TestSelectStrategy_CatInterestsTakesPrecedence(t *testing.T) {
	// With an empty numeric block (a) and (b) have the same width; (a) must win.
	w := Widths{Numeric: 0, Categorical: 5, Interests: 3}
	require.Equal(t, Strategies[0].Width(w), Strategies[1].Width(w))

	sel, err := SelectStrategy(w, 8, true)
	require.NoError(t, err)
	assert.Equal(t, "cat_trans + mlb", sel.Strategy.Name)
	assert.NotContains(t, sel.Strategy.Blocks, BlockNumeric)
}

func TestSelectStrategy_NoInterestStrategiesRequireEmptyBlock(t *testing.T) {
	// cat width alone matches, but the interest block is not empty
	w := Widths{Numeric: 11, Categorical: 17, Interests: 3}
	_, err := SelectStrategy(w, 17, true)
	require.Error(t, err)

	var mismatch *ShapeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 17, mismatch.Expected)
	assert.Equal(t, w, mismatch.Widths)
	assert.Equal(t, StrategyNames(), mismatch.Tried)
}

func TestSelectStrategy_Mismatch(t *testing.T) {
	w := Widths{Numeric: 11, Categorical: 6, Interests: 4}
	_, err := SelectStrategy(w, 99, true)

	var mismatch *ShapeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 21, mismatch.Widths.Total())
	assert.Contains(t, err.Error(), "no stacking strategy yields 99 features")
}

func TestSelectStrategy_Heuristic(t *testing.T) {
	sel, err := SelectStrategy(Widths{Numeric: 11, Categorical: 11, Interests: 2}, 0, false)
	require.NoError(t, err)
	assert.True(t, sel.Heuristic)
	assert.Equal(t, "cat_trans + mlb", sel.Strategy.Name)
	assert.Equal(t, "cat_trans + mlb (heuristic)", sel.Label())

	sel, err = SelectStrategy(Widths{Numeric: 11, Categorical: 6, Interests: 2}, 0, false)
	require.NoError(t, err)
	assert.True(t, sel.Heuristic)
	assert.Equal(t, "numeric + cat_trans + mlb", sel.Strategy.Name)
}
