package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/tprove/internal/types"
)

func TestTryProveEntailment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		goal   string
		facts  []types.Fact
		proven bool
	}{
		{
			name: "bounded variable entails weaker lower bound",
			goal: "x >= 0",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 1"},
				{Variable: "x", Predicate: "x <= 10"},
			},
			proven: true,
		},
		{
			name: "bound not entailed has counterexample",
			goal: "x >= 11",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 1"},
				{Variable: "x", Predicate: "x <= 10"},
			},
			proven: false,
		},
		{
			name: "sum bound from two variables",
			goal: "x + y > 0",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 1"},
				{Variable: "y", Predicate: "y >= 0"},
			},
			proven: true,
		},
		{
			name: "strict bound not entailed by equal bound",
			goal: "x > 1",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 1"},
			},
			proven: false,
		},
		{
			name: "strict fact entails non-strict goal",
			goal: "x >= 1",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x > 1"},
			},
			proven: true,
		},
		{
			name: "conjunction fact",
			goal: "x >= 0",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 0 && x <= 255"},
			},
			proven: true,
		},
		{
			name: "conjunction goal needs every conjunct",
			goal: "x >= 0 && x <= 255",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 2 && x <= 100"},
			},
			proven: true,
		},
		{
			name: "equality fact entails range",
			goal: "x >= 5",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x == 5"},
			},
			proven: true,
		},
		{
			name: "equality goal from tight bounds",
			goal: "x == 5",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 5"},
				{Variable: "x", Predicate: "x <= 5"},
			},
			proven: true,
		},
		{
			name: "coefficients and constants",
			goal: "2*x - 3 >= 1",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 2"},
			},
			proven: true,
		},
		{
			name: "chained variables",
			goal: "z >= 0",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 1"},
				{Variable: "y", Predicate: "y >= x"},
				{Variable: "z", Predicate: "z >= y"},
			},
			proven: true,
		},
		{
			name: "no applicable facts",
			goal: "x > 0",
			facts: []types.Fact{
				{Variable: "xs", Predicate: "nonEmpty(xs)"},
			},
			proven: false,
		},
		{
			name: "non-linear fact is skipped not fatal",
			goal: "x >= 0",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x * x >= 0"},
				{Variable: "x", Predicate: "x >= 3"},
			},
			proven: true,
		},
		{
			name: "non-linear goal is inapplicable",
			goal: "x * y > 0",
			facts: []types.Fact{
				{Variable: "x", Predicate: "x >= 1"},
			},
			proven: false,
		},
		{
			name:   "empty facts",
			goal:   "x > 0",
			facts:  nil,
			proven: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, step := TryProve(tt.goal, tt.facts)
			require.Equal(t, tt.proven, result.Proven, result.Reason)
			if tt.proven {
				require.NotNil(t, step)
				assert.Equal(t, "fourier_motzkin", step.Rule)
				assert.Equal(t, types.MethodLinear, result.Method)
				assert.NotEmpty(t, step.UsedFacts)
			}
		})
	}
}

func TestRationalExactness(t *testing.T) {
	t.Parallel()
	// 1/3 + 1/3 + 1/3 == 1 exactly; floating point would not be trusted
	// at this boundary.
	facts := []types.Fact{
		{Variable: "x", Predicate: "x >= 1/3"},
		{Variable: "y", Predicate: "y >= 1/3"},
		{Variable: "z", Predicate: "z >= 1/3"},
	}
	result, _ := TryProve("x + y + z >= 1", facts)
	assert.True(t, result.Proven, result.Reason)

	result, _ = TryProve("x + y + z > 1", facts)
	assert.False(t, result.Proven)
}

func TestParseComparisonShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		pred string
		ok   bool
		n    int
	}{
		{"x > 0", true, 1},
		{"x >= 0", true, 1},
		{"x == 5", true, 2},
		{"2*x + 3*y <= 12", true, 1},
		{"-x < 4", true, 1},
		{"x ^ 2 > 0", false, 0},
		{"x * y > 0", false, 0},
		{"nonEmpty(xs)", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		cs, ok := parseComparison(tt.pred)
		assert.Equal(t, tt.ok, ok, tt.pred)
		assert.Len(t, cs, tt.n, tt.pred)
	}
}
