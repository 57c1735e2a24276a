package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/tprove/internal/types"
)

func facts(pairs ...string) []types.Fact {
	out := make([]types.Fact, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.Fact{Variable: pairs[i], Predicate: pairs[i+1]})
	}
	return out
}

func TestLawRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		goal   string
		rule   string
		proven bool
	}{
		{"left identity", "combine(empty, a) === a", "left_identity", true},
		{"left identity qualified empty", "combine(Monoid.empty(), xs) === xs", "left_identity", true},
		{"right identity", "combine(a, empty) === a", "right_identity", true},
		{"right identity wrong result", "combine(a, empty) === b", "", false},
		{"reflexivity", "a === a", "reflexivity", true},
		{"reflexivity whitespace insensitive", "combine(a,b) === combine( a, b )", "reflexivity", true},
		{
			"associativity",
			"combine(combine(a, b), c) === combine(a, combine(b, c))",
			"associativity",
			true,
		},
		{
			"associativity mirror",
			"combine(a, combine(b, c)) === combine(combine(a, b), c)",
			"associativity",
			true,
		},
		{
			"associativity swapped operand fails",
			"combine(combine(b, a), c) === combine(a, combine(b, c))",
			"",
			false,
		},
		{
			"associativity different operators fails",
			"combine(combine(a, b), c) === merge(a, merge(b, c))",
			"",
			false,
		},
		{"commutativity", "add(a, b) === add(b, a)", "commutativity", true},
		{"commutativity infix", "a <> b === b <> a", "commutativity", true},
		{"functor identity", "map(id, fa) === fa", "functor_identity", true},
		{"functor identity arrow", "map(x => x, xs) === xs", "functor_identity", true},
		{"functor identity method call", "fa.map(identity) === fa", "functor_identity", true},
		{"functor identity wrong collection", "map(id, fa) === fb", "", false},
		{
			"functor identity function expression",
			"map(function(y) { return y; }, xs) === xs",
			"functor_identity",
			true,
		},
		{"functor identity arrow to other name", "map(x => y, xs) === xs", "", false},
		{
			"functor composition",
			"map(g, map(f, fa)) === map(compose(g, f), fa)",
			"functor_composition",
			true,
		},
		{
			"functor composition reversed sides",
			"map(compose(g, f), fa) === map(g, map(f, fa))",
			"functor_composition",
			true,
		},
		{
			"functor composition method notation",
			"fa.map(f).map(g) === fa.map(compose(g, f))",
			"functor_composition",
			true,
		},
		{
			"functor composition different collections",
			"map(f, map(f, xs)) === map(f, ys)",
			"",
			false,
		},
		{
			"functor composition same function is not enough",
			"map(g, map(f, xs)) === map(g, ys)",
			"",
			false,
		},
		{"non-equality goal", "x > 0", "", false},
	}

	engine := NewEngine()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, step := engine.TryProve(tt.goal, nil)
			require.Equal(t, tt.proven, result.Proven, result.Reason)
			if tt.proven {
				require.NotNil(t, step)
				assert.Equal(t, tt.rule, step.Rule)
				assert.Equal(t, types.MethodAlgebra, result.Method)
				assert.Contains(t, result.Reason, tt.rule)
			}
		})
	}
}

func TestNumericRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		goal      string
		facts     []types.Fact
		rule      string
		proven    bool
		usedFacts int
	}{
		{
			"sum of positives",
			"x + y > 0",
			facts("x", "x > 0", "y", "y > 0"),
			"sum_of_positives", true, 2,
		},
		{
			"sum of positives missing bound",
			"x + y > 0",
			facts("x", "x > 0"),
			"", false, 0,
		},
		{
			"sum of non-negatives",
			"x + y >= 0",
			facts("x", "x >= 0", "y", "y >= 0"),
			"sum_of_non_negatives", true, 2,
		},
		{
			"positive implies non-negative",
			"x >= 0",
			facts("x", "x > 0"),
			"positive_implies_non_negative", true, 1,
		},
		{
			"doubling",
			"2 * x > x",
			facts("x", "x > 0"),
			"doubling", true, 1,
		},
		{
			"product of positives",
			"x * y > 0",
			facts("x", "x > 0", "y", "y > 0"),
			"product_of_positives", true, 2,
		},
		{
			"positive greater than negative",
			"x > y",
			facts("x", "x > 0", "y", "y < 0"),
			"positive_greater_than_negative", true, 2,
		},
		{
			"byte range from separate facts",
			"x >= 0 && x <= 255",
			facts("x", "x >= 0", "x", "x <= 255"),
			"byte_range", true, 2,
		},
		{
			"byte range from conjunction fact",
			"x >= 0 && x <= 255",
			facts("x", "x >= 0 && x <= 255"),
			"byte_range", true, 2,
		},
		{
			"port range",
			"p >= 1 && p <= 65535",
			facts("p", "p >= 1", "p", "p <= 65535"),
			"port_range", true, 2,
		},
		{
			"tautology",
			"  true ",
			nil,
			"tautology", true, 0,
		},
		{
			"fact lookup positive",
			"n > 0",
			facts("n", "n > 0"),
			"fact_lookup_positive", true, 1,
		},
		{
			"fact lookup non-negative",
			"n >= 0",
			facts("n", "n >= 0"),
			"fact_lookup_non_negative", true, 1,
		},
		{
			"unfounded goal",
			"x > 0",
			nil,
			"", false, 0,
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, step := engine.TryProve(tt.goal, tt.facts)
			require.Equal(t, tt.proven, result.Proven, result.Reason)
			if tt.proven {
				require.NotNil(t, step)
				assert.Equal(t, tt.rule, step.Rule)
				assert.Len(t, step.UsedFacts, tt.usedFacts)
			}
		})
	}
}

type alwaysMatchRule struct{ name string }

func (r alwaysMatchRule) Name() string        { return r.name }
func (r alwaysMatchRule) Description() string { return "matches everything" }
func (r alwaysMatchRule) Match(string, []types.Fact) (bool, []types.Fact) {
	return true, nil
}

func TestCustomRulesRunAfterBuiltins(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	engine.Register(alwaysMatchRule{name: "custom_catch_all"})

	// A goal a built-in handles still reports the built-in rule.
	result, step := engine.TryProve("a === a", nil)
	require.True(t, result.Proven)
	assert.Equal(t, "reflexivity", step.Rule)

	// A goal no built-in handles falls through to the custom rule.
	result, step = engine.TryProve("anything at all", nil)
	require.True(t, result.Proven)
	assert.Equal(t, "custom_catch_all", step.Rule)
}

func TestDisableRemovesRuleByName(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	before := len(engine.Rules())

	engine.Disable("reflexivity")

	assert.Len(t, engine.Rules(), before-1)
	result, _ := engine.TryProve("a === a", nil)
	assert.False(t, result.Proven)

	// unknown names are a no-op
	engine.Disable("no_such_rule")
	assert.Len(t, engine.Rules(), before-1)
}

func TestRuleEvaluationDoesNotMutateInputs(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	fs := facts("x", "x > 0", "y", "y > 0")
	goal := "x + y > 0"

	first, _ := engine.TryProve(goal, fs)
	second, _ := engine.TryProve(goal, fs)

	assert.Equal(t, first, second)
	assert.Equal(t, facts("x", "x > 0", "y", "y > 0"), fs)
}
