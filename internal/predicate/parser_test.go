package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinaryOp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expr     string
		expected BinaryOp
		ok       bool
	}{
		{
			name:     "function call",
			expr:     "combine(empty, a)",
			expected: BinaryOp{Op: "combine", Left: "empty", Right: "a"},
			ok:       true,
		},
		{
			name:     "nested function call keeps inner call intact",
			expr:     "combine(combine(a, b), c)",
			expected: BinaryOp{Op: "combine", Left: "combine(a, b)", Right: "c"},
			ok:       true,
		},
		{
			name:     "qualified function call",
			expr:     "Monoid.combine(a, b)",
			expected: BinaryOp{Op: "Monoid.combine", Left: "a", Right: "b"},
			ok:       true,
		},
		{
			name:     "method call",
			expr:     "a.combine(b)",
			expected: BinaryOp{Op: "combine", Left: "a", Right: "b"},
			ok:       true,
		},
		{
			name:     "infix operator",
			expr:     "a <> b",
			expected: BinaryOp{Op: "<>", Left: "a", Right: "b"},
			ok:       true,
		},
		{
			name:     "infix takes first operator after minimal left",
			expr:     "x + y > 0",
			expected: BinaryOp{Op: "+", Left: "x", Right: "y > 0"},
			ok:       true,
		},
		{
			name: "bare identifier is not a binary op",
			expr: "a",
			ok:   false,
		},
		{
			name: "unary call is not a binary op",
			expr: "f(a)",
			ok:   false,
		},
		{
			name: "empty input",
			expr: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseBinaryOp(tt.expr)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseEqualityGoal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		goal  string
		left  string
		right string
		ok    bool
	}{
		{"strict equality", "combine(empty, a) === a", "combine(empty, a)", "a", true},
		{"eqv call", "eqv(a, b)", "a", "b", true},
		{"qualified eqv call", "Eq.eqv(combine(a, b), c)", "combine(a, b)", "c", true},
		{"not an equality", "x > 0", "", "", false},
		{"other call", "gt(a, b)", "", "", false},
		{"dangling equality", "a ===", "", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			left, right, ok := ParseEqualityGoal(tt.goal)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.left, left)
			assert.Equal(t, tt.right, right)
		})
	}
}

func TestStructurallyEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, StructurallyEqual("combine(a, b)", "combine( a,b )"))
	assert.True(t, StructurallyEqual("x+y", " x + y "))
	assert.False(t, StructurallyEqual("x+y", "y+x"))
}

func TestIsCallNotation(t *testing.T) {
	t.Parallel()
	for _, expr := range []string{"map(f, xs)", "Functor.map(f, xs)", " combine(a, b) "} {
		assert.True(t, IsCallNotation(expr), expr)
	}
	for _, expr := range []string{"xs.map(f)", "fa.map(f).map(g)", "a op b", "map(f)"} {
		assert.False(t, IsCallNotation(expr), expr)
	}
}

func TestIsIdentityElement(t *testing.T) {
	t.Parallel()
	for _, expr := range []string{"empty", "mempty", "empty()", "Monoid.empty()", "  empty "} {
		assert.True(t, IsIdentityElement(expr), expr)
	}
	for _, expr := range []string{"a", "empty(a)", "Empty", "monoid.empty"} {
		assert.False(t, IsIdentityElement(expr), expr)
	}
}
