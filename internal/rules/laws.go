package rules

import (
	"regexp"
	"strings"

	"github.com/gnoverse/tprove/internal/predicate"
	"github.com/gnoverse/tprove/internal/types"
)

// Typeclass-law rules. All of them decompose an equality goal and compare
// operand positions with the parser's syntactic equality; none of them
// consume facts.

// LeftIdentityRule matches combine(empty, a) === a and its method and
// infix spellings: the first operand must be an identity element and the
// right side of the equality must equal the second operand.
type LeftIdentityRule struct{}

func (LeftIdentityRule) Name() string        { return "left_identity" }
func (LeftIdentityRule) Description() string { return "combining the identity on the left is a no-op" }

func (LeftIdentityRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	op, ok := predicate.ParseBinaryOp(left)
	if !ok {
		return false, nil
	}
	return predicate.IsIdentityElement(op.Left) && predicate.StructurallyEqual(right, op.Right), nil
}

// RightIdentityRule is the mirror of LeftIdentityRule: the identity
// element must be the second operand and the result the first.
type RightIdentityRule struct{}

func (RightIdentityRule) Name() string { return "right_identity" }
func (RightIdentityRule) Description() string {
	return "combining the identity on the right is a no-op"
}

func (RightIdentityRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	op, ok := predicate.ParseBinaryOp(left)
	if !ok {
		return false, nil
	}
	return predicate.IsIdentityElement(op.Right) && predicate.StructurallyEqual(right, op.Left), nil
}

// AssociativityRule matches (a∘b)∘c === a∘(b∘c) and its mirror, for any
// operator appearing identically on both sides. The three aligned
// sub-operands must be pairwise structurally equal.
type AssociativityRule struct{}

func (AssociativityRule) Name() string        { return "associativity" }
func (AssociativityRule) Description() string { return "regrouping operands preserves the result" }

func (AssociativityRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	lo, ok := predicate.ParseBinaryOp(left)
	if !ok {
		return false, nil
	}
	ro, ok := predicate.ParseBinaryOp(right)
	if !ok || lo.Op != ro.Op {
		return false, nil
	}

	// (a∘b)∘c === a∘(b∘c)
	if inner, ok := predicate.ParseBinaryOp(lo.Left); ok && inner.Op == lo.Op {
		if rin, ok := predicate.ParseBinaryOp(ro.Right); ok && rin.Op == ro.Op {
			if predicate.StructurallyEqual(inner.Left, ro.Left) &&
				predicate.StructurallyEqual(inner.Right, rin.Left) &&
				predicate.StructurallyEqual(lo.Right, rin.Right) {
				return true, nil
			}
		}
	}

	// a∘(b∘c) === (a∘b)∘c
	if inner, ok := predicate.ParseBinaryOp(lo.Right); ok && inner.Op == lo.Op {
		if lin, ok := predicate.ParseBinaryOp(ro.Left); ok && lin.Op == ro.Op {
			if predicate.StructurallyEqual(lo.Left, lin.Left) &&
				predicate.StructurallyEqual(inner.Left, lin.Right) &&
				predicate.StructurallyEqual(inner.Right, ro.Right) {
				return true, nil
			}
		}
	}

	return false, nil
}

// CommutativityRule matches a∘b === b∘a: same operator on both sides with
// the operands swapped crosswise.
type CommutativityRule struct{}

func (CommutativityRule) Name() string        { return "commutativity" }
func (CommutativityRule) Description() string { return "swapping operands preserves the result" }

func (CommutativityRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	lo, ok := predicate.ParseBinaryOp(left)
	if !ok {
		return false, nil
	}
	ro, ok := predicate.ParseBinaryOp(right)
	if !ok || lo.Op != ro.Op {
		return false, nil
	}
	return predicate.StructurallyEqual(lo.Left, ro.Right) &&
		predicate.StructurallyEqual(lo.Right, ro.Left), nil
}

// ReflexivityRule matches any equality goal whose two sides are
// structurally equal, independent of facts.
type ReflexivityRule struct{}

func (ReflexivityRule) Name() string        { return "reflexivity" }
func (ReflexivityRule) Description() string { return "both sides of the equality are identical" }

func (ReflexivityRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	return predicate.StructurallyEqual(left, right), nil
}

// FunctorIdentityRule matches map(id, fa) === fa variants. The mapped
// function must literally be an identity form; the other side of the
// equality must equal the mapped collection.
type FunctorIdentityRule struct{}

func (FunctorIdentityRule) Name() string        { return "functor_identity" }
func (FunctorIdentityRule) Description() string { return "mapping the identity function is a no-op" }

func (FunctorIdentityRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	for _, pair := range [][2]string{{left, right}, {right, left}} {
		fn, collection, ok := mapParts(pair[0])
		if !ok {
			continue
		}
		if isIdentityFn(fn) && predicate.StructurallyEqual(pair[1], collection) {
			return true, nil
		}
	}
	return false, nil
}

// FunctorCompositionRule matches nested map calls on one side aligning
// with a single map call on the other, sharing the same innermost
// collection operand. Which side carries the nesting does not matter.
type FunctorCompositionRule struct{}

func (FunctorCompositionRule) Name() string { return "functor_composition" }
func (FunctorCompositionRule) Description() string {
	return "mapping twice equals mapping the composed function"
}

func (FunctorCompositionRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	left, right, ok := predicate.ParseEqualityGoal(goal)
	if !ok {
		return false, nil
	}
	for _, pair := range [][2]string{{left, right}, {right, left}} {
		_, nestedCollection, ok := mapParts(pair[0])
		if !ok {
			continue
		}
		// The outer map's collection operand must itself be a map; its
		// collection is the innermost operand both sides share.
		_, innerCollection, ok := mapParts(nestedCollection)
		if !ok {
			continue
		}
		_, singleCollection, ok := mapParts(pair[1])
		if !ok {
			continue
		}
		if predicate.StructurallyEqual(innerCollection, singleCollection) {
			return true, nil
		}
	}
	return false, nil
}

var (
	arrowIdentityRe = regexp.MustCompile(`^\(?([A-Za-z_][A-Za-z0-9_]*)\)?=>([A-Za-z_][A-Za-z0-9_]*)$`)
	funcIdentityRe  = regexp.MustCompile(`^function\(([A-Za-z_][A-Za-z0-9_]*)\)\{return([A-Za-z_][A-Za-z0-9_]*);?\}$`)
)

// isIdentityFn reports whether the expression is literally an identity
// function: id, identity, an identity arrow, or an identity function
// expression. The parameter and the returned name are captured
// separately and compared here; RE2 has no backreferences.
func isIdentityFn(expr string) bool {
	s := strings.Join(strings.Fields(expr), "")
	if s == "id" || s == "identity" {
		return true
	}
	if m := arrowIdentityRe.FindStringSubmatch(s); m != nil && m[1] == m[2] {
		return true
	}
	if m := funcIdentityRe.FindStringSubmatch(s); m != nil && m[1] == m[2] {
		return true
	}
	return false
}

// mapParts decomposes a map expression into its function and collection
// operands. Call notation map(f, xs) carries the function first; method
// notation xs.map(f) puts the collection in the receiver.
func mapParts(expr string) (fn, collection string, ok bool) {
	op, ok := parseMapOp(expr)
	if !ok {
		return "", "", false
	}
	if predicate.IsCallNotation(expr) {
		return op.Left, op.Right, true
	}
	return op.Right, op.Left, true
}

// parseMapOp parses expr as a binary op whose operator is map, possibly
// qualified (Functor.map).
func parseMapOp(expr string) (predicate.BinaryOp, bool) {
	op, ok := predicate.ParseBinaryOp(expr)
	if !ok {
		return predicate.BinaryOp{}, false
	}
	name := op.Op
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[dot+1:]
	}
	if name != "map" {
		return predicate.BinaryOp{}, false
	}
	return op, true
}
