// Package predicate parses normalized predicate strings into the
// structured forms the proof layers work with. All functions are pure;
// an expression that does not match a shape is reported with a false
// ok value, never an error.
package predicate

import (
	"regexp"
	"strings"
)

// BinaryOp is the parsed form of an expression recognized as op(a, b),
// a.op(b), or a op b. The operand strings are kept verbatim (trimmed) so
// rules can recurse into them.
type BinaryOp struct {
	Op    string
	Left  string
	Right string
}

var (
	callHeadRe  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)\s*\(`)
	identRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	identCallRe = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_]*\.)?empty\(\s*\)$`)
	infixRe     = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(.+)$`)
)

// ParseBinaryOp recognizes a binary operation in one of three notations,
// tried in order: function call op(left, right), method call left.op(right),
// and generic infix left op right. The infix form is non-greedy on the left
// operand, so the operator is the first whitespace-delimited token after it.
func ParseBinaryOp(expr string) (BinaryOp, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return BinaryOp{}, false
	}

	if op, ok := parseCall(expr); ok {
		return op, true
	}
	if op, ok := parseMethodCall(expr); ok {
		return op, true
	}
	return parseInfix(expr)
}

// parseCall handles op(left, right). The argument list is split at the
// first top-level comma so nested calls stay intact.
func parseCall(expr string) (BinaryOp, bool) {
	m := callHeadRe.FindStringSubmatch(expr)
	if m == nil {
		return BinaryOp{}, false
	}
	open := strings.Index(expr, "(")
	if !strings.HasSuffix(expr, ")") || matchingOpen(expr) != open {
		return BinaryOp{}, false
	}

	args := expr[open+1 : len(expr)-1]
	left, right, ok := splitTopLevel(args)
	if !ok {
		return BinaryOp{}, false
	}
	return BinaryOp{Op: m[1], Left: left, Right: right}, true
}

// parseMethodCall handles left.op(right). The method name is the last
// identifier before the final argument list.
func parseMethodCall(expr string) (BinaryOp, bool) {
	if !strings.HasSuffix(expr, ")") {
		return BinaryOp{}, false
	}
	open := matchingOpen(expr)
	if open <= 0 {
		return BinaryOp{}, false
	}

	head := expr[:open]
	dot := strings.LastIndex(head, ".")
	if dot <= 0 {
		return BinaryOp{}, false
	}
	op := strings.TrimSpace(head[dot+1:])
	left := strings.TrimSpace(head[:dot])
	right := strings.TrimSpace(expr[open+1 : len(expr)-1])
	if !identRe.MatchString(op) || left == "" || right == "" {
		return BinaryOp{}, false
	}
	// Reject argument lists with top-level commas; only binary shapes
	// are recognized here.
	if _, _, multi := splitTopLevel(right); multi {
		return BinaryOp{}, false
	}
	return BinaryOp{Op: op, Left: left, Right: right}, true
}

// IsCallNotation reports whether expr is a two-argument function call
// op(a, b), as opposed to a method call or an infix expression. Rules
// use this to tell which operand position holds what.
func IsCallNotation(expr string) bool {
	_, ok := parseCall(strings.TrimSpace(expr))
	return ok
}

func parseInfix(expr string) (BinaryOp, bool) {
	m := infixRe.FindStringSubmatch(expr)
	if m == nil {
		return BinaryOp{}, false
	}
	return BinaryOp{
		Op:    m[2],
		Left:  strings.TrimSpace(m[1]),
		Right: strings.TrimSpace(m[3]),
	}, true
}

// ParseEqualityGoal decomposes an equational goal into its two sides.
// Recognized forms are strict equality (left === right) and an eqv call,
// optionally qualified: eqv(a, b) or Instance.eqv(a, b).
func ParseEqualityGoal(goal string) (left, right string, ok bool) {
	goal = strings.TrimSpace(goal)

	if idx := strings.Index(goal, "==="); idx >= 0 {
		left = strings.TrimSpace(goal[:idx])
		right = strings.TrimSpace(goal[idx+3:])
		if left == "" || right == "" {
			return "", "", false
		}
		return left, right, true
	}

	op, parsed := parseCall(goal)
	if !parsed {
		return "", "", false
	}
	name := op.Op
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[dot+1:]
	}
	if name != "eqv" {
		return "", "", false
	}
	return op.Left, op.Right, true
}

// StructurallyEqual reports whether two expressions are equal after
// stripping all whitespace. This is a syntactic, not semantic, check:
// reordered-but-equal expressions compare unequal by design.
func StructurallyEqual(a, b string) bool {
	return stripSpace(a) == stripSpace(b)
}

// IsIdentityElement reports whether the expression denotes a monoid
// identity: bare empty or mempty, or an empty() call, optionally
// qualified as Instance.empty().
func IsIdentityElement(expr string) bool {
	expr = stripSpace(expr)
	if expr == "empty" || expr == "mempty" {
		return true
	}
	return identCallRe.MatchString(expr)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// splitTopLevel splits s at its first comma outside parentheses. ok is
// false when no top-level comma exists.
func splitTopLevel(s string) (left, right string, ok bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
			}
		}
	}
	return "", "", false
}

// matchingOpen returns the index of the '(' that matches the trailing ')'
// of expr, or -1 when the parentheses do not balance.
func matchingOpen(expr string) int {
	depth := 0
	for i := len(expr) - 1; i >= 0; i-- {
		switch expr[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
