// Package linear implements the linear-arithmetic proof layer. Facts and
// the goal are translated into linear constraints over exact rational
// coefficients and entailment is decided with Fourier-Motzkin variable
// elimination. Non-linear terms make a predicate inapplicable to this
// layer; they are skipped, never reported as errors.
package linear

import (
	"math/big"
	"regexp"
	"strings"
)

// expr is a linear combination of variables plus a constant, all over
// exact rationals.
type expr struct {
	coeffs map[string]*big.Rat
	konst  *big.Rat
}

func newExpr() expr {
	return expr{coeffs: map[string]*big.Rat{}, konst: new(big.Rat)}
}

func (e expr) addTerm(variable string, coeff *big.Rat) {
	if c, ok := e.coeffs[variable]; ok {
		c.Add(c, coeff)
		if c.Sign() == 0 {
			delete(e.coeffs, variable)
		}
		return
	}
	if coeff.Sign() != 0 {
		e.coeffs[variable] = new(big.Rat).Set(coeff)
	}
}

// constraint is a normalized inequality: sum(coeffs*vars) + konst <= 0,
// or < 0 when strict.
type constraint struct {
	expr
	strict bool
}

func (c constraint) scaled(f *big.Rat) constraint {
	out := constraint{expr: newExpr(), strict: c.strict}
	for v, coeff := range c.coeffs {
		out.coeffs[v] = new(big.Rat).Mul(coeff, f)
	}
	out.konst.Mul(c.konst, f)
	return out
}

func (c constraint) plus(other constraint) constraint {
	out := constraint{expr: newExpr(), strict: c.strict || other.strict}
	for v, coeff := range c.coeffs {
		out.addTerm(v, coeff)
	}
	for v, coeff := range other.coeffs {
		out.addTerm(v, coeff)
	}
	out.konst.Add(c.konst, other.konst)
	return out
}

type relation int

const (
	relLT relation = iota
	relLE
	relGT
	relGE
	relEQ
)

var comparisonRe = regexp.MustCompile(`^(.*?)(<=|>=|==|<|>)(.*)$`)

// parseComparison parses a single linear comparison into normalized
// constraints. Equalities become two opposing inequalities. ok is false
// when the predicate is not a linear comparison this layer understands.
func parseComparison(pred string) ([]constraint, bool) {
	m := comparisonRe.FindStringSubmatch(strings.TrimSpace(pred))
	if m == nil {
		return nil, false
	}
	lhs, ok := parseLinearExpr(m[1])
	if !ok {
		return nil, false
	}
	rhs, ok := parseLinearExpr(m[3])
	if !ok {
		return nil, false
	}

	var rel relation
	switch m[2] {
	case "<":
		rel = relLT
	case "<=":
		rel = relLE
	case ">":
		rel = relGT
	case ">=":
		rel = relGE
	case "==":
		rel = relEQ
	}

	// Move everything to the left: lhs - rhs REL 0.
	diff := subtract(lhs, rhs)
	switch rel {
	case relLT:
		return []constraint{{expr: diff, strict: true}}, true
	case relLE:
		return []constraint{{expr: diff, strict: false}}, true
	case relGT:
		return []constraint{{expr: negate(diff), strict: true}}, true
	case relGE:
		return []constraint{{expr: negate(diff), strict: false}}, true
	case relEQ:
		return []constraint{
			{expr: diff, strict: false},
			{expr: negate(diff), strict: false},
		}, true
	}
	return nil, false
}

// negateComparison returns constraints for the negation of pred. A
// negated equality is a disjunction, which this layer cannot represent;
// ok is false in that case.
func negateComparison(pred string) ([]constraint, bool) {
	m := comparisonRe.FindStringSubmatch(strings.TrimSpace(pred))
	if m == nil {
		return nil, false
	}
	var negated string
	switch m[2] {
	case "<":
		negated = ">="
	case "<=":
		negated = ">"
	case ">":
		negated = "<="
	case ">=":
		negated = "<"
	default:
		return nil, false
	}
	return parseComparison(m[1] + negated + m[3])
}

func subtract(a, b expr) expr {
	out := newExpr()
	for v, c := range a.coeffs {
		out.addTerm(v, c)
	}
	for v, c := range b.coeffs {
		out.addTerm(v, new(big.Rat).Neg(c))
	}
	out.konst.Sub(a.konst, b.konst)
	return out
}

func negate(a expr) expr {
	out := newExpr()
	for v, c := range a.coeffs {
		out.addTerm(v, new(big.Rat).Neg(c))
	}
	out.konst.Neg(a.konst)
	return out
}

var termVarRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseLinearExpr parses a sum of terms: numbers, variables, and
// coefficient*variable products. Products of two variables and exponents
// are non-linear and rejected.
func parseLinearExpr(s string) (expr, bool) {
	out := newExpr()
	s = strings.TrimSpace(s)
	if s == "" {
		return out, false
	}
	if strings.ContainsAny(s, "^") || strings.Contains(s, "**") {
		return out, false
	}

	for _, t := range splitTerms(s) {
		variable, coeff, ok := parseTerm(t.text)
		if !ok {
			return out, false
		}
		if t.negative {
			coeff.Neg(coeff)
		}
		if variable == "" {
			out.konst.Add(out.konst, coeff)
		} else {
			out.addTerm(variable, coeff)
		}
	}
	return out, true
}

type signedTerm struct {
	text     string
	negative bool
}

func splitTerms(s string) []signedTerm {
	var terms []signedTerm
	var cur strings.Builder
	neg := false
	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			terms = append(terms, signedTerm{text: t, negative: neg})
		}
		cur.Reset()
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+':
			if strings.TrimSpace(cur.String()) == "" {
				continue
			}
			flush()
			neg = false
		case '-':
			if strings.TrimSpace(cur.String()) == "" {
				neg = !neg
				continue
			}
			flush()
			neg = true
		default:
			cur.WriteByte(s[i])
		}
	}
	flush()
	return terms
}

// parseTerm parses one term: "n", "x", or "n*x" / "x*n" with a rational
// or integer coefficient. A product of two variables is non-linear.
func parseTerm(t string) (variable string, coeff *big.Rat, ok bool) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", nil, false
	}

	parts := strings.Split(t, "*")
	switch len(parts) {
	case 1:
		p := strings.TrimSpace(parts[0])
		if termVarRe.MatchString(p) {
			return p, big.NewRat(1, 1), true
		}
		r, rok := new(big.Rat).SetString(p)
		if !rok {
			return "", nil, false
		}
		return "", r, true
	case 2:
		a := strings.TrimSpace(parts[0])
		b := strings.TrimSpace(parts[1])
		aVar := termVarRe.MatchString(a)
		bVar := termVarRe.MatchString(b)
		if aVar && bVar {
			return "", nil, false // non-linear
		}
		if aVar || bVar {
			numText, varText := a, b
			if aVar {
				numText, varText = b, a
			}
			r, rok := new(big.Rat).SetString(numText)
			if !rok {
				return "", nil, false
			}
			return varText, r, true
		}
		// Two numbers: fold the product into a constant.
		ra, raOK := new(big.Rat).SetString(a)
		rb, rbOK := new(big.Rat).SetString(b)
		if !raOK || !rbOK {
			return "", nil, false
		}
		return "", ra.Mul(ra, rb), true
	default:
		return "", nil, false
	}
}
