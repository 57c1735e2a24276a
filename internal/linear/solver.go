package linear

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/gnoverse/tprove/internal/types"
)

// TryProve attempts to show that the facts entail the goal. The goal is
// negated and added to the constraint set built from the applicable
// facts; if Fourier-Motzkin elimination leaves a contradictory
// variable-free system, the negation is unsatisfiable and the goal is
// entailed. Failure to prove is a normal outcome and simply falls
// through to the next layer.
func TryProve(goal string, facts []types.Fact) (types.ProofResult, *types.ProofStep) {
	system, used, ok := factConstraints(facts)
	if !ok {
		return notProven("no linear facts applicable to the goal"), nil
	}

	// A conjunction goal is entailed when each conjunct is.
	conjuncts := types.Conjuncts(goal)
	for _, c := range conjuncts {
		if !entails(system, c) {
			return notProven(fmt.Sprintf("facts do not entail %q", c)), nil
		}
	}

	step := &types.ProofStep{
		Rule:          "fourier_motzkin",
		Description:   "linear arithmetic entailment",
		Justification: fmt.Sprintf("negation of %q is unsatisfiable under the known bounds", goal),
		UsedFacts:     used,
	}
	return types.ProofResult{
		Proven: true,
		Method: types.MethodLinear,
		Reason: fmt.Sprintf("linear arithmetic: facts entail %q", goal),
	}, step
}

func notProven(reason string) types.ProofResult {
	return types.ProofResult{Proven: false, Reason: reason}
}

// factConstraints converts every linear fact conjunct into constraints.
// Non-linear or unparsable conjuncts are skipped. ok is false when no
// fact contributed anything.
func factConstraints(facts []types.Fact) ([]constraint, []types.Fact, bool) {
	var system []constraint
	var used []types.Fact
	for _, f := range facts {
		contributed := false
		for _, conjunct := range types.Conjuncts(f.Predicate) {
			cs, ok := parseComparison(conjunct)
			if !ok {
				continue
			}
			system = append(system, cs...)
			contributed = true
		}
		if contributed {
			used = append(used, f)
		}
	}
	return system, used, len(system) > 0
}

// entails reports whether the constraint system entails a single
// comparison. An equality goal is split into its two non-strict halves,
// since the negation of an equality is a disjunction.
func entails(system []constraint, goalPred string) bool {
	trimmed := strings.TrimSpace(goalPred)
	m := comparisonRe.FindStringSubmatch(trimmed)
	if m == nil {
		return false
	}
	if m[2] == "==" {
		return entails(system, m[1]+"<="+m[3]) && entails(system, m[1]+">="+m[3])
	}

	negated, ok := negateComparison(trimmed)
	if !ok {
		return false
	}
	full := make([]constraint, 0, len(system)+len(negated))
	full = append(full, system...)
	full = append(full, negated...)
	return unsatisfiable(full)
}

// unsatisfiable decides whether the system has no rational solution, by
// eliminating variables one at a time and checking the variable-free
// residue for a contradiction.
func unsatisfiable(system []constraint) bool {
	for {
		v, ok := pickVariable(system)
		if !ok {
			break
		}
		system = eliminate(system, v)
	}
	for _, c := range system {
		if contradiction(c) {
			return true
		}
	}
	return false
}

// pickVariable returns the lexicographically first variable still
// mentioned, for deterministic elimination order.
func pickVariable(system []constraint) (string, bool) {
	vars := map[string]struct{}{}
	for _, c := range system {
		for v := range c.coeffs {
			vars[v] = struct{}{}
		}
	}
	if len(vars) == 0 {
		return "", false
	}
	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}
	sort.Strings(names)
	return names[0], true
}

// eliminate removes one variable by combining every lower bound with
// every upper bound. Constraints not mentioning the variable pass
// through unchanged.
func eliminate(system []constraint, v string) []constraint {
	var lower, upper, rest []constraint
	for _, c := range system {
		coeff, ok := c.coeffs[v]
		switch {
		case !ok:
			rest = append(rest, c)
		case coeff.Sign() > 0:
			// coeff*v + ... <= 0 bounds v from above.
			upper = append(upper, c)
		default:
			lower = append(lower, c)
		}
	}

	out := rest
	for _, lo := range lower {
		for _, up := range upper {
			// Scale so the coefficients of v cancel: |lo.coeff|*up + up.coeff*|lo|.
			a := new(big.Rat).Neg(lo.coeffs[v]) // positive
			b := new(big.Rat).Set(up.coeffs[v]) // positive
			combined := lo.scaled(b).plus(up.scaled(a))
			delete(combined.coeffs, v)
			out = append(out, combined)
		}
	}
	return out
}

// contradiction reports whether a variable-free constraint is violated:
// konst <= 0 fails for positive konst, konst < 0 fails for non-negative
// konst.
func contradiction(c constraint) bool {
	if len(c.coeffs) != 0 {
		return false
	}
	if c.strict {
		return c.konst.Sign() >= 0
	}
	return c.konst.Sign() > 0
}
