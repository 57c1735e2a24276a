// Package rules implements the algebraic proof layer: an ordered catalog
// of pattern-matching rules covering typeclass laws and simple numeric
// implications. Rules are evaluated in registration order and the first
// match wins, so built-ins always get first refusal over custom rules.
package rules

import (
	"fmt"

	"github.com/gnoverse/tprove/internal/types"
)

// Rule is the interface implemented by every algebraic rule.
//
// Match examines the goal and the supplied facts and reports whether the
// rule discharges the goal, along with the facts it consumed (empty for
// purely equational rules). Match must not mutate the goal or the facts.
type Rule interface {
	Name() string
	Description() string
	Match(goal string, facts []types.Fact) (bool, []types.Fact)
}

// Engine owns an ordered rule catalog. The zero value is unusable; use
// NewEngine, which installs the built-in rules in their fixed priority
// order. Registering rules while proofs are running is not supported;
// treat Register as a configuration-time operation.
type Engine struct {
	rules []Rule
}

// NewEngine creates a rule engine with the built-in catalog. Evaluation
// order is significant and matches registration order: the equational
// law rules first, then the numeric rules.
func NewEngine() *Engine {
	e := &Engine{}
	for _, r := range builtinRules() {
		e.Register(r)
	}
	return e
}

// Register appends a rule to the catalog, after every rule registered
// before it.
func (e *Engine) Register(r Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the catalog in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Disable removes a rule from the catalog by name. Unknown names are
// ignored. Like Register, this is a configuration-time operation.
func (e *Engine) Disable(name string) {
	kept := e.rules[:0]
	for _, r := range e.rules {
		if r.Name() != name {
			kept = append(kept, r)
		}
	}
	e.rules = kept
}

// TryProve evaluates the catalog in order against the goal and returns
// the result of the first rule that matches. The returned step, when the
// goal was proven, is usable directly in a proof certificate.
func (e *Engine) TryProve(goal string, facts []types.Fact) (types.ProofResult, *types.ProofStep) {
	for _, r := range e.rules {
		matched, used := r.Match(goal, facts)
		if !matched {
			continue
		}
		step := &types.ProofStep{
			Rule:          r.Name(),
			Description:   r.Description(),
			Justification: fmt.Sprintf("goal %q matches %s", goal, r.Name()),
			UsedFacts:     used,
		}
		return types.ProofResult{
			Proven: true,
			Method: types.MethodAlgebra,
			Reason: fmt.Sprintf("algebraic rule %s: %s", r.Name(), r.Description()),
		}, step
	}
	return types.ProofResult{Proven: false, Reason: "no algebraic rule matched"}, nil
}

func builtinRules() []Rule {
	return []Rule{
		LeftIdentityRule{},
		RightIdentityRule{},
		AssociativityRule{},
		CommutativityRule{},
		ReflexivityRule{},
		FunctorIdentityRule{},
		FunctorCompositionRule{},
		SumOfPositivesRule{},
		SumOfNonNegativesRule{},
		PositiveImpliesNonNegativeRule{},
		DoublingRule{},
		ProductOfPositivesRule{},
		PositiveGreaterThanNegativeRule{},
		ByteRangeRule{},
		PortRangeRule{},
		TautologyRule{},
		FactLookupPositiveRule{},
		FactLookupNonNegativeRule{},
	}
}
