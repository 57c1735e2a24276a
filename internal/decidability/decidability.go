// Package decidability tracks which brands were declared compile-time
// decidable and emits structured warnings when a proof for such a brand
// unexpectedly falls through to an external solver or to a runtime
// check. Warnings are observability only; they never change a proof
// result.
package decidability

import (
	"fmt"
	"regexp"

	"github.com/gnoverse/tprove/internal/types"
)

// Strategy names how an obligation was (or was not) discharged.
type Strategy string

const (
	// StrategyStatic covers the in-process layers: constant, type
	// facts, algebra, and linear arithmetic.
	StrategyStatic Strategy = "static"
	// StrategyExternalSolver means an SMT-style plugin proved the goal.
	StrategyExternalSolver Strategy = "external-solver"
	// StrategyRuntimeCheck means no proof was found and the caller
	// must insert a runtime check.
	StrategyRuntimeCheck Strategy = "runtime-check"
)

// Warning reports one decidability mismatch.
type Warning struct {
	Brand    string
	Expected Strategy
	Actual   Strategy
	Reason   string
}

func (w Warning) String() string {
	return fmt.Sprintf("brand %s declared decidable but resolved via %s: %s", w.Brand, w.Actual, w.Reason)
}

// Notifier receives decidability warnings. The CLI wires this to its
// logger; library callers may supply their own sink or none at all.
type Notifier interface {
	Notify(w Warning)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(w Warning)

func (f NotifierFunc) Notify(w Warning) { f(w) }

// Checker evaluates proof outcomes against declared brand expectations.
type Checker struct {
	brands   map[string]types.ConfigBrand
	notifier Notifier
}

// NewChecker creates a checker over the configured brands. notifier may
// be nil, in which case warnings are dropped.
func NewChecker(brands map[string]types.ConfigBrand, notifier Notifier) *Checker {
	return &Checker{brands: brands, notifier: notifier}
}

var brandRe = regexp.MustCompile(`\b([A-Z][A-Za-z0-9]*)\b`)

// DetectBrand extracts the brand name tied to an obligation: a
// capitalized identifier appearing in a fact's predicate, or a
// capitalized prefix of a fact's variable name.
func DetectBrand(facts []types.Fact) string {
	for _, f := range facts {
		if m := brandRe.FindStringSubmatch(f.Predicate); m != nil {
			return m[1]
		}
		if f.Variable != "" && f.Variable[0] >= 'A' && f.Variable[0] <= 'Z' {
			if m := brandRe.FindStringSubmatch(f.Variable); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// Observe inspects one proof outcome. When the brand was declared
// decidable but the proof needed a plugin or found no proof at all, a
// warning is emitted through the notifier.
func (c *Checker) Observe(brand string, result types.ProofResult, externalSolver bool) {
	if c == nil || brand == "" {
		return
	}
	cfg, declared := c.brands[brand]
	if !declared || !cfg.Decidable {
		return
	}

	actual := StrategyStatic
	reason := ""
	switch {
	case result.Proven && result.Method == types.MethodPlugin:
		// Any plugin proof means the static layers fell short; the
		// solver flag only changes how the warning reads.
		actual = StrategyExternalSolver
		if externalSolver {
			reason = "an external SMT solver was needed; the predicate is not decidable in-process"
		} else {
			reason = "an external prover plugin was needed; the predicate is not decidable in-process"
		}
	case result.Proven:
		return // proven by an in-process layer, as declared
	default:
		actual = StrategyRuntimeCheck
		reason = "no proof was found; a runtime check will be inserted"
	}

	if c.notifier != nil {
		c.notifier.Notify(Warning{
			Brand:    brand,
			Expected: StrategyStatic,
			Actual:   actual,
			Reason:   reason,
		})
	}
}

// Brands returns the configured brand names, for diagnostics.
func (c *Checker) Brands() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.brands))
	for name := range c.brands {
		out = append(out, name)
	}
	return out
}
