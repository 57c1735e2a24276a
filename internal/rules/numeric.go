package rules

import (
	"regexp"
	"strings"

	"github.com/gnoverse/tprove/internal/types"
)

// Numeric rules are fact-driven: each one matches a goal shape on the
// whitespace-stripped goal string and then looks the required bounds up
// in the fact set. The facts a rule consumes are reported back for
// certificate construction.

var (
	sumPositivesRe  = regexp.MustCompile(`^(\w+)\+(\w+)>0$`)
	sumNonNegRe     = regexp.MustCompile(`^(\w+)\+(\w+)>=0$`)
	nonNegGoalRe    = regexp.MustCompile(`^(\w+)>=0$`)
	doublingRe      = regexp.MustCompile(`^2\*(\w+)>(\w+)$`)
	prodPositivesRe = regexp.MustCompile(`^(\w+)\*(\w+)>0$`)
	gtGoalRe        = regexp.MustCompile(`^([A-Za-z_]\w*)>([A-Za-z_]\w*)$`)
	byteRangeRe     = regexp.MustCompile(`^(\w+)>=0&&(\w+)<=255$`)
	portRangeRe     = regexp.MustCompile(`^(\w+)>=1&&(\w+)<=65535$`)
	positiveGoalRe  = regexp.MustCompile(`^([A-Za-z_]\w*)>0$`)
)

func normalize(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// lookupFact finds a fact one of whose && conjuncts equals the wanted
// predicate after whitespace stripping.
func lookupFact(facts []types.Fact, predicate string) (types.Fact, bool) {
	want := normalize(predicate)
	for _, f := range facts {
		for _, c := range types.Conjuncts(f.Predicate) {
			if normalize(c) == want {
				return f, true
			}
		}
	}
	return types.Fact{}, false
}

func lookupAll(facts []types.Fact, predicates ...string) ([]types.Fact, bool) {
	used := make([]types.Fact, 0, len(predicates))
	for _, p := range predicates {
		f, ok := lookupFact(facts, p)
		if !ok {
			return nil, false
		}
		used = append(used, f)
	}
	return used, true
}

// SumOfPositivesRule proves x + y > 0 from x > 0 and y > 0.
type SumOfPositivesRule struct{}

func (SumOfPositivesRule) Name() string        { return "sum_of_positives" }
func (SumOfPositivesRule) Description() string { return "the sum of two positives is positive" }

func (SumOfPositivesRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := sumPositivesRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" > 0", m[2]+" > 0")
	return ok, used
}

// SumOfNonNegativesRule proves x + y >= 0 from x >= 0 and y >= 0.
type SumOfNonNegativesRule struct{}

func (SumOfNonNegativesRule) Name() string { return "sum_of_non_negatives" }
func (SumOfNonNegativesRule) Description() string {
	return "the sum of two non-negatives is non-negative"
}

func (SumOfNonNegativesRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := sumNonNegRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" >= 0", m[2]+" >= 0")
	return ok, used
}

// PositiveImpliesNonNegativeRule proves x >= 0 from x > 0.
type PositiveImpliesNonNegativeRule struct{}

func (PositiveImpliesNonNegativeRule) Name() string { return "positive_implies_non_negative" }
func (PositiveImpliesNonNegativeRule) Description() string {
	return "a positive value is non-negative"
}

func (PositiveImpliesNonNegativeRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := nonNegGoalRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" > 0")
	return ok, used
}

// DoublingRule proves 2*x > x from x > 0.
type DoublingRule struct{}

func (DoublingRule) Name() string        { return "doubling" }
func (DoublingRule) Description() string { return "doubling a positive value exceeds it" }

func (DoublingRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := doublingRe.FindStringSubmatch(normalize(goal))
	if m == nil || m[1] != m[2] {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" > 0")
	return ok, used
}

// ProductOfPositivesRule proves x * y > 0 from x > 0 and y > 0.
type ProductOfPositivesRule struct{}

func (ProductOfPositivesRule) Name() string { return "product_of_positives" }
func (ProductOfPositivesRule) Description() string {
	return "the product of two positives is positive"
}

func (ProductOfPositivesRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := prodPositivesRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" > 0", m[2]+" > 0")
	return ok, used
}

// PositiveGreaterThanNegativeRule proves x > y from x > 0 and y < 0.
type PositiveGreaterThanNegativeRule struct{}

func (PositiveGreaterThanNegativeRule) Name() string { return "positive_greater_than_negative" }
func (PositiveGreaterThanNegativeRule) Description() string {
	return "a positive value exceeds a negative one"
}

func (PositiveGreaterThanNegativeRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := gtGoalRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" > 0", m[2]+" < 0")
	return ok, used
}

// ByteRangeRule proves x >= 0 && x <= 255 when both bounds are known.
type ByteRangeRule struct{}

func (ByteRangeRule) Name() string        { return "byte_range" }
func (ByteRangeRule) Description() string { return "both byte-range bounds are known facts" }

func (ByteRangeRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := byteRangeRe.FindStringSubmatch(normalize(goal))
	if m == nil || m[1] != m[2] {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" >= 0", m[1]+" <= 255")
	return ok, used
}

// PortRangeRule proves x >= 1 && x <= 65535 when both bounds are known.
type PortRangeRule struct{}

func (PortRangeRule) Name() string        { return "port_range" }
func (PortRangeRule) Description() string { return "both port-range bounds are known facts" }

func (PortRangeRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := portRangeRe.FindStringSubmatch(normalize(goal))
	if m == nil || m[1] != m[2] {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" >= 1", m[1]+" <= 65535")
	return ok, used
}

// TautologyRule proves the literal goal true.
type TautologyRule struct{}

func (TautologyRule) Name() string        { return "tautology" }
func (TautologyRule) Description() string { return "the goal is literally true" }

func (TautologyRule) Match(goal string, _ []types.Fact) (bool, []types.Fact) {
	return strings.TrimSpace(goal) == "true", nil
}

// FactLookupPositiveRule proves x > 0 when it is directly present as a fact.
type FactLookupPositiveRule struct{}

func (FactLookupPositiveRule) Name() string        { return "fact_lookup_positive" }
func (FactLookupPositiveRule) Description() string { return "the positivity goal is a known fact" }

func (FactLookupPositiveRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := positiveGoalRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" > 0")
	return ok, used
}

// FactLookupNonNegativeRule proves x >= 0 when it is directly present as
// a fact.
type FactLookupNonNegativeRule struct{}

func (FactLookupNonNegativeRule) Name() string { return "fact_lookup_non_negative" }
func (FactLookupNonNegativeRule) Description() string {
	return "the non-negativity goal is a known fact"
}

func (FactLookupNonNegativeRule) Match(goal string, facts []types.Fact) (bool, []types.Fact) {
	m := nonNegGoalRe.FindStringSubmatch(normalize(goal))
	if m == nil {
		return false, nil
	}
	used, ok := lookupAll(facts, m[1]+" >= 0")
	return ok, used
}
