package types

import "strings"

// Fact is a known predicate about a named value, usually derived from
// refined or branded type information. Facts are supplied per proof
// attempt and are never mutated by the engine.
type Fact struct {
	Variable  string `yaml:"variable" json:"variable"`
	Predicate string `yaml:"predicate" json:"predicate"`
}

// Method identifies which proof layer discharged an obligation.
type Method string

const (
	MethodConstant Method = "constant"
	MethodType     Method = "type"
	MethodAlgebra  Method = "algebra"
	MethodLinear   Method = "linear"
	MethodPlugin   Method = "plugin"
)

// ProofResult is returned by every proof layer and by the orchestrator.
// Proven == false never asserts that the goal is false; it only means no
// proof was found and the caller should insert a runtime check.
type ProofResult struct {
	Proven bool   `json:"proven"`
	Method Method `json:"method,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ProofStep is one node in a certificate's reasoning chain.
type ProofStep struct {
	Rule          string   `json:"rule"`
	Description   string   `json:"description"`
	Justification string   `json:"justification"`
	UsedFacts     []Fact   `json:"used_facts,omitempty"`
	Subgoals      []string `json:"subgoals,omitempty"`
}

// Obligation is one contract obligation to prove: a goal plus the facts
// known about the values it mentions. Brand ties the obligation back to a
// declared refined type, for decidability diagnostics.
type Obligation struct {
	Goal  string `yaml:"goal" json:"goal"`
	Facts []Fact `yaml:"facts,omitempty" json:"facts,omitempty"`
	Brand string `yaml:"brand,omitempty" json:"brand,omitempty"`
}

// ConfigBrand describes the declared decidability expectation for one brand.
type ConfigBrand struct {
	// Decidable means proofs for this brand are expected to succeed at
	// compile time without external solvers.
	Decidable bool `yaml:"decidable"`
}

// Conjuncts splits a predicate on && and trims each part.
func Conjuncts(predicate string) []string {
	parts := strings.Split(predicate, "&&")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
