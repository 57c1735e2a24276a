// Package certificate builds inspectable proof traces. A certificate
// records why a goal was proven, or why it was not, as a chain of proof
// steps. Every builder function is pure: it returns a new certificate
// value and never mutates its input, so a finalized certificate can be
// handed to callers without defensive copying.
package certificate

import (
	"time"

	"github.com/gnoverse/tprove/internal/types"
)

// Certificate is the full trace of one proof attempt.
type Certificate struct {
	Goal          string            `json:"goal"`
	Facts         []types.Fact      `json:"facts,omitempty"`
	Steps         []types.ProofStep `json:"steps,omitempty"`
	Succeeded     bool              `json:"succeeded"`
	Method        types.Method      `json:"method,omitempty"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Elapsed       time.Duration     `json:"elapsed"`
}

// New initializes an empty, unresolved certificate for the given goal.
func New(goal string, facts []types.Fact) Certificate {
	return Certificate{
		Goal:  goal,
		Facts: append([]types.Fact(nil), facts...),
	}
}

// AddStep returns a copy of the certificate with an intermediate step
// appended, without resolving success or failure. Layers use this to
// record partial progress before falling through.
func (c Certificate) AddStep(step types.ProofStep) Certificate {
	out := c
	out.Steps = appendStep(c.Steps, step)
	return out
}

// Succeed returns a resolved copy of the certificate with the final step
// appended and the winning method recorded.
func (c Certificate) Succeed(method types.Method, step types.ProofStep) Certificate {
	out := c
	out.Succeeded = true
	out.Method = method
	out.Steps = appendStep(c.Steps, step)
	return out
}

// Fail returns a resolved copy of the certificate carrying the reason no
// proof was found. The reason is never empty.
func (c Certificate) Fail(reason string) Certificate {
	if reason == "" {
		reason = "no proof layer succeeded"
	}
	out := c
	out.Succeeded = false
	out.Method = ""
	out.FailureReason = reason
	return out
}

// WithElapsed returns a copy of the certificate stamped with the total
// proof attempt duration.
func (c Certificate) WithElapsed(d time.Duration) Certificate {
	out := c
	out.Elapsed = d
	return out
}

func appendStep(steps []types.ProofStep, step types.ProofStep) []types.ProofStep {
	out := make([]types.ProofStep, len(steps), len(steps)+1)
	copy(out, steps)
	return append(out, step)
}
