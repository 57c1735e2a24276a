package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/tprove/internal/types"
)

func TestSucceedAppendsStep(t *testing.T) {
	t.Parallel()
	cert := New("x > 0", []types.Fact{{Variable: "x", Predicate: "x > 0"}})

	done := cert.Succeed(types.MethodAlgebra, types.ProofStep{
		Rule:        "fact_lookup_positive",
		Description: "goal present as fact",
	})

	require.True(t, done.Succeeded)
	assert.Equal(t, types.MethodAlgebra, done.Method)
	require.GreaterOrEqual(t, len(done.Steps), 1)
	assert.Equal(t, "fact_lookup_positive", done.Steps[0].Rule)
}

func TestFailAlwaysHasReason(t *testing.T) {
	t.Parallel()
	cert := New("x > 0", nil)

	failed := cert.Fail("")
	assert.False(t, failed.Succeeded)
	assert.NotEmpty(t, failed.FailureReason)

	failed = cert.Fail("no facts available")
	assert.Equal(t, "no facts available", failed.FailureReason)
}

func TestBuilderDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	base := New("a === a", nil)

	withStep := base.AddStep(types.ProofStep{Rule: "partial"})
	done := withStep.Succeed(types.MethodAlgebra, types.ProofStep{Rule: "reflexivity"})
	failed := withStep.Fail("fell through")

	assert.Empty(t, base.Steps)
	assert.False(t, base.Succeeded)
	assert.Len(t, withStep.Steps, 1)
	assert.Len(t, done.Steps, 2)
	assert.False(t, failed.Succeeded)
	assert.True(t, done.Succeeded)
}

func TestWithElapsed(t *testing.T) {
	t.Parallel()
	cert := New("true", nil).WithElapsed(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, cert.Elapsed)
}
