package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/tprove/internal/certificate"
	"github.com/gnoverse/tprove/internal/types"
)

func successCert(method types.Method, step types.ProofStep) certificate.Certificate {
	cert := certificate.New("x >= 0", []types.Fact{
		{Variable: "x", Predicate: "x >= 1"},
		{Variable: "x", Predicate: "x <= 10"},
	})
	return cert.Succeed(method, step).WithElapsed(42 * time.Microsecond)
}

func TestPlainSuccessTrace(t *testing.T) {
	t.Parallel()
	cert := successCert(types.MethodLinear, types.ProofStep{
		Rule:          "fourier_motzkin",
		Description:   "linear arithmetic entailment",
		Justification: `negation of "x >= 0" is unsatisfiable under the known bounds`,
		UsedFacts:     []types.Fact{{Variable: "x", Predicate: "x >= 1"}},
	})

	out := Plain(cert)

	assert.Contains(t, out, "proof: x >= 0")
	assert.Contains(t, out, "x: x >= 1")
	assert.Contains(t, out, "x: x <= 10")
	assert.Contains(t, out, "proven via linear")
	assert.Contains(t, out, "fourier_motzkin: linear arithmetic entailment")
	assert.Contains(t, out, "uses x: x >= 1")
	assert.Contains(t, out, "exact over the rationals")
	assert.Contains(t, out, "took 42µs")
}

func TestPlainContainsEveryStep(t *testing.T) {
	t.Parallel()
	cert := certificate.New("a === a", nil).
		AddStep(types.ProofStep{Rule: "normalize", Description: "strip whitespace"}).
		Succeed(types.MethodAlgebra, types.ProofStep{Rule: "reflexivity", Description: "both sides identical"})

	out := Plain(cert)

	for _, rule := range []string{"normalize", "reflexivity"} {
		assert.Contains(t, out, rule)
	}
	assert.Contains(t, out, "proven via algebra")
}

func TestPlainFailureTrace(t *testing.T) {
	t.Parallel()
	cert := certificate.New("x > 0", nil).
		Fail("no facts available and the goal is not a constant").
		WithElapsed(time.Microsecond)

	out := Plain(cert)

	assert.Contains(t, out, "unproven: no facts available")
	assert.Contains(t, out, "runtime check is required")
	assert.NotContains(t, out, "proven via")
}

func TestPluginTraceFlagsExternalProver(t *testing.T) {
	t.Parallel()
	cert := successCert(types.MethodPlugin, types.ProofStep{
		Rule:          "plugin",
		Description:   "external prover z3-bridge",
		Justification: "z3-bridge: sat",
	})

	out := Plain(cert)

	assert.Contains(t, out, "proven via plugin")
	assert.Contains(t, out, "external prover, not in-process")
}

func TestFormatAllSeparatesCertificates(t *testing.T) {
	t.Parallel()
	certs := []certificate.Certificate{
		certificate.New("a === a", nil).Succeed(types.MethodAlgebra, types.ProofStep{Rule: "reflexivity"}),
		certificate.New("x > 0", nil).Fail("no proof layer succeeded"),
	}

	out := FormatAll(certs)

	require.Equal(t, 2, strings.Count(out, "proof: "))
	assert.Contains(t, out, "a === a")
	assert.Contains(t, out, "x > 0")
}

func TestFormatterFactory(t *testing.T) {
	t.Parallel()
	linear := certificate.New("g", nil).Succeed(types.MethodLinear, types.ProofStep{})
	plugin := certificate.New("g", nil).Succeed(types.MethodPlugin, types.ProofStep{})
	algebra := certificate.New("g", nil).Succeed(types.MethodAlgebra, types.ProofStep{})
	failed := certificate.New("g", nil).Fail("nope")

	assert.IsType(t, &LinearProofFormatter{}, getCertificateFormatter(linear))
	assert.IsType(t, &PluginProofFormatter{}, getCertificateFormatter(plugin))
	assert.IsType(t, &GeneralProofFormatter{}, getCertificateFormatter(algebra))
	assert.IsType(t, &FailureFormatter{}, getCertificateFormatter(failed))
}
