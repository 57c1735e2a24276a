package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/fatih/color"

	"github.com/gnoverse/tprove/internal/certificate"
	"github.com/gnoverse/tprove/internal/types"
)

var (
	provenStyle = color.New(color.FgGreen, color.Bold)
	failedStyle = color.New(color.FgRed, color.Bold)
	goalStyle   = color.New(color.FgCyan, color.Bold)
	methodStyle = color.New(color.FgYellow, color.Bold)
	ruleStyle   = color.New(color.FgHiBlue, color.Bold)
	lineStyle   = color.New(color.FgHiBlue)
	reasonStyle = color.New(color.FgHiYellow)
	noStyle     = color.New(color.FgWhite)
)

// certificateFormatter is the interface that wraps the CertificateTemplate
// method. Implementations format one category of certificate.
type certificateFormatter interface {
	CertificateTemplate() string
}

// getCertificateFormatter is a factory function that returns the
// appropriate formatter for the certificate's resolution. Failed
// certificates always use the failure formatter; successes pick by the
// winning method.
func getCertificateFormatter(cert certificate.Certificate) certificateFormatter {
	if !cert.Succeeded {
		return &FailureFormatter{}
	}
	switch cert.Method {
	case types.MethodLinear:
		return &LinearProofFormatter{}
	case types.MethodPlugin:
		return &PluginProofFormatter{}
	default:
		return &GeneralProofFormatter{}
	}
}

// Format renders a certificate as a colorized, indented proof trace.
func Format(cert certificate.Certificate) string {
	return buildCertificate(cert, coloredPalette())
}

// Plain renders the same trace without color, for pipes and tests.
func Plain(cert certificate.Certificate) string {
	return buildCertificate(cert, plainPalette())
}

// FormatAll renders a batch of certificates separated by blank lines.
func FormatAll(certs []certificate.Certificate) string {
	var builder strings.Builder
	for i, cert := range certs {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(Format(cert))
	}
	return builder.String()
}

/***** Certificate Formatter Builder *****/

type certData struct {
	Goal          string
	Facts         []types.Fact
	Steps         []types.ProofStep
	Method        string
	FailureReason string
	Elapsed       string
}

func buildCertificate(cert certificate.Certificate, pal palette) string {
	data := certData{
		Goal:          cert.Goal,
		Facts:         cert.Facts,
		Steps:         cert.Steps,
		Method:        string(cert.Method),
		FailureReason: cert.FailureReason,
		Elapsed:       formatElapsed(cert.Elapsed),
	}

	funcMap := template.FuncMap{
		"header":    pal.header,
		"factList":  pal.factList,
		"outcome":   pal.outcome,
		"failure":   pal.failure,
		"stepTrace": pal.stepTrace,
		"elapsed":   pal.elapsedLine,
		"linearNote": func() string {
			return pal.plain("      entailment is exact over the rationals\n")
		},
		"pluginNote": func() string {
			return pal.reason("      proven by an external prover, not in-process\n")
		},
	}

	formatter := getCertificateFormatter(cert)
	tmpl := template.Must(template.New("certificate").Funcs(funcMap).Parse(formatter.CertificateTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting certificate: %v", err)
	}
	return buf.String()
}

// palette maps trace elements to styling functions, so the same
// templates render both the colorized and the plain variant.
type style func(format string, a ...interface{}) string

type palette struct {
	proven style
	failed style
	goal   style
	method style
	rule   style
	line   style
	reason style
	plain  style
}

func coloredPalette() palette {
	return palette{
		proven: provenStyle.Sprintf,
		failed: failedStyle.Sprintf,
		goal:   goalStyle.Sprintf,
		method: methodStyle.Sprintf,
		rule:   ruleStyle.Sprintf,
		line:   lineStyle.Sprintf,
		reason: reasonStyle.Sprintf,
		plain:  noStyle.Sprintf,
	}
}

func plainPalette() palette {
	return palette{
		proven: fmt.Sprintf,
		failed: fmt.Sprintf,
		goal:   fmt.Sprintf,
		method: fmt.Sprintf,
		rule:   fmt.Sprintf,
		line:   fmt.Sprintf,
		reason: fmt.Sprintf,
		plain:  fmt.Sprintf,
	}
}

// template functions, shared by every certificate template

func (p palette) header(goal string) string {
	return p.line("proof: ") + p.goal("%s\n", goal)
}

func (p palette) factList(facts []types.Fact) string {
	if len(facts) == 0 {
		return ""
	}
	endString := p.line("  --> facts\n")
	for _, f := range facts {
		endString += p.plain("      %s: %s\n", f.Variable, f.Predicate)
	}
	return endString
}

func (p palette) outcome(method string) string {
	return p.line("  = ") + p.proven("proven") + p.line(" via ") + p.method("%s\n", method)
}

func (p palette) failure(reason string) string {
	endString := p.line("  = ") + p.failed("unproven") + p.line(": ")
	endString += p.reason("%s\n", reason)
	endString += p.plain("      a runtime check is required\n")
	return endString
}

func (p palette) stepTrace(steps []types.ProofStep) string {
	var endString string
	for _, step := range steps {
		endString += p.line("    | ") + p.rule("%s", step.Rule)
		if step.Description != "" {
			endString += p.plain(": %s", step.Description)
		}
		endString += "\n"
		if step.Justification != "" {
			endString += p.line("    | ") + p.plain("  %s\n", step.Justification)
		}
		for _, f := range step.UsedFacts {
			endString += p.line("    | ") + p.plain("  uses %s: %s\n", f.Variable, f.Predicate)
		}
		for _, sub := range step.Subgoals {
			endString += p.line("    | ") + p.plain("  subgoal %s\n", sub)
		}
	}
	return endString
}

func (p palette) elapsedLine(elapsed string) string {
	return p.line("  took %s\n", elapsed)
}

func formatElapsed(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
