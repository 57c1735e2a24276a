// Package prover orchestrates the proof layers. One internal pipeline
// runs the layers in fixed priority order and short-circuits on the
// first success; the three public entry points differ only in how
// plugin results are awaited and whether a certificate is produced.
package prover

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gnoverse/tprove/internal/certificate"
	"github.com/gnoverse/tprove/internal/decidability"
	"github.com/gnoverse/tprove/internal/linear"
	"github.com/gnoverse/tprove/internal/plugin"
	"github.com/gnoverse/tprove/internal/predicate"
	"github.com/gnoverse/tprove/internal/rules"
	"github.com/gnoverse/tprove/internal/types"
)

// DefaultPluginTimeout is forwarded to plugins when no timeout is
// configured. It is advisory; the dispatcher does not enforce it.
const DefaultPluginTimeout = 5 * time.Second

// Prover holds the configured proof layers. A Prover is safe for
// concurrent use once constructed; registering rules or plugins after
// proof attempts have started is not supported.
type Prover struct {
	rules      *rules.Engine
	dispatcher *plugin.Dispatcher
	consts     ConstEvaluator
	checker    *decidability.Checker
}

// Option configures a Prover at construction time.
type Option func(*options)

type options struct {
	rules   *rules.Engine
	plugins []plugin.Plugin
	timeout time.Duration
	consts  ConstEvaluator
	checker *decidability.Checker
}

// WithRules replaces the default rule engine.
func WithRules(e *rules.Engine) Option {
	return func(o *options) { o.rules = e }
}

// WithPlugins appends external prover plugins, tried in the given order
// after every in-process layer has failed.
func WithPlugins(ps ...plugin.Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, ps...) }
}

// WithPluginTimeout sets the advisory timeout forwarded to plugins.
func WithPluginTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithConstEvaluator replaces the literal-only constant evaluator with
// one backed by the caller's compile context.
func WithConstEvaluator(ev ConstEvaluator) Option {
	return func(o *options) { o.consts = ev }
}

// WithDecidability wires the checker that receives fallback warnings.
func WithDecidability(c *decidability.Checker) Option {
	return func(o *options) { o.checker = c }
}

// New constructs a Prover with the built-in rule catalog, the literal
// constant evaluator, and no plugins unless options say otherwise.
func New(opts ...Option) *Prover {
	o := options{timeout: DefaultPluginTimeout, consts: LiteralEvaluator{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rules == nil {
		o.rules = rules.NewEngine()
	}
	return &Prover{
		rules:      o.rules,
		dispatcher: plugin.NewDispatcher(o.plugins, o.timeout),
		consts:     o.consts,
		checker:    o.checker,
	}
}

// Prove attempts the goal synchronously. Plugins that only produce
// deferred results are skipped rather than awaited.
func (p *Prover) Prove(goal string, facts []types.Fact) types.ProofResult {
	out := p.run(context.Background(), goal, facts, false)
	p.observe(decidability.DetectBrand(facts), out)
	return out.result
}

// ProveAsync attempts the goal with every plugin run to completion,
// deferred ones included. The context is forwarded to deferred plugins.
func (p *Prover) ProveAsync(ctx context.Context, goal string, facts []types.Fact) types.ProofResult {
	out := p.run(ctx, goal, facts, true)
	p.observe(decidability.DetectBrand(facts), out)
	return out.result
}

// ProveWithCertificate runs the same pipeline as ProveAsync but always
// returns a certificate, timed from invocation to resolution.
func (p *Prover) ProveWithCertificate(ctx context.Context, goal string, facts []types.Fact) certificate.Certificate {
	return p.proveCertified(ctx, goal, facts, decidability.DetectBrand(facts))
}

// ProveObligation proves one obligation document, preferring its
// declared brand over brand detection for decidability diagnostics.
func (p *Prover) ProveObligation(ctx context.Context, ob types.Obligation) certificate.Certificate {
	brand := ob.Brand
	if brand == "" {
		brand = decidability.DetectBrand(ob.Facts)
	}
	return p.proveCertified(ctx, ob.Goal, ob.Facts, brand)
}

// TryAlgebraicProof exposes the algebraic layer alone, for testing and
// composition. It applies no fact gating.
func (p *Prover) TryAlgebraicProof(goal string, facts []types.Fact) types.ProofResult {
	result, _ := p.rules.TryProve(goal, facts)
	return result
}

// TryLinearArithmetic exposes the linear layer alone.
func (p *Prover) TryLinearArithmetic(goal string, facts []types.Fact) types.ProofResult {
	result, _ := linear.TryProve(goal, facts)
	return result
}

func (p *Prover) proveCertified(ctx context.Context, goal string, facts []types.Fact, brand string) certificate.Certificate {
	start := time.Now()
	out := p.run(ctx, goal, facts, true)
	p.observe(brand, out)

	cert := certificate.New(goal, facts)
	if out.result.Proven {
		cert = cert.Succeed(out.result.Method, *out.step)
	} else {
		cert = cert.Fail(out.result.Reason)
	}
	return cert.WithElapsed(time.Since(start))
}

// outcome carries one pipeline resolution, including whether an
// external SMT-style solver produced it.
type outcome struct {
	result   types.ProofResult
	step     *types.ProofStep
	external bool
}

// run is the single pipeline behind every entry point: constant
// evaluation, type-fact deduction, algebraic rules, linear arithmetic,
// then plugins. Every layer past the constant one needs facts.
func (p *Prover) run(ctx context.Context, goal string, facts []types.Fact, await bool) outcome {
	goal = strings.TrimSpace(goal)

	if value, ok := p.consts.Eval(goal); ok && value {
		return outcome{
			result: types.ProofResult{
				Proven: true,
				Method: types.MethodConstant,
				Reason: "constant expression evaluates to true",
			},
			step: &types.ProofStep{
				Rule:          "constant",
				Description:   "compile-time constant evaluation",
				Justification: fmt.Sprintf("%q evaluates to true without any facts", goal),
			},
		}
	}

	if len(facts) == 0 {
		return outcome{result: notProven("no facts available and the goal is not a constant")}
	}

	if result, step := tryTypeFact(goal, facts); result.Proven {
		return outcome{result: result, step: step}
	}
	if result, step := p.rules.TryProve(goal, facts); result.Proven {
		return outcome{result: result, step: step}
	}
	if result, step := linear.TryProve(goal, facts); result.Proven {
		return outcome{result: result, step: step}
	}
	if !p.dispatcher.Empty() {
		var res plugin.Outcome
		if await {
			res = p.dispatcher.TryAwait(ctx, goal, facts)
		} else {
			res = p.dispatcher.TrySync(goal, facts)
		}
		if res.Result.Proven {
			return outcome{
				result: res.Result,
				step: &types.ProofStep{
					Rule:          "plugin",
					Description:   fmt.Sprintf("external prover %s", res.PluginName),
					Justification: res.Result.Reason,
				},
				external: res.ExternalSolver,
			}
		}
	}
	return outcome{result: notProven("no proof layer succeeded")}
}

// tryTypeFact succeeds when the goal is a known fact verbatim, or one
// conjunct of a known fact. Comparison ignores whitespace only; this
// layer does no reasoning.
func tryTypeFact(goal string, facts []types.Fact) (types.ProofResult, *types.ProofStep) {
	for _, f := range facts {
		for _, conjunct := range types.Conjuncts(f.Predicate) {
			if !predicate.StructurallyEqual(goal, conjunct) {
				continue
			}
			step := &types.ProofStep{
				Rule:          "type_fact",
				Description:   "direct type-fact match",
				Justification: fmt.Sprintf("goal restates the known fact %q about %s", f.Predicate, f.Variable),
				UsedFacts:     []types.Fact{f},
			}
			return types.ProofResult{
				Proven: true,
				Method: types.MethodType,
				Reason: fmt.Sprintf("goal follows directly from a type fact about %s", f.Variable),
			}, step
		}
	}
	return types.ProofResult{Proven: false, Reason: "no type fact matches the goal"}, nil
}

func (p *Prover) observe(brand string, out outcome) {
	if p.checker == nil {
		return
	}
	p.checker.Observe(brand, out.result, out.external)
}

func notProven(reason string) types.ProofResult {
	return types.ProofResult{Proven: false, Reason: reason}
}
