// Package plugin dispatches proof attempts to externally registered
// provers. Plugins are invoked strictly in registration order; the first
// one that proves the goal wins. The dispatcher never constructs
// plugins, it only holds the list it is handed.
package plugin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gnoverse/tprove/internal/types"
)

// Plugin is an externally supplied prover. Prove receives the goal, the
// facts, and an advisory timeout; the dispatcher forwards the timeout
// but does not enforce it, so honoring it is the plugin's own
// responsibility. Returning an error means "did not prove", never a
// fatal condition.
type Plugin interface {
	Name() string
	Prove(goal string, facts []types.Fact, timeout time.Duration) (types.ProofResult, error)
}

// DeferredPlugin is a plugin whose proof work is asynchronous. The
// synchronous dispatch mode skips these entirely rather than blocking on
// them; the awaited mode runs them to completion one at a time.
type DeferredPlugin interface {
	Plugin
	ProveDeferred(ctx context.Context, goal string, facts []types.Fact, timeout time.Duration) (types.ProofResult, error)
}

// Outcome is the dispatcher's result. ExternalSolver is set when the
// winning plugin looks like an SMT-style external decision procedure, so
// downstream decidability warnings can distinguish "solved externally"
// from "fell back to a runtime check".
type Outcome struct {
	Result         types.ProofResult
	PluginName     string
	ExternalSolver bool
}

// Dispatcher holds the ordered plugin list for one prover instance.
type Dispatcher struct {
	plugins []Plugin
	timeout time.Duration
}

// NewDispatcher creates a dispatcher over the given plugins, preserving
// their order. The timeout is forwarded to every invocation.
func NewDispatcher(plugins []Plugin, timeout time.Duration) *Dispatcher {
	return &Dispatcher{plugins: append([]Plugin(nil), plugins...), timeout: timeout}
}

// Empty reports whether any plugins are registered.
func (d *Dispatcher) Empty() bool { return len(d.plugins) == 0 }

// TrySync invokes each plugin's synchronous Prove in order. Plugins that
// only produce deferred results are skipped, not awaited. Errors are
// swallowed and treated as "did not prove".
func (d *Dispatcher) TrySync(goal string, facts []types.Fact) Outcome {
	for _, p := range d.plugins {
		if _, deferred := p.(DeferredPlugin); deferred {
			continue
		}
		result, err := safeProve(p, goal, facts, d.timeout)
		if err != nil || !result.Proven {
			continue
		}
		return success(p, result)
	}
	return Outcome{Result: types.ProofResult{Proven: false, Reason: "no plugin proved the goal"}}
}

// TryAwait invokes each plugin in order, running deferred plugins to
// completion before moving on. A panic or error from one plugin is
// treated as "did not prove" and the next plugin is tried.
func (d *Dispatcher) TryAwait(ctx context.Context, goal string, facts []types.Fact) Outcome {
	for _, p := range d.plugins {
		var result types.ProofResult
		var err error
		if dp, ok := p.(DeferredPlugin); ok {
			result, err = safeProveDeferred(ctx, dp, goal, facts, d.timeout)
		} else {
			result, err = safeProve(p, goal, facts, d.timeout)
		}
		if err != nil || !result.Proven {
			continue
		}
		return success(p, result)
	}
	return Outcome{Result: types.ProofResult{Proven: false, Reason: "no plugin proved the goal"}}
}

func success(p Plugin, result types.ProofResult) Outcome {
	reason := result.Reason
	if reason == "" {
		reason = "proved"
	}
	return Outcome{
		Result: types.ProofResult{
			Proven: true,
			Method: types.MethodPlugin,
			Reason: fmt.Sprintf("%s: %s", p.Name(), reason),
		},
		PluginName:     p.Name(),
		ExternalSolver: isExternalSolver(p.Name()),
	}
}

// isExternalSolver recognizes SMT-style provers by name.
func isExternalSolver(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "z3") || strings.Contains(lower, "smt")
}

func safeProve(p Plugin, goal string, facts []types.Fact, timeout time.Duration) (result types.ProofResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %s panicked: %v", p.Name(), r)
		}
	}()
	return p.Prove(goal, facts, timeout)
}

func safeProveDeferred(ctx context.Context, p DeferredPlugin, goal string, facts []types.Fact, timeout time.Duration) (result types.ProofResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %s panicked: %v", p.Name(), r)
		}
	}()
	return p.ProveDeferred(ctx, goal, facts, timeout)
}
