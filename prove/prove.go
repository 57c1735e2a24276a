// Package prove is the pipeline layer over the proof engine: it loads
// configuration and obligation documents, runs the prover over files
// and directories, and hands certificates to the caller.
package prove

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoverse/tprove/internal/certificate"
	"github.com/gnoverse/tprove/internal/decidability"
	"github.com/gnoverse/tprove/internal/plugin"
	"github.com/gnoverse/tprove/internal/prover"
	"github.com/gnoverse/tprove/internal/rules"
	"github.com/gnoverse/tprove/internal/types"
)

// ProofEngine is the part of the prover the pipeline needs.
type ProofEngine interface {
	ProveObligation(ctx context.Context, ob types.Obligation) certificate.Certificate
}

// Config represents the overall configuration: declared brands and
// per-rule toggles.
type Config struct {
	Name   string                       `yaml:"name"`
	Brands map[string]types.ConfigBrand `yaml:"brands"`
	Rules  map[string]ConfigRule        `yaml:"rules"`
}

// ConfigRule toggles one algebraic rule.
type ConfigRule struct {
	Disabled bool `yaml:"disabled"`
}

// New builds a prover from the configuration file at configurationPath.
// An empty path means defaults: the full built-in catalog and no brand
// expectations. Decidability warnings go to the logger; plugins are
// tried after every in-process layer.
func New(configurationPath string, logger *zap.Logger, plugins ...plugin.Plugin) (*prover.Prover, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	engine := rules.NewEngine()
	for name, rule := range config.Rules {
		if rule.Disabled {
			engine.Disable(name)
		}
	}

	opts := []prover.Option{
		prover.WithRules(engine),
		prover.WithPlugins(plugins...),
	}
	if len(config.Brands) > 0 {
		checker := decidability.NewChecker(config.Brands, zapNotifier(logger))
		opts = append(opts, prover.WithDecidability(checker))
	}
	return prover.New(opts...), nil
}

// zapNotifier adapts decidability warnings to structured log lines.
// A nil logger drops them.
func zapNotifier(logger *zap.Logger) decidability.Notifier {
	return decidability.NotifierFunc(func(w decidability.Warning) {
		if logger == nil {
			return
		}
		logger.Warn("decidability fallback",
			zap.String("brand", w.Brand),
			zap.String("expected", string(w.Expected)),
			zap.String("actual", string(w.Actual)),
			zap.String("reason", w.Reason),
		)
	})
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, fmt.Errorf("error opening configuration %s: %w", configurationPath, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing configuration %s: %w", configurationPath, err)
	}
	return config, nil
}

// LoadObligations reads every obligation document from a YAML file.
// Files may hold a single document or a multi-document stream.
func LoadObligations(path string) ([]types.Obligation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	var obligations []types.Obligation
	decoder := yaml.NewDecoder(f)
	for {
		var ob types.Obligation
		if err := decoder.Decode(&ob); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		if ob.Goal == "" {
			return nil, fmt.Errorf("error parsing %s: obligation without a goal", path)
		}
		obligations = append(obligations, ob)
	}
	return obligations, nil
}
