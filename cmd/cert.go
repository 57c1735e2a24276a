package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/tprove/formatter"
	"github.com/gnoverse/tprove/internal/types"
	"github.com/gnoverse/tprove/prove"
)

// variables for flags
var (
	certFacts []string
	certBrand string
)

var certCmd = &cobra.Command{
	Use:   "cert <goal>",
	Short: "Prove a single goal and print its proof certificate",
	Long: `Proves one goal against facts given on the command line and prints the
full proof trace.
Example) tprove cert "x >= 0" --fact "x: x >= 1" --fact "x: x <= 10"`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one goal")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		facts, err := parseFactFlags(certFacts)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		engine, err := prove.New(configurationPath(), logger)
		if err != nil {
			logger.Fatal("Failed to initialize proof engine", zap.Error(err))
		}

		cert := engine.ProveObligation(ctx, types.Obligation{
			Goal:  args[0],
			Facts: facts,
			Brand: certBrand,
		})
		fmt.Print(formatter.Format(cert))

		if !cert.Succeeded {
			os.Exit(1)
		}
	},
}

func init() {
	certCmd.Flags().StringArrayVar(&certFacts, "fact", nil, `Known fact as "variable: predicate" (repeatable)`)
	certCmd.Flags().StringVar(&certBrand, "brand", "", "Brand the goal belongs to, for decidability diagnostics")
}

// parseFactFlags turns repeated --fact flags into facts. The variable
// name ends at the first colon.
func parseFactFlags(flags []string) ([]types.Fact, error) {
	facts := make([]types.Fact, 0, len(flags))
	for _, raw := range flags {
		variable, predicate, found := strings.Cut(raw, ":")
		if !found || strings.TrimSpace(variable) == "" || strings.TrimSpace(predicate) == "" {
			return nil, fmt.Errorf("malformed fact %q, want \"variable: predicate\"", raw)
		}
		facts = append(facts, types.Fact{
			Variable:  strings.TrimSpace(variable),
			Predicate: strings.TrimSpace(predicate),
		})
	}
	return facts, nil
}
