package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/tprove/formatter"
	"github.com/gnoverse/tprove/internal/certificate"
	"github.com/gnoverse/tprove/prove"
)

// variables for flags
var (
	proveJsonOutput bool
	outPath         string
	strict          bool
)

var proveCmd = &cobra.Command{
	Use:   "prove [paths...]",
	Short: "Prove the obligations in the given files or directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := prove.New(configurationPath(), logger)
		if err != nil {
			logger.Fatal("Failed to initialize proof engine", zap.Error(err))
		}

		runProveProcess(ctx, logger, engine, args, proveJsonOutput, outPath)
	},
}

func init() {
	proveCmd.Flags().BoolVar(&proveJsonOutput, "json", false, "Output certificates in JSON format")
	proveCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	proveCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any obligation stays unproven")
}

// configurationPath resolves the effective configuration file: the
// --config flag, or the well-known name when it exists.
func configurationPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

func runProveProcess(ctx context.Context, logger *zap.Logger, engine prove.ProofEngine, paths []string, isJson bool, jsonOutput string) {
	results, err := prove.ProcessFiles(ctx, logger, engine, paths, prove.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printResults(logger, results, isJson, jsonOutput)

	if unproven := prove.Unproven(results); unproven > 0 {
		fmt.Printf("%d of %d obligations need a runtime check\n", unproven, len(results))
		if strict {
			os.Exit(1)
		}
	}
}

func printResults(logger *zap.Logger, results []prove.Result, isJson bool, jsonOutput string) {
	certsByFile := make(map[string][]certificate.Certificate)
	for _, result := range results {
		certsByFile[result.Path] = append(certsByFile[result.Path], result.Certificate)
	}

	sortedFiles := make([]string, 0, len(certsByFile))
	for filename := range certsByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fmt.Println(filename)
			fmt.Println(formatter.FormatAll(certsByFile[filename]))
		}
		return
	}

	// JSON output
	d, err := json.Marshal(certsByFile)
	if err != nil {
		logger.Error("Error marshalling certificates to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
