package prove

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnoverse/tprove/internal/certificate"
	"github.com/gnoverse/tprove/internal/types"
)

// Result ties one proved (or unproven) obligation back to the file it
// came from.
type Result struct {
	Path        string
	Obligation  types.Obligation
	Certificate certificate.Certificate
}

// ProcessFiles proves every obligation found under the given paths.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine ProofEngine,
	paths []string,
	processor func(context.Context, ProofEngine, string) ([]Result, error),
) ([]Result, error) {
	var allResults []Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allResults = append(allResults, results...)
	}
	return allResults, nil
}

// ProcessPath proves the obligations in one file, or in every
// obligation file under one directory. Directories get a progress bar
// and a bounded worker pool; obligation proving is CPU work, so the
// pool is sized to the machine.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine ProofEngine,
	path string,
	processor func(context.Context, ProofEngine, string) ([]Result, error),
) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	var results []Result
	if info.IsDir() {
		var files []string
		filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
				files = append(files, filePath)
			}
			return nil
		})

		// One entry per file keeps a failing file from eating another
		// file's results during collection.
		type fileOutcome struct {
			results []Result
			err     error
		}
		outcomeChan := make(chan fileOutcome, len(files))

		maxWorkers := runtime.NumCPU()
		sem := make(chan struct{}, maxWorkers)

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			default:
				sem <- struct{}{}
				go func(fp string) {
					defer func() { <-sem }()

					fileResults, err := processor(ctx, engine, fp)
					if err != nil && logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					outcomeChan <- fileOutcome{results: fileResults, err: err}
					bar.Add(1)
				}(filePath)
			}
		}

		for range files {
			outcome := <-outcomeChan
			if outcome.err != nil {
				continue
			}
			results = append(results, outcome.results...)
		}

		fmt.Println()
		return results, nil
	} else if hasDesiredExtension(path) {
		fileResults, err := processor(ctx, engine, path)
		if err != nil {
			return nil, err
		}
		results = append(results, fileResults...)
	}

	return results, nil
}

// ProcessFile proves every obligation document in one file.
func ProcessFile(ctx context.Context, engine ProofEngine, filePath string) ([]Result, error) {
	obligations, err := LoadObligations(filePath)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(obligations))
	for _, ob := range obligations {
		results = append(results, Result{
			Path:        filePath,
			Obligation:  ob,
			Certificate: engine.ProveObligation(ctx, ob),
		})
	}
	return results, nil
}

// Unproven counts the results that still need a runtime check.
func Unproven(results []Result) int {
	count := 0
	for _, r := range results {
		if !r.Certificate.Succeeded {
			count++
		}
	}
	return count
}

var desiredExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
