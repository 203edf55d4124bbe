package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/corefsieve/internal/pipeline"
	"github.com/ppiankov/corefsieve/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	listFile     string
	rateLimit    float64
	// noFooter and showSingletons are shared with resolve.go
)

var batchCmd = &cobra.Command{
	Use:   "batch [<file|dir>...]",
	Short: "Resolve many documents in parallel",
	Long: `Batch resolves documents concurrently:
- Inputs are document files, directories (all *.json inside) or a list file
- Documents are processed by a bounded worker pool
- Throughput can be limited per input directory
- One JSON and one Markdown report is written per document

Example:
  corefsieve batch corpus/
  corefsieve batch --list docs.txt --concurrency 8 --output-dir ./chains
  corefsieve batch corpus/ --rate 20`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./corefsieve-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&listFile, "list", "", "file listing document paths, one per line")
	batchCmd.Flags().Float64Var(&rateLimit, "rate", 0, "documents per second per input directory (default: rate_limiting.documents_per_second)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&showSingletons, "singletons", false, "list single-mention chains in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && listFile == "" {
		return fmt.Errorf("no input: pass document files, directories or --list")
	}
	if len(args) > 0 && listFile != "" {
		return fmt.Errorf("pass either document files and directories or --list, not both")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if rateLimit > 0 {
		cfg.RateLimiting.DocumentsPerSecond = rateLimit
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if showSingletons {
		cfg.Output.ShowSingletons = true
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	paths, err := worker.ExpandInputs(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  corefsieve batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	if listFile != "" {
		fmt.Fprintf(os.Stderr, "  List:         %s\n", listFile)
	} else {
		fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(paths))
	}
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.RateLimiting.DocumentsPerSecond > 0 {
		fmt.Fprintf(os.Stderr, "  Rate limit:   %.1f docs/s per directory\n", cfg.RateLimiting.DocumentsPerSecond)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
		cfg.RateLimiting.DocumentsPerSecond, cfg.RateLimiting.BurstSize)

	fmt.Fprintf(os.Stderr, "⚙️  Resolving with %d workers...\n\n", cfg.Concurrency.Workers)
	var results []*worker.DocumentResult
	if listFile != "" {
		results, err = processor.ProcessList(ctx, listFile)
		if err != nil {
			return fmt.Errorf("read list: %w", err)
		}
	} else {
		results = processor.ProcessFiles(ctx, paths)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter, cfg.Output.ShowSingletons)
	successCount, failureCount, cachedCount := 0, 0, 0
	used := make(map[string]int)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := uniqueName(used, sanitizeFilename(result.Report.DocumentID, result.Path))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		suffix := ""
		if result.Cached {
			cachedCount++
			suffix = ", cached"
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d chains, %d merges%s)\n",
			result.Report.DocumentID, len(result.Report.NonSingletons()), len(result.Report.Merges), suffix)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d (%d from cache)\n", successCount, cachedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename turns a document id into a file name, falling back to
// the input file's base name when the id is empty
func sanitizeFilename(id, path string) string {
	s := strings.TrimSpace(id)
	if s == "" {
		s = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s = filenameReplacer.Replace(s)
	if s == "" || s == "." || s == ".." {
		s = "document"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// uniqueName appends a counter when two documents share an id
func uniqueName(used map[string]int, name string) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s-%d", name, n+1)
}
