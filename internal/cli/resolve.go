package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/corefsieve/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	noFooter       bool
	showSingletons bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <document.json>",
	Short: "Resolve coreference chains in a single document",
	Long: `Resolve runs every enabled sieve over one document and writes the
resulting chains together with the merge log.

Example:
  corefsieve resolve doc.json
  corefsieve resolve doc.json --json chains.json --md chains.md
  corefsieve resolve doc.json --concordance lenient --sieves exact_match,pronoun_match`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&outJSON, "json", "chains.json", "output JSON path")
	resolveCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	resolveCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	resolveCmd.Flags().BoolVar(&showSingletons, "singletons", false, "list single-mention chains in Markdown reports")
}

func runResolve(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
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

	if verbose {
		fmt.Fprintf(os.Stderr, "Resolving: %s\n", path)
		fmt.Fprintf(os.Stderr, "Sieves: %v\n", cfg.Sieves.Enabled)
		fmt.Fprintf(os.Stderr, "Concordance: %s\n", cfg.Sieves.Concordance)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.ResolveFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if verbose {
		if result.Cached {
			fmt.Fprintf(os.Stderr, "✓ Loaded cached report\n")
		}
		fmt.Fprintf(os.Stderr, "✓ %d mentions in %d chains\n", result.Report.Mentions, len(result.Report.Chains))
		fmt.Fprintf(os.Stderr, "✓ %d merges\n", len(result.Report.Merges))
		if n := len(result.Report.Failures); n > 0 {
			fmt.Fprintf(os.Stderr, "✗ %d mentions failed\n", n)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(result.Report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
