// Package pipeline wires dictionary lookup, attribute resolution and the
// sieve passes into a single resolver.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/corefsieve/internal/attr"
	"github.com/ppiankov/corefsieve/internal/cache"
	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/logging"
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
	"github.com/ppiankov/corefsieve/internal/score"
	"github.com/ppiankov/corefsieve/internal/sieve"
)

// Pipeline resolves coreference in documents. It only holds immutable
// state, so one Pipeline may serve many documents concurrently.
type Pipeline struct {
	dict        *dict.Dictionaries
	attrs       *attr.Resolver
	sieves      []sieve.Sieve
	driver      *sieve.Driver
	scorer      *score.Scorer
	cache       *cache.ReportCache // nil if disabled
	renderer    *Renderer
	config      *model.Config
	fingerprint string
	logger      *slog.Logger
}

// NewPipeline loads the configured dictionary and cache and builds the
// enabled sieves. A nil logger discards output.
func NewPipeline(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	d, err := dict.Load(cfg.Dictionary.Path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	var rc *cache.ReportCache
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		rc = cache.NewReportCache(layered, cfg.Cache.DiskTTL)
	}

	return New(cfg, d, rc, logger)
}

// New builds a pipeline from an already loaded dictionary. rc may be nil.
func New(cfg *model.Config, d *dict.Dictionaries, rc *cache.ReportCache, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	sieves, err := sieve.Build(cfg.Sieves.Enabled, sieve.ParseRule(cfg.Sieves.Concordance))
	if err != nil {
		return nil, fmt.Errorf("build sieves: %w", err)
	}

	return &Pipeline{
		dict:        d,
		attrs:       attr.NewResolver(d, logging.Component(logger, "attr")),
		sieves:      sieves,
		driver:      sieve.NewDriver(logging.Component(logger, "sieve")),
		scorer:      score.NewScorer(),
		cache:       rc,
		renderer:    NewRenderer(cfg.Output.IncludeFooter, cfg.Output.ShowSingletons),
		config:      cfg,
		fingerprint: cfg.Fingerprint(d.Digest()),
		logger:      logging.Component(logger, "pipeline"),
	}, nil
}

// Resolve partitions the mentions of doc into coreference chains. The
// resolved attributes are written back into doc's mentions.
func (p *Pipeline) Resolve(doc *model.Document) (*model.Report, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	p.attrs.ResolveDocument(doc)

	mgr, err := partition.NewManager(doc, p.dict)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		DocumentID: doc.ID,
		RunID:      uuid.NewString(),
		ResolvedAt: time.Now().UTC(),
		Mentions:   doc.MentionCount(),
	}

	for _, res := range p.driver.RunAll(mgr, p.sieves) {
		report.Sieves = append(report.Sieves, res.Stat)
		report.Failures = append(report.Failures, res.Failures...)
	}
	report.Chains = mgr.Chains()
	report.Merges = mgr.Merges()

	if len(doc.GoldChains) > 0 {
		s := p.scorer.Calculate(report.Chains, doc.GoldChains)
		report.Score = &s
		p.logger.Debug("scored against gold chains",
			"document", doc.ID,
			"muc_f1", s.MUC.F1,
			"bcubed_f1", s.BCubed.F1,
			"signals", len(s.Signals))
	}

	p.logger.Info("document resolved",
		"document", doc.ID,
		"run_id", report.RunID,
		"mentions", report.Mentions,
		"chains", len(report.Chains),
		"merges", len(report.Merges),
		"failures", len(report.Failures))

	return report, nil
}

// ResolveResult is the outcome of resolving a document file
type ResolveResult struct {
	Report *model.Report
	Cached bool
}

// ResolveFile reads a JSON document from path and resolves it, reusing a
// cached report when the document and the resolution options are unchanged
func (p *Pipeline) ResolveFile(ctx context.Context, path string) (*ResolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	key := cache.CacheKey(data, p.fingerprint)
	if p.cache != nil {
		if report, ok := p.cache.Load(key); ok {
			p.logger.Debug("cache hit", "path", path, "document", report.DocumentID)
			return &ResolveResult{Report: report, Cached: true}, nil
		}
	}

	doc, err := model.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	report, err := p.Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if p.cache != nil {
		if err := p.cache.Store(key, report); err != nil {
			p.logger.Warn("cache store failed", "path", path, "error", err)
		}
	}

	return &ResolveResult{Report: report}, nil
}

// ClearCache drops every cached report
func (p *Pipeline) ClearCache() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Clear()
}

// RenderReport writes the report to the requested outputs and prints a
// summary to stdout
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, report)
	return nil
}
