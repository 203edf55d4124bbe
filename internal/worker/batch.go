package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/pipeline"
)

// Resolver resolves one document file
type Resolver interface {
	ResolveFile(ctx context.Context, path string) (*pipeline.ResolveResult, error)
}

// ResolveJob resolves a single document file
type ResolveJob struct {
	Index    int // Position in the batch input
	Path     string
	Resolver Resolver
	Limiter  *Limiter // Optional
}

// Execute waits for the limiter, then resolves the document
func (j *ResolveJob) Execute(ctx context.Context) Result {
	res := &DocumentResult{Index: j.Index, Path: j.Path}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Path); err != nil {
			res.Error = fmt.Errorf("rate limit: %w", err)
			return res
		}
	}

	out, err := j.Resolver.ResolveFile(ctx, j.Path)
	if err != nil {
		res.Error = err
		return res
	}
	res.Report = out.Report
	res.Cached = out.Cached
	return res
}

// DocumentResult is the outcome of one ResolveJob
type DocumentResult struct {
	Index  int
	Path   string
	Report *model.Report
	Cached bool
	Error  error
}

// GetError returns the resolution error, if any
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor resolves many document files concurrently
type BatchProcessor struct {
	resolver    Resolver
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A documentsPerSecond of 0
// disables rate limiting.
func NewBatchProcessor(resolver Resolver, concurrency int, documentsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if documentsPerSecond > 0 {
		limiter = NewLimiter(documentsPerSecond, burst)
	}

	return &BatchProcessor{
		resolver:    resolver,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessFiles resolves every path and returns one result per path, in
// input order. Documents the pool never finished because ctx ended are
// reported with the context error.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	// Submit blocks once the queue is full, so feed it while results drain
	go func() {
		for i, path := range paths {
			pool.Submit(&ResolveJob{
				Index:    i,
				Path:     path,
				Resolver: b.resolver,
				Limiter:  b.limiter,
			})
		}
		pool.Close()
	}()

	out := make([]*DocumentResult, len(paths))
	for _, result := range pool.Collect() {
		res := result.(*DocumentResult)
		out[res.Index] = res
	}

	for i, res := range out {
		if res != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = errors.New("worker stopped")
		}
		out[i] = &DocumentResult{
			Index: i,
			Path:  paths[i],
			Error: fmt.Errorf("not processed: %w", err),
		}
	}

	return out
}

// ProcessList reads document paths from a list file and resolves them
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file, one per line.
// Blank lines and # comments are skipped, duplicates dropped, and
// relative paths resolved against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// ExpandInputs turns command line arguments into document paths.
// Directories contribute their *.json files, sorted by name.
func ExpandInputs(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}
