package sieve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
)

// Person-based and "this" candidates are only tried this close
const nearDistance = 3

// Driver runs sieves over a document's partition
type Driver struct {
	logger *slog.Logger
}

// NewDriver creates a driver. A nil logger discards output.
func NewDriver(logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{logger: logger}
}

// PassResult is the outcome of one sieve pass
type PassResult struct {
	Stat     model.SieveStat
	Failures []model.Failure
}

// RunAll applies sieves in the given order, each over the whole document
func (d *Driver) RunAll(mgr *partition.Manager, sieves []Sieve) []PassResult {
	results := make([]PassResult, 0, len(sieves))
	for _, s := range sieves {
		results = append(results, d.Run(mgr, s))
	}
	return results
}

// Run applies one sieve to every mention of the document. Mentions are
// visited sentence by sentence in depth-first order; the first matching
// antecedent is merged and ends the search for that mention.
func (d *Driver) Run(mgr *partition.Manager, s Sieve) PassResult {
	desc := s.Descriptor()
	res := PassResult{Stat: model.SieveStat{Sieve: desc.Kind, Window: desc.MaxDistance}}

	for si := 0; si < mgr.SentenceCount(); si++ {
		for _, mention := range mgr.Sentence(si) {
			res.Stat.Visited++
			if mgr.Skip(mention, desc.Kind) {
				res.Stat.Skipped++
				continue
			}

			merged, err := d.resolve(mgr, s, mention, si)
			if err != nil {
				d.logger.Warn("sieve step failed",
					"document", mgr.DocumentID(),
					"sieve", desc.Kind,
					"mention", mention.ID,
					"text", mention.SurfaceText(),
					"error", err)
				res.Stat.Failures++
				res.Failures = append(res.Failures, model.Failure{
					Sieve:   desc.Kind,
					Mention: mention.ID,
					Error:   err.Error(),
				})
				continue
			}
			if merged {
				res.Stat.Merges++
			}
		}
	}

	d.logger.Debug("sieve pass complete",
		"document", mgr.DocumentID(),
		"sieve", desc.Kind,
		"visited", res.Stat.Visited,
		"merges", res.Stat.Merges)
	return res
}

// resolve searches antecedents of one mention, nearest sentence first
func (d *Driver) resolve(mgr *partition.Manager, s Sieve, mention *model.Mention, current int) (merged bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			merged = false
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	desc := s.Descriptor()
	for sentence := current; sentence >= 0; sentence-- {
		distance := current - sentence
		if !desc.Within(distance) {
			break
		}

		for _, candidate := range s.Candidates(mgr, mention, sentence) {
			skip, err := skipCandidate(mgr, desc.Kind, mention, candidate, distance)
			if err != nil {
				return false, err
			}
			if skip {
				continue
			}

			ok, err := s.Match(mgr, mention, candidate)
			if err != nil {
				return false, fmt.Errorf("match %d against %d: %w", mention.ID, candidate.ID, err)
			}
			if !ok {
				continue
			}

			if _, err := mgr.Merge(mention.ID, candidate.ID, desc.Kind, distance); err != nil {
				return false, fmt.Errorf("merge %d into %d: %w", mention.ID, candidate.ID, err)
			}
			d.logger.Debug("merged",
				"sieve", desc.Kind,
				"mention", mention.ID,
				"antecedent", candidate.ID,
				"distance", distance)
			return true, nil
		}
	}
	return false, nil
}

// skipCandidate applies the rules every sieve shares
func skipCandidate(mgr *partition.Manager, kind model.SieveKind, mention, candidate *model.Mention, distance int) (bool, error) {
	same, err := mgr.SameCluster(mention.ID, candidate.ID)
	if err != nil {
		return false, err
	}
	if same {
		return true, nil
	}

	if distance > nearDistance {
		if strings.EqualFold(strings.TrimSpace(mention.SurfaceText()), "this") {
			return true, nil
		}
		if kind == model.SievePronounMatch && candidate.Attributes.Person.IsFirstOrSecond() {
			return true, nil
		}
	}

	// nested mentions never corefer
	if mention.Span.Contains(candidate.Span) || candidate.Span.Contains(mention.Span) {
		return true, nil
	}
	return false, nil
}
