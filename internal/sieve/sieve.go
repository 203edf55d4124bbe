// Package sieve implements the coreference passes and the driver loop
// that runs them over a document.
package sieve

import (
	"fmt"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
)

// Sieve is one deterministic matching pass
type Sieve interface {
	// Descriptor returns the kind and sentence window of the sieve
	Descriptor() model.SieveDescriptor

	// Candidates returns the antecedents for mention in sentence, in the
	// order they are tested
	Candidates(mgr *partition.Manager, mention *model.Mention, sentence int) []*model.Mention

	// Match reports whether mention and candidate corefer
	Match(mgr *partition.Manager, mention, candidate *model.Mention) (bool, error)
}

// Sentence windows
const (
	relationWindow = 2
	exactWindow    = 30
	relaxedWindow  = 5
	pronounWindow  = 5
)

// base supplies the descriptor and the depth-first candidate ordering
// shared by every sieve
type base struct {
	desc model.SieveDescriptor
}

func (b base) Descriptor() model.SieveDescriptor {
	return b.desc
}

func (b base) Candidates(mgr *partition.Manager, mention *model.Mention, sentence int) []*model.Mention {
	return depthFirstCandidates(mgr, mention, sentence)
}

// New creates the sieve of the given kind
func New(kind model.SieveKind, rule Rule) (Sieve, error) {
	switch kind {
	case model.SieveApposition:
		return NewApposition(), nil
	case model.SievePredicateNominative:
		return NewPredicateNominative(), nil
	case model.SieveRelativePronoun:
		return NewRelativePronoun(), nil
	case model.SieveExactMatch:
		return NewExactMatch(), nil
	case model.SieveRelaxedMatch:
		return NewRelaxedMatch(), nil
	case model.SievePronounMatch:
		return NewPronounMatch(rule), nil
	}
	return nil, fmt.Errorf("unknown sieve %q", kind)
}

// Build creates the named sieves in fixed priority order, whatever the
// order of names
func Build(names []string, rule Rule) ([]Sieve, error) {
	wanted := make(map[model.SieveKind]bool, len(names))
	for _, name := range names {
		kind, err := model.ParseSieveKind(name)
		if err != nil {
			return nil, err
		}
		wanted[kind] = true
	}

	var sieves []Sieve
	for _, kind := range model.SievePriority {
		if !wanted[kind] {
			continue
		}
		s, err := New(kind, rule)
		if err != nil {
			return nil, err
		}
		sieves = append(sieves, s)
	}
	return sieves, nil
}

// All returns every sieve in priority order
func All(rule Rule) []Sieve {
	sieves := make([]Sieve, 0, len(model.SievePriority))
	for _, kind := range model.SievePriority {
		s, _ := New(kind, rule)
		sieves = append(sieves, s)
	}
	return sieves
}
