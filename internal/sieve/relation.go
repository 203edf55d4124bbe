package sieve

import (
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
)

// relationSieve merges mentions linked by an upstream syntactic relation
type relationSieve struct {
	base
	related func(m *model.Mention, id int) bool
}

// NewApposition matches "Karla, a researcher" style appositives
func NewApposition() Sieve {
	return &relationSieve{
		base:    base{desc: model.SieveDescriptor{Kind: model.SieveApposition, MaxDistance: relationWindow}},
		related: (*model.Mention).HasApposition,
	}
}

// NewRelativePronoun matches a relative pronoun to the phrase it modifies
func NewRelativePronoun() Sieve {
	return &relationSieve{
		base:    base{desc: model.SieveDescriptor{Kind: model.SieveRelativePronoun, MaxDistance: relationWindow}},
		related: (*model.Mention).HasRelativePronoun,
	}
}

func (s *relationSieve) Match(_ *partition.Manager, mention, candidate *model.Mention) (bool, error) {
	return s.related(mention, candidate.ID) || s.related(candidate, mention.ID), nil
}

type predicateNominative struct {
	base
}

// NewPredicateNominative matches "X is Y" constructions
func NewPredicateNominative() Sieve {
	return &predicateNominative{
		base: base{desc: model.SieveDescriptor{Kind: model.SievePredicateNominative, MaxDistance: relationWindow}},
	}
}

func (s *predicateNominative) Match(_ *partition.Manager, mention, candidate *model.Mention) (bool, error) {
	if mention.Span.Overlaps(candidate.Span) {
		return false, nil
	}
	return mention.HasPredicateNominative(candidate.ID) || candidate.HasPredicateNominative(mention.ID), nil
}
