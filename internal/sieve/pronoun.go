package sieve

import (
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
)

type pronounMatch struct {
	base
	rule Rule
}

// NewPronounMatch resolves personal and possessive pronouns to clusters
// agreeing in gender and number
func NewPronounMatch(rule Rule) Sieve {
	return &pronounMatch{
		base: base{desc: model.SieveDescriptor{Kind: model.SievePronounMatch, MaxDistance: pronounWindow}},
		rule: rule,
	}
}

func (s *pronounMatch) Match(mgr *partition.Manager, mention, candidate *model.Mention) (bool, error) {
	if candidate.Head().IsWh() {
		return false, nil
	}
	if !mgr.IsPersonalPronoun(mention) {
		return false, nil
	}

	mine, err := mgr.Cluster(mention.ID)
	if err != nil {
		return false, err
	}
	theirs, err := mgr.Cluster(candidate.ID)
	if err != nil {
		return false, err
	}

	return Concordant(genders(mine), genders(theirs), model.GenderUnknown, s.rule) &&
		Concordant(numbers(mine), numbers(theirs), model.NumberUnknown, s.rule), nil
}
