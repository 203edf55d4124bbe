package sieve

import "github.com/ppiankov/corefsieve/internal/model"

// Rule selects how attribute conflicts between two clusters are judged
type Rule int

const (
	// RuleStrict reports a mismatch when either side has an unexplained
	// extra value
	RuleStrict Rule = iota
	// RuleLenient reports a mismatch only when both sides do
	RuleLenient
)

// ParseRule maps a configuration value to a Rule
func ParseRule(s string) Rule {
	if s == model.ConcordanceLenient {
		return RuleLenient
	}
	return RuleStrict
}

// Concordant compares the attribute values of two clusters. UNKNOWN
// values are dropped from both value sets; a side that contains at least
// one UNKNOWN member can absorb any value of the other side.
func Concordant[T comparable](this, ant []T, unknown T, rule Rule) bool {
	thisSet, thisUnknown := valueSet(this, unknown)
	antSet, antUnknown := valueSet(ant, unknown)

	hasExtraThis := !antUnknown && hasOutside(thisSet, antSet)
	hasExtraAnt := !thisUnknown && hasOutside(antSet, thisSet)

	if rule == RuleLenient {
		return !(hasExtraAnt && hasExtraThis)
	}
	return !(hasExtraAnt || hasExtraThis)
}

func valueSet[T comparable](values []T, unknown T) (map[T]bool, bool) {
	set := make(map[T]bool, len(values))
	sawUnknown := false
	for _, v := range values {
		if v == unknown {
			sawUnknown = true
			continue
		}
		set[v] = true
	}
	return set, sawUnknown
}

// hasOutside reports whether a holds a value missing from b
func hasOutside[T comparable](a, b map[T]bool) bool {
	for v := range a {
		if !b[v] {
			return true
		}
	}
	return false
}

func genders(cluster []*model.Mention) []model.Gender {
	out := make([]model.Gender, len(cluster))
	for i, m := range cluster {
		out[i] = orUnknown(m.Attributes.Gender, model.GenderUnknown)
	}
	return out
}

func numbers(cluster []*model.Mention) []model.Number {
	out := make([]model.Number, len(cluster))
	for i, m := range cluster {
		out[i] = orUnknown(m.Attributes.Number, model.NumberUnknown)
	}
	return out
}

func orUnknown[T comparable](v, unknown T) T {
	var zero T
	if v == zero {
		return unknown
	}
	return v
}
