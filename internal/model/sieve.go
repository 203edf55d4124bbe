package model

import "fmt"

// SieveKind identifies one matching pass
type SieveKind string

const (
	SieveApposition          SieveKind = "apposition"
	SievePredicateNominative SieveKind = "predicate_nominative"
	SieveRelativePronoun     SieveKind = "relative_pronoun"
	SieveExactMatch          SieveKind = "exact_match"
	SieveRelaxedMatch        SieveKind = "relaxed_match"
	SievePronounMatch        SieveKind = "pronoun_match"
)

// Unbounded marks a sieve without a sentence-distance limit
const Unbounded = -1

// SievePriority is the fixed execution order, highest precision first
var SievePriority = []SieveKind{
	SieveApposition,
	SievePredicateNominative,
	SieveRelativePronoun,
	SieveExactMatch,
	SieveRelaxedMatch,
	SievePronounMatch,
}

// ParseSieveKind validates a sieve name
func ParseSieveKind(s string) (SieveKind, error) {
	for _, k := range SievePriority {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sieve %q", s)
}

// SieveDescriptor is the immutable configuration of one sieve
type SieveDescriptor struct {
	Kind        SieveKind
	MaxDistance int // sentences; Unbounded for no limit
}

// Within reports whether a sentence distance is inside the window
func (d SieveDescriptor) Within(distance int) bool {
	return d.MaxDistance == Unbounded || distance <= d.MaxDistance
}
