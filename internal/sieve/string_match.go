package sieve

import (
	"strings"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
)

const possessive = "'s"

type exactMatch struct {
	base
}

// NewExactMatch matches clusters sharing a nominal or proper mention
// with the same text
func NewExactMatch() Sieve {
	return &exactMatch{
		base: base{desc: model.SieveDescriptor{Kind: model.SieveExactMatch, MaxDistance: exactWindow}},
	}
}

func (s *exactMatch) Match(mgr *partition.Manager, mention, candidate *model.Mention) (bool, error) {
	mine, err := comparableTexts(mgr, mention.ID)
	if err != nil {
		return false, err
	}
	theirs, err := comparableTexts(mgr, candidate.ID)
	if err != nil {
		return false, err
	}

	for _, a := range mine {
		for _, b := range theirs {
			if equalUpToPossessive(a, b) {
				return true, nil
			}
		}
	}
	return false, nil
}

// comparableTexts returns the normalized texts of the nominal and proper
// non-pronoun members of a cluster
func comparableTexts(mgr *partition.Manager, id int) ([]string, error) {
	cluster, err := mgr.Cluster(id)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(cluster))
	for _, m := range cluster {
		if !isNominal(mgr, m) {
			continue
		}
		if t := normalizeText(m.SurfaceText()); t != "" {
			texts = append(texts, t)
		}
	}
	return texts, nil
}

type relaxedMatch struct {
	base
}

// NewRelaxedMatch matches mentions whose text agrees once post-modifiers
// are cut off
func NewRelaxedMatch() Sieve {
	return &relaxedMatch{
		base: base{desc: model.SieveDescriptor{Kind: model.SieveRelaxedMatch, MaxDistance: relaxedWindow}},
	}
}

func (s *relaxedMatch) Match(mgr *partition.Manager, mention, candidate *model.Mention) (bool, error) {
	if !isNominal(mgr, mention) || !isNominal(mgr, candidate) {
		return false, nil
	}
	a := normalizeText(truncated(mention))
	b := normalizeText(truncated(candidate))
	if a == "" || b == "" {
		return false, nil
	}
	return equalUpToPossessive(a, b), nil
}

// truncated returns the mention text up to the first comma or the first
// wh- token after the head
func truncated(m *model.Mention) string {
	if len(m.Tokens) == 0 {
		text := m.SurfaceText()
		if i := strings.Index(text, ","); i >= 0 {
			text = text[:i]
		}
		return text
	}

	words := make([]string, 0, len(m.Tokens))
	for i, t := range m.Tokens {
		if t.Text == "," || (i > m.HeadIndex && t.IsWh()) {
			break
		}
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}

func isNominal(mgr *partition.Manager, m *model.Mention) bool {
	switch m.Category {
	case model.CategoryNominal, model.CategoryProper:
		return !mgr.IsPronoun(m)
	}
	return false
}

// normalizeText lowercases, collapses whitespace and reattaches a
// tokenized possessive ("Karla 's" -> "karla's")
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.ReplaceAll(s, " "+possessive, possessive)
}

func equalUpToPossessive(a, b string) bool {
	return a == b || a+possessive == b || b+possessive == a
}
