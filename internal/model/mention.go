package model

import "strings"

// Category is the syntactic category of a mention
type Category string

const (
	CategoryPronominal Category = "PRONOMINAL"
	CategoryNominal    Category = "NOMINAL"
	CategoryProper     Category = "PROPER"
)

// Span is a half-open token range [Start, End) within the document
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Less orders spans by start, then end
func (s Span) Less(o Span) bool {
	if s.Start != o.Start {
		return s.Start < o.Start
	}
	return s.End < o.End
}

// Contains reports whether s contains or equals o
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Overlaps reports whether s and o share at least one token
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Token is a single tagged word inside a mention
type Token struct {
	Text string `json:"text"`
	POS  string `json:"pos"` // Penn Treebank tag
}

// IsWh reports whether the token carries a wh- tag (WDT, WP, WP$, WRB)
func (t Token) IsWh() bool {
	return strings.HasPrefix(t.POS, "W")
}

// IsPronoun reports whether the token is tagged as a pronoun
func (t Token) IsPronoun() bool {
	switch t.POS {
	case "PRP", "PRP$", "WP", "WP$":
		return true
	}
	return false
}

// Mention is a candidate reference to a real-world entity.
//
// Relation sets are filled by upstream syntactic analysis and are never
// modified once the document is loaded.
type Mention struct {
	ID        int      `json:"id"`
	Sentence  int      `json:"sentence"`
	Span      Span     `json:"span"`
	Category  Category `json:"category"`
	Text      string   `json:"text"`
	Tokens    []Token  `json:"tokens,omitempty"`
	HeadIndex int      `json:"head_index"`

	Appositions          []int `json:"appositions,omitempty"`
	PredicateNominatives []int `json:"predicate_nominatives,omitempty"`
	RelativePronouns     []int `json:"relative_pronouns,omitempty"`

	Features   Features   `json:"features,omitempty"`   // Upstream-assigned fallbacks
	Attributes Attributes `json:"attributes,omitempty"` // Filled by the attribute resolver
}

// Head returns the head token. Mentions without tokens fall back to
// their last whitespace-separated word with no tag.
func (m *Mention) Head() Token {
	if m.HeadIndex >= 0 && m.HeadIndex < len(m.Tokens) {
		return m.Tokens[m.HeadIndex]
	}
	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return Token{}
	}
	return Token{Text: fields[len(fields)-1]}
}

// SurfaceText returns Text, or the tokens joined by spaces if Text is empty
func (m *Mention) SurfaceText() string {
	if m.Text != "" {
		return m.Text
	}
	words := make([]string, len(m.Tokens))
	for i, t := range m.Tokens {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// IsPronominal reports whether the mention is a pronoun
func (m *Mention) IsPronominal() bool {
	return m.Category == CategoryPronominal
}

// HasApposition reports whether id is in the mention's apposition set
func (m *Mention) HasApposition(id int) bool { return containsID(m.Appositions, id) }

// HasPredicateNominative reports whether id is in the mention's predicate-nominative set
func (m *Mention) HasPredicateNominative(id int) bool {
	return containsID(m.PredicateNominatives, id)
}

// HasRelativePronoun reports whether id is in the mention's relative-pronoun set
func (m *Mention) HasRelativePronoun(id int) bool { return containsID(m.RelativePronouns, id) }

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
