package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is one pre-analysed input document
type Document struct {
	ID        string     `json:"id"`
	Sentences []Sentence `json:"sentences"`

	// GoldChains optionally annotates the expected coreference chains.
	// Mentions missing from every gold chain are gold singletons.
	GoldChains [][]int `json:"gold_chains,omitempty"`
}

// Sentence holds the mentions of one sentence in dependency-tree
// depth-first order
type Sentence struct {
	Index    int       `json:"index"`
	Mentions []Mention `json:"mentions"`
}

// MentionCount returns the number of mentions in the document
func (d *Document) MentionCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Mentions)
	}
	return n
}

// Validate checks the structural invariants the resolver relies on:
// sentence indices match their position, mention ids are unique, spans
// are non-empty and every mention has a category. Gold chains must
// reference known mentions at most once.
func (d *Document) Validate() error {
	seen := make(map[int]bool)
	for i, s := range d.Sentences {
		if s.Index != i {
			return fmt.Errorf("sentence at position %d has index %d", i, s.Index)
		}
		for _, m := range s.Mentions {
			if seen[m.ID] {
				return fmt.Errorf("duplicate mention id %d", m.ID)
			}
			seen[m.ID] = true

			if m.Sentence != i {
				return fmt.Errorf("mention %d: sentence %d, listed under sentence %d", m.ID, m.Sentence, i)
			}
			if m.Span.Start >= m.Span.End {
				return fmt.Errorf("mention %d: span [%d,%d) is empty", m.ID, m.Span.Start, m.Span.End)
			}
			switch m.Category {
			case CategoryPronominal, CategoryNominal, CategoryProper:
			default:
				return fmt.Errorf("mention %d: unknown category %q", m.ID, m.Category)
			}
		}
	}

	inGold := make(map[int]bool)
	for ci, chain := range d.GoldChains {
		for _, id := range chain {
			if !seen[id] {
				return fmt.Errorf("gold chain %d: unknown mention %d", ci, id)
			}
			if inGold[id] {
				return fmt.Errorf("gold chain %d: mention %d already in another chain", ci, id)
			}
			inGold[id] = true
		}
	}
	return nil
}

// DecodeDocument reads and validates a JSON document
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document %q: %w", doc.ID, err)
	}
	return &doc, nil
}

// LoadDocument reads a JSON document from disk
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeDocument(f)
}
