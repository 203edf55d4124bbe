package sieve

import (
	"strings"
	"testing"

	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
	"github.com/stretchr/testify/require"
)

// mention builds a tagged mention with unknown attributes
func mention(id, sentence, start, end int, cat model.Category, text string) model.Mention {
	words := strings.Fields(text)
	tokens := make([]model.Token, len(words))
	for i, w := range words {
		pos := "NN"
		switch {
		case cat == model.CategoryPronominal:
			pos = "PRP"
		case cat == model.CategoryProper:
			pos = "NNP"
		case i == 0 && (w == "a" || w == "the" || w == "The"):
			pos = "DT"
		}
		tokens[i] = model.Token{Text: w, POS: pos}
	}
	return model.Mention{
		ID:         id,
		Sentence:   sentence,
		Span:       model.Span{Start: start, End: end},
		Category:   cat,
		Text:       text,
		Tokens:     tokens,
		HeadIndex:  len(tokens) - 1,
		Attributes: model.UnknownAttributes(),
	}
}

func with(m model.Mention, g model.Gender, n model.Number, p model.Person) model.Mention {
	m.Attributes.Gender = g
	m.Attributes.Number = n
	m.Attributes.Person = p
	return m
}

// document groups mentions into sentences by their sentence index
func document(mentions ...model.Mention) *model.Document {
	n := 0
	for _, m := range mentions {
		if m.Sentence+1 > n {
			n = m.Sentence + 1
		}
	}
	doc := &model.Document{ID: "test", Sentences: make([]model.Sentence, n)}
	for i := range doc.Sentences {
		doc.Sentences[i].Index = i
	}
	for _, m := range mentions {
		doc.Sentences[m.Sentence].Mentions = append(doc.Sentences[m.Sentence].Mentions, m)
	}
	return doc
}

func manager(t *testing.T, doc *model.Document) *partition.Manager {
	t.Helper()
	require.NoError(t, doc.Validate())
	d, err := dict.Default()
	require.NoError(t, err)
	mgr, err := partition.NewManager(doc, d)
	require.NoError(t, err)
	return mgr
}

func run(t *testing.T, mgr *partition.Manager, s Sieve) PassResult {
	t.Helper()
	return NewDriver(nil).Run(mgr, s)
}

func same(t *testing.T, mgr *partition.Manager, a, b int) bool {
	t.Helper()
	ok, err := mgr.SameCluster(a, b)
	require.NoError(t, err)
	return ok
}
