package partition

import (
	"errors"
	"testing"

	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *model.Document {
	return &model.Document{
		ID: "doc-1",
		Sentences: []model.Sentence{
			{Index: 0, Mentions: []model.Mention{
				{ID: 1, Sentence: 0, Span: model.Span{Start: 0, End: 1}, Category: model.CategoryProper, Text: "Karla",
					Tokens: []model.Token{{Text: "Karla", POS: "NNP"}}},
				{ID: 2, Sentence: 0, Span: model.Span{Start: 2, End: 4}, Category: model.CategoryNominal, Text: "a result",
					Tokens: []model.Token{{Text: "a", POS: "DT"}, {Text: "result", POS: "NN"}}, HeadIndex: 1},
			}},
			{Index: 1, Mentions: []model.Mention{
				{ID: 3, Sentence: 1, Span: model.Span{Start: 5, End: 6}, Category: model.CategoryPronominal, Text: "She",
					Tokens: []model.Token{{Text: "She", POS: "PRP"}}},
				{ID: 4, Sentence: 1, Span: model.Span{Start: 7, End: 8}, Category: model.CategoryPronominal, Text: "which",
					Tokens: []model.Token{{Text: "which", POS: "WDT"}}},
				{ID: 5, Sentence: 1, Span: model.Span{Start: 8, End: 9}, Category: model.CategoryPronominal, Text: "this",
					Tokens: []model.Token{{Text: "this", POS: "DT"}}},
			}},
		},
	}
}

func newManager(t *testing.T, doc *model.Document) *Manager {
	t.Helper()
	d, err := dict.Default()
	require.NoError(t, err)
	m, err := NewManager(doc, d)
	require.NoError(t, err)
	return m
}

func TestNewManager_Ordering(t *testing.T) {
	m := newManager(t, testDocument())

	assert.Equal(t, "doc-1", m.DocumentID())
	assert.Equal(t, 2, m.SentenceCount())
	require.Len(t, m.Sentence(1), 3)
	assert.Equal(t, 3, m.Sentence(1)[0].ID)
	assert.Nil(t, m.Sentence(5))

	mention, err := m.Mention(2)
	require.NoError(t, err)
	assert.Equal(t, "a result", mention.Text)

	_, err = m.Mention(77)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewManager_DuplicateIDs(t *testing.T) {
	doc := testDocument()
	doc.Sentences[1].Mentions[0].ID = 1

	d, err := dict.Default()
	require.NoError(t, err)
	_, err = NewManager(doc, d)
	assert.Error(t, err)
}

func TestManager_MergeRecordsSieve(t *testing.T) {
	m := newManager(t, testDocument())

	merged, err := m.Merge(3, 1, model.SievePronounMatch, 1)
	require.NoError(t, err)
	assert.True(t, merged)

	merged, err = m.Merge(1, 3, model.SieveExactMatch, 1)
	require.NoError(t, err)
	assert.False(t, merged, "already coreferent")

	merges := m.Merges()
	require.Len(t, merges, 1)
	assert.Equal(t, model.MergeRecord{
		Sequence: 1, Sieve: model.SievePronounMatch, Mention: 3, Antecedent: 1, Distance: 1, Chain: 1,
	}, merges[0])

	cluster, err := m.Cluster(3)
	require.NoError(t, err)
	require.Len(t, cluster, 2)
	assert.Equal(t, "Karla", cluster[0].Text)

	_, err = m.Merge(3, 99, model.SieveApposition, 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestManager_Chains(t *testing.T) {
	m := newManager(t, testDocument())
	_, err := m.Merge(3, 1, model.SievePronounMatch, 1)
	require.NoError(t, err)

	chains := m.Chains()
	require.Len(t, chains, 4)
	assert.Equal(t, model.Chain{ID: 1, Mentions: []int{1, 3}, Texts: []string{"Karla", "She"}}, chains[0])
	assert.Equal(t, 2, chains[1].ID)
}

func TestManager_Skip(t *testing.T) {
	m := newManager(t, testDocument())
	karla, _ := m.Mention(1)
	she, _ := m.Mention(3)
	which, _ := m.Mention(4)
	this, _ := m.Mention(5)

	assert.False(t, m.Skip(she, model.SievePronounMatch))
	assert.True(t, m.Skip(which, model.SievePronounMatch), "wh-headed mentions belong to the relative-pronoun sieve")
	assert.True(t, m.Skip(this, model.SievePronounMatch), "demonstratives are not personal pronouns")
	assert.True(t, m.Skip(karla, model.SievePronounMatch))

	assert.True(t, m.Skip(she, model.SieveExactMatch))
	assert.True(t, m.Skip(she, model.SieveRelaxedMatch))
	assert.False(t, m.Skip(karla, model.SieveExactMatch))

	assert.True(t, m.IsPersonalPronoun(she))
	assert.False(t, m.IsPersonalPronoun(this))
	assert.False(t, m.IsPersonalPronoun(karla))

	assert.False(t, m.Skip(which, model.SieveRelativePronoun))
	assert.False(t, m.Skip(she, model.SieveApposition))
}
