package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/corefsieve/internal/cache"
	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func newPipeline(t *testing.T, cfg *model.Config, rc *cache.ReportCache) *Pipeline {
	t.Helper()
	d, err := dict.Default()
	require.NoError(t, err)
	p, err := New(cfg, d, rc, nil)
	require.NoError(t, err)
	return p
}

func loadKarla(t *testing.T) *model.Document {
	t.Helper()
	doc, err := model.LoadDocument(filepath.Join("testdata", "karla.json"))
	require.NoError(t, err)
	return doc
}

func TestResolve_Karla(t *testing.T) {
	p := newPipeline(t, testConfig(), nil)

	report, err := p.Resolve(loadKarla(t))
	require.NoError(t, err)

	assert.Equal(t, "karla", report.DocumentID)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 4, report.Mentions)
	assert.Empty(t, report.Failures)
	assert.Equal(t, map[int][]int{1: {1, 3}, 2: {2, 4}}, report.ChainMap())

	require.Len(t, report.Merges, 2)
	for _, m := range report.Merges {
		assert.Equal(t, model.SievePronounMatch, m.Sieve)
		assert.Equal(t, 1, m.Distance)
	}
	assert.Equal(t, 3, report.Merges[0].Mention)
	assert.Equal(t, 1, report.Merges[0].Antecedent)
	assert.Equal(t, 4, report.Merges[1].Mention)
	assert.Equal(t, 2, report.Merges[1].Antecedent)

	require.Len(t, report.Sieves, len(model.SievePriority))
	for i, s := range report.Sieves {
		assert.Equal(t, model.SievePriority[i], s.Sieve)
	}
}

func TestResolve_LenientRuleChangesKarla(t *testing.T) {
	cfg := testConfig()
	cfg.Sieves.Concordance = model.ConcordanceLenient
	p := newPipeline(t, cfg, nil)

	report, err := p.Resolve(loadKarla(t))
	require.NoError(t, err)

	// Karla's gender is unknown, so the lenient rule lets "it" join her cluster
	assert.Equal(t, map[int][]int{1: {1, 3, 4}, 2: {2}}, report.ChainMap())
}

func TestResolve_DeviceAgreement(t *testing.T) {
	nominal := func(id, sentence, start int, text, head string) model.Mention {
		return model.Mention{
			ID: id, Sentence: sentence, Span: model.Span{Start: start, End: start + 2},
			Category: model.CategoryNominal, Text: text,
			Tokens:    []model.Token{{Text: "the", POS: "DT"}, {Text: head, POS: "NN"}},
			HeadIndex: 1,
		}
	}
	pronoun := func(id, sentence, start int, text string) model.Mention {
		return model.Mention{
			ID: id, Sentence: sentence, Span: model.Span{Start: start, End: start + 1},
			Category: model.CategoryPronominal, Text: text,
			Tokens: []model.Token{{Text: text, POS: "PRP"}},
		}
	}

	doc := &model.Document{ID: "device", Sentences: []model.Sentence{
		{Index: 0, Mentions: []model.Mention{nominal(1, 0, 0, "the device", "device")}},
		{Index: 1, Mentions: []model.Mention{pronoun(2, 1, 4, "they")}},
		{Index: 2, Mentions: []model.Mention{pronoun(3, 2, 8, "it")}},
	}}

	report, err := newPipeline(t, testConfig(), nil).Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, model.GenderUnknown, doc.Sentences[0].Mentions[0].Attributes.Gender)
	assert.Equal(t, model.NumberSingular, doc.Sentences[0].Mentions[0].Attributes.Number)
	assert.Equal(t, map[int][]int{1: {1, 3}, 2: {2}}, report.ChainMap())
}

func TestResolve_EnabledSubset(t *testing.T) {
	cfg := testConfig()
	cfg.Sieves.Enabled = []string{"exact_match"}
	p := newPipeline(t, cfg, nil)

	report, err := p.Resolve(loadKarla(t))
	require.NoError(t, err)
	assert.Empty(t, report.Merges)
	assert.Len(t, report.NonSingletons(), 0)
	require.Len(t, report.Sieves, 1)
	assert.Equal(t, model.SieveExactMatch, report.Sieves[0].Sieve)
}

func TestResolve_InvalidDocument(t *testing.T) {
	doc := &model.Document{ID: "bad", Sentences: []model.Sentence{
		{Index: 0, Mentions: []model.Mention{
			{ID: 1, Span: model.Span{Start: 3, End: 3}, Category: model.CategoryNominal, Text: "x"},
		}},
	}}

	_, err := newPipeline(t, testConfig(), nil).Resolve(doc)
	assert.Error(t, err)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Sieves.Concordance = "sometimes"

	d, err := dict.Default()
	require.NoError(t, err)
	_, err = New(cfg, d, nil, nil)
	assert.Error(t, err)
}

func TestResolveFile_UsesCache(t *testing.T) {
	rc := cache.NewReportCache(cache.NewMemoryCache(time.Minute, time.Minute), 0)
	p := newPipeline(t, testConfig(), rc)
	path := filepath.Join("testdata", "karla.json")

	first, err := p.ResolveFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.ResolveFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Report.RunID, second.Report.RunID)
	assert.Equal(t, first.Report.ChainMap(), second.Report.ChainMap())

	require.NoError(t, p.ClearCache())
	third, err := p.ResolveFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestResolveFile_DictionaryEditInvalidatesCache(t *testing.T) {
	base, err := os.ReadFile(filepath.Join("..", "dict", "data", "english.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	dictPath := filepath.Join(dir, "lists.yaml")
	require.NoError(t, os.WriteFile(dictPath, base, 0644))

	cfg := model.DefaultConfig()
	cfg.Dictionary.Path = dictPath
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(dir, "cache")
	doc := filepath.Join("testdata", "karla.json")

	p, err := NewPipeline(cfg, nil)
	require.NoError(t, err)
	first, err := p.ResolveFile(context.Background(), doc)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, map[int][]int{1: {1, 3}, 2: {2, 4}}, first.Report.ChainMap())

	// "it" is no longer a personal pronoun, so the pronoun sieve skips it
	edited := strings.Replace(string(base), "it, its, itself, they", "its, itself, they", 1)
	require.NotEqual(t, string(base), edited)
	require.NoError(t, os.WriteFile(dictPath, []byte(edited), 0644))

	p, err = NewPipeline(cfg, nil)
	require.NoError(t, err)
	second, err := p.ResolveFile(context.Background(), doc)
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.Equal(t, map[int][]int{1: {1, 3}, 2: {2}, 4: {4}}, second.Report.ChainMap())
}

func TestResolveFile_Errors(t *testing.T) {
	p := newPipeline(t, testConfig(), nil)

	_, err := p.ResolveFile(context.Background(), filepath.Join("testdata", "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0644))
	_, err = p.ResolveFile(context.Background(), broken)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.ResolveFile(ctx, filepath.Join("testdata", "karla.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderReport(t *testing.T) {
	p := newPipeline(t, testConfig(), nil)
	report, err := p.Resolve(loadKarla(t))
	require.NoError(t, err)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	require.NoError(t, p.RenderReport(report, jsonPath, mdPath, false))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded model.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.ChainMap(), decoded.ChainMap())

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Coreference report: karla")
	assert.Contains(t, string(md), `"Karla" (1), "She" (3)`)
	assert.Contains(t, string(md), "| 1 | pronoun_match | 3 | 1 | 1 | 1 |")
	assert.Contains(t, string(md), "Generated by corefsieve")
}

func TestRenderer_Singletons(t *testing.T) {
	report := &model.Report{
		DocumentID: "d",
		Chains: []model.Chain{
			{ID: 1, Mentions: []int{1}, Texts: []string{"Karla"}},
		},
	}

	hidden := NewRenderer(false, false).Markdown(report)
	assert.Contains(t, hidden, "No coreference chains found")
	assert.NotContains(t, hidden, "Generated by")

	shown := NewRenderer(false, true).Markdown(report)
	assert.Contains(t, shown, `"Karla" (1)`)

	var buf bytes.Buffer
	NewRenderer(false, false).RenderSummary(&buf, report)
	assert.Contains(t, buf.String(), "d: 0 mentions, 1 chains, 0 merges")
}

func TestResolve_ScoresAgainstGoldChains(t *testing.T) {
	doc := loadKarla(t)
	doc.GoldChains = [][]int{{1, 3}, {2, 4}}

	report, err := newPipeline(t, testConfig(), nil).Resolve(doc)
	require.NoError(t, err)
	require.NotNil(t, report.Score)
	assert.InDelta(t, 1.0, report.Score.MUC.F1, 1e-9)
	assert.InDelta(t, 1.0, report.Score.BCubed.F1, 1e-9)
	assert.Empty(t, report.Score.Signals)

	cfg := testConfig()
	cfg.Sieves.Concordance = "lenient"
	doc = loadKarla(t)
	doc.GoldChains = [][]int{{1, 3}, {2, 4}}

	report, err = newPipeline(t, cfg, nil).Resolve(doc)
	require.NoError(t, err)
	require.NotNil(t, report.Score)
	assert.Less(t, report.Score.MUC.Precision, 1.0)

	kinds := make(map[model.SignalType]int)
	for _, s := range report.Score.Signals {
		kinds[s.Type]++
	}
	assert.Equal(t, 1, kinds[model.SignalConflatedChain])
	assert.Equal(t, 1, kinds[model.SignalSplitChain])

	md := NewRenderer(false, false).Markdown(report)
	assert.Contains(t, md, "## Evaluation")
	assert.Contains(t, md, "conflated_chain")
}

func TestResolve_NoGoldChainsNoScore(t *testing.T) {
	report, err := newPipeline(t, testConfig(), nil).Resolve(loadKarla(t))
	require.NoError(t, err)
	assert.Nil(t, report.Score)
	assert.NotContains(t, NewRenderer(false, false).Markdown(report), "Evaluation")
}
