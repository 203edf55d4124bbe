package partition

import (
	"fmt"
	"strings"

	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/model"
)

// Manager holds the per-document state the sieves work on: the mentions,
// their per-sentence depth-first ordering and the partition. It is not
// safe for concurrent use; each document gets its own Manager.
type Manager struct {
	docID     string
	mentions  map[int]*model.Mention
	sentences [][]*model.Mention
	part      *Partition
	dict      *dict.Dictionaries
	merges    []model.MergeRecord
}

// NewManager registers every mention of doc as a singleton cluster.
// Mentions are referenced, not copied; the caller must not modify the
// document while the manager is in use.
func NewManager(doc *model.Document, d *dict.Dictionaries) (*Manager, error) {
	m := &Manager{
		docID:     doc.ID,
		mentions:  make(map[int]*model.Mention, doc.MentionCount()),
		sentences: make([][]*model.Mention, len(doc.Sentences)),
		part:      New(doc.MentionCount()),
		dict:      d,
	}

	for si := range doc.Sentences {
		ms := doc.Sentences[si].Mentions
		order := make([]*model.Mention, len(ms))
		for mi := range ms {
			mention := &ms[mi]
			if err := m.part.Add(mention.ID); err != nil {
				return nil, fmt.Errorf("register mentions: %w", err)
			}
			m.mentions[mention.ID] = mention
			order[mi] = mention
		}
		m.sentences[si] = order
	}

	return m, nil
}

// DocumentID returns the id of the managed document
func (m *Manager) DocumentID() string {
	return m.docID
}

// SentenceCount returns the number of sentences
func (m *Manager) SentenceCount() int {
	return len(m.sentences)
}

// Sentence returns the mentions of sentence i in depth-first order
func (m *Manager) Sentence(i int) []*model.Mention {
	if i < 0 || i >= len(m.sentences) {
		return nil
	}
	return m.sentences[i]
}

// Mention looks up a mention by id
func (m *Manager) Mention(id int) (*model.Mention, error) {
	mention, ok := m.mentions[id]
	if !ok {
		return nil, &NotFoundError{MentionID: id}
	}
	return mention, nil
}

// ClusterOf returns the canonical id of the cluster containing id
func (m *Manager) ClusterOf(id int) (int, error) {
	return m.part.ClusterOf(id)
}

// SameCluster reports whether a and b are coreferent so far
func (m *Manager) SameCluster(a, b int) (bool, error) {
	return m.part.Same(a, b)
}

// Cluster returns the mentions in the cluster containing id
func (m *Manager) Cluster(id int) ([]*model.Mention, error) {
	ids, err := m.part.Members(id)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Mention, len(ids))
	for i, mid := range ids {
		out[i] = m.mentions[mid]
	}
	return out, nil
}

// Merge joins the clusters of mention and antecedent on behalf of a sieve.
// Merging two mentions that already share a cluster is a no-op and
// returns false.
func (m *Manager) Merge(mention, antecedent int, kind model.SieveKind, distance int) (bool, error) {
	merged, err := m.part.Union(mention, antecedent)
	if err != nil || !merged {
		return merged, err
	}

	chain, err := m.part.ClusterOf(mention)
	if err != nil {
		return true, err
	}
	m.merges = append(m.merges, model.MergeRecord{
		Sequence:   len(m.merges) + 1,
		Sieve:      kind,
		Mention:    mention,
		Antecedent: antecedent,
		Distance:   distance,
		Chain:      chain,
	})
	return true, nil
}

// Merges returns the merge audit log in the order merges happened
func (m *Manager) Merges() []model.MergeRecord {
	return append([]model.MergeRecord(nil), m.merges...)
}

// Chains returns the current partition ordered by canonical id
// registration order
func (m *Manager) Chains() []model.Chain {
	clusters := m.part.Clusters()
	roots := m.part.Roots()

	chains := make([]model.Chain, 0, len(roots))
	for _, root := range roots {
		ids := clusters[root]
		texts := make([]string, len(ids))
		for i, id := range ids {
			texts[i] = m.mentions[id].SurfaceText()
		}
		chains = append(chains, model.Chain{ID: root, Mentions: ids, Texts: texts})
	}
	return chains
}

// Skip reports whether a sieve ignores mention entirely.
//
// The pronoun sieve leaves wh-headed mentions to the relative-pronoun
// sieve and only resolves personal or possessive pronouns. The string
// matching sieves never start from a pronoun.
func (m *Manager) Skip(mention *model.Mention, kind model.SieveKind) bool {
	switch kind {
	case model.SievePronounMatch:
		if mention.Head().IsWh() {
			return true
		}
		return !m.IsPersonalPronoun(mention)
	case model.SieveExactMatch, model.SieveRelaxedMatch:
		return m.IsPronoun(mention)
	}
	return false
}

// IsPersonalPronoun reports whether a mention is a PRONOMINAL personal or
// possessive pronoun
func (m *Manager) IsPersonalPronoun(mention *model.Mention) bool {
	return mention.IsPronominal() && m.dict.IsPersonalPronoun(normalize(mention.SurfaceText()))
}

// IsPronoun reports whether a mention is pronominal by category, head tag
// or dictionary
func (m *Manager) IsPronoun(mention *model.Mention) bool {
	return mention.IsPronominal() ||
		mention.Head().IsPronoun() ||
		m.dict.IsPronoun(normalize(mention.SurfaceText()))
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
