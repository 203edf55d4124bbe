// Package score evaluates resolved chains against gold annotations with
// the MUC and B-cubed coreference metrics.
package score

import (
	"fmt"
	"sort"

	"github.com/ppiankov/corefsieve/internal/model"
)

// Metrics below this F1 raise a warning signal
const (
	warnBelow     = 0.5
	criticalBelow = 0.25
)

// Scorer compares response chains to gold chains
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// partition maps each mention to the index of its cluster
type partition struct {
	clusters [][]int
	of       map[int]int
}

// newPartition completes clusters over mentions: every mention absent
// from clusters becomes a singleton
func newPartition(clusters [][]int, mentions []int) partition {
	p := partition{of: make(map[int]int, len(mentions))}
	for _, c := range clusters {
		if len(c) == 0 {
			continue
		}
		idx := len(p.clusters)
		p.clusters = append(p.clusters, c)
		for _, id := range c {
			p.of[id] = idx
		}
	}
	for _, id := range mentions {
		if _, ok := p.of[id]; !ok {
			p.of[id] = len(p.clusters)
			p.clusters = append(p.clusters, []int{id})
		}
	}
	return p
}

// Calculate scores response against gold. Both are completed with
// singletons so they cover every mention in either.
func (s *Scorer) Calculate(response []model.Chain, gold [][]int) model.Score {
	respClusters := make([][]int, len(response))
	for i, c := range response {
		respClusters[i] = c.Mentions
	}

	mentions := allMentions(respClusters, gold)
	resp := newPartition(respClusters, mentions)
	key := newPartition(gold, mentions)

	mucRecall, mucRecallDen := muc(key, resp)
	mucPrecision, mucPrecisionDen := muc(resp, key)
	mucMetric := metric(mucPrecision, mucRecall)

	b3Recall := bcubed(key, resp, mentions)
	b3Precision := bcubed(resp, key, mentions)
	b3Metric := metric(b3Precision, b3Recall)

	var signals []model.Signal
	signals = append(signals, s.structuralSignals(key, resp, model.SignalSplitChain)...)
	signals = append(signals, s.structuralSignals(resp, key, model.SignalConflatedChain)...)
	if sig, ok := s.thresholdSignal(model.SignalLowRecall, "MUC recall", mucMetric.Recall, mucRecallDen); ok {
		signals = append(signals, sig)
	}
	if sig, ok := s.thresholdSignal(model.SignalLowPrecision, "MUC precision", mucMetric.Precision, mucPrecisionDen); ok {
		signals = append(signals, sig)
	}

	return model.Score{
		MUC:     mucMetric,
		BCubed:  b3Metric,
		Signals: signals,
	}
}

// muc returns the link-based recall of response with respect to key, and
// the number of key links it was computed over. Swapping the arguments
// gives precision.
func muc(key, response partition) (float64, int) {
	num, den := 0, 0
	for _, c := range key.clusters {
		parts := make(map[int]bool)
		for _, id := range c {
			parts[response.of[id]] = true
		}
		num += len(c) - len(parts)
		den += len(c) - 1
	}
	if den == 0 {
		return 0, 0
	}
	return float64(num) / float64(den), den
}

// bcubed returns the mention-averaged recall of response with respect to
// key. Swapping the arguments gives precision.
func bcubed(key, response partition, mentions []int) float64 {
	if len(mentions) == 0 {
		return 0
	}
	total := 0.0
	for _, id := range mentions {
		k := key.clusters[key.of[id]]
		r := response.clusters[response.of[id]]
		total += float64(overlap(k, r)) / float64(len(k))
	}
	return total / float64(len(mentions))
}

// structuralSignals reports clusters of a that are spread over more than
// one cluster of b
func (s *Scorer) structuralSignals(a, b partition, kind model.SignalType) []model.Signal {
	var signals []model.Signal
	for _, c := range a.clusters {
		if len(c) < 2 {
			continue
		}
		parts := make(map[int][]int)
		for _, id := range c {
			idx := b.of[id]
			parts[idx] = append(parts[idx], id)
		}
		if len(parts) < 2 {
			continue
		}

		groups := make([][]int, 0, len(parts))
		for _, g := range parts {
			sort.Ints(g)
			groups = append(groups, g)
		}
		sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })

		desc := fmt.Sprintf("Gold chain %v resolved as %d chains", c, len(groups))
		if kind == model.SignalConflatedChain {
			desc = fmt.Sprintf("Resolved chain %v joins %d gold chains", c, len(groups))
		}
		signals = append(signals, model.Signal{
			Type:        kind,
			Severity:    model.SeverityWarning,
			Description: desc,
			Data: map[string]interface{}{
				"chain":  c,
				"groups": groups,
			},
		})
	}
	return signals
}

func (s *Scorer) thresholdSignal(kind model.SignalType, name string, value float64, links int) (model.Signal, bool) {
	if links == 0 || value >= warnBelow {
		return model.Signal{}, false
	}
	severity := model.SeverityWarning
	if value < criticalBelow {
		severity = model.SeverityCritical
	}
	return model.Signal{
		Type:        kind,
		Severity:    severity,
		Description: fmt.Sprintf("%s %.2f below %.2f", name, value, warnBelow),
		Data: map[string]interface{}{
			"value": value,
			"links": links,
		},
	}, true
}

func metric(precision, recall float64) model.Metric {
	m := model.Metric{Precision: precision, Recall: recall}
	if precision+recall > 0 {
		m.F1 = 2 * precision * recall / (precision + recall)
	}
	return m
}

func overlap(a, b []int) int {
	set := make(map[int]bool, len(b))
	for _, id := range b {
		set[id] = true
	}
	n := 0
	for _, id := range a {
		if set[id] {
			n++
		}
	}
	return n
}

func allMentions(groups ...[][]int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, clusters := range groups {
		for _, c := range clusters {
			for _, id := range c {
				if !seen[id] {
					seen[id] = true
					out = append(out, id)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}
