package sieve

import (
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
)

// depthFirstCandidates lists antecedent candidates from one sentence.
// In the mention's own sentence only mentions starting before the
// mention ends are candidates; earlier sentences contribute all their
// mentions. Both keep dependency depth-first order.
func depthFirstCandidates(mgr *partition.Manager, mention *model.Mention, sentence int) []*model.Mention {
	mentions := mgr.Sentence(sentence)
	if sentence != mention.Sentence {
		return mentions
	}

	out := make([]*model.Mention, 0, len(mentions))
	for _, c := range mentions {
		if c.ID == mention.ID {
			continue
		}
		if c.Span.Start < mention.Span.End {
			out = append(out, c)
		}
	}
	return out
}
