package model

import "time"

// Report is the resolution result for one document
type Report struct {
	DocumentID string    `json:"document_id"`
	RunID      string    `json:"run_id"`
	ResolvedAt time.Time `json:"resolved_at"`
	Mentions   int       `json:"mentions"`

	Chains   []Chain       `json:"chains"`             // Sorted by chain id
	Merges   []MergeRecord `json:"merges"`             // In the order they happened
	Failures []Failure     `json:"failures,omitempty"` // Mentions left unmatched by an error
	Sieves   []SieveStat   `json:"sieves"`             // One entry per executed sieve

	Score *Score `json:"score,omitempty"` // Only for documents with gold chains
}

// Chain is one coreference chain. ID is the id of its first-registered
// member.
type Chain struct {
	ID       int      `json:"id"`
	Mentions []int    `json:"mentions"`
	Texts    []string `json:"texts"`
}

// MergeRecord records which sieve joined two clusters
type MergeRecord struct {
	Sequence   int       `json:"sequence"`
	Sieve      SieveKind `json:"sieve"`
	Mention    int       `json:"mention"`
	Antecedent int       `json:"antecedent"`
	Distance   int       `json:"distance"` // Sentence distance
	Chain      int       `json:"chain"`    // Canonical id of the merged cluster
}

// Failure records a mention whose search was aborted by an error
type Failure struct {
	Sieve   SieveKind `json:"sieve"`
	Mention int       `json:"mention"`
	Error   string    `json:"error"`
}

// SieveStat summarizes one sieve pass
type SieveStat struct {
	Sieve    SieveKind `json:"sieve"`
	Window   int       `json:"window"`
	Visited  int       `json:"visited"`
	Skipped  int       `json:"skipped"`
	Merges   int       `json:"merges"`
	Failures int       `json:"failures"`
}

// ChainMap returns the partition as canonical chain id -> member ids
func (r *Report) ChainMap() map[int][]int {
	out := make(map[int][]int, len(r.Chains))
	for _, c := range r.Chains {
		out[c.ID] = c.Mentions
	}
	return out
}

// NonSingletons returns chains with more than one member
func (r *Report) NonSingletons() []Chain {
	var out []Chain
	for _, c := range r.Chains {
		if len(c.Mentions) > 1 {
			out = append(out, c)
		}
	}
	return out
}
