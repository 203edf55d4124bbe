// Package partition owns the mutable mention-to-cluster partition of a
// document.
package partition

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is matched by every NotFoundError
var ErrNotFound = errors.New("mention not registered")

// NotFoundError reports a mention id unknown to the partition. It points
// to a defect in the upstream producer.
type NotFoundError struct {
	MentionID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mention %d not registered", e.MentionID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Partition is a disjoint-set forest over mention ids with path
// compression and union by size. Mentions are addressed by slot, their
// registration position; the canonical id of a cluster is the id of its
// lowest slot.
type Partition struct {
	slots   map[int]int
	ids     []int
	parent  []int
	size    []int
	members [][]int // root slot -> member slots, nil for non-roots
	first   []int   // root slot -> lowest member slot
}

// New creates an empty partition
func New(capacity int) *Partition {
	return &Partition{
		slots:   make(map[int]int, capacity),
		ids:     make([]int, 0, capacity),
		parent:  make([]int, 0, capacity),
		size:    make([]int, 0, capacity),
		members: make([][]int, 0, capacity),
		first:   make([]int, 0, capacity),
	}
}

// Add registers id as a singleton cluster
func (p *Partition) Add(id int) error {
	if _, ok := p.slots[id]; ok {
		return fmt.Errorf("mention %d already registered", id)
	}
	slot := len(p.ids)
	p.slots[id] = slot
	p.ids = append(p.ids, id)
	p.parent = append(p.parent, slot)
	p.size = append(p.size, 1)
	p.members = append(p.members, []int{slot})
	p.first = append(p.first, slot)
	return nil
}

// Len returns the number of registered mentions
func (p *Partition) Len() int {
	return len(p.ids)
}

func (p *Partition) slot(id int) (int, error) {
	s, ok := p.slots[id]
	if !ok {
		return 0, &NotFoundError{MentionID: id}
	}
	return s, nil
}

func (p *Partition) find(s int) int {
	root := s
	for p.parent[root] != root {
		root = p.parent[root]
	}
	for p.parent[s] != root {
		next := p.parent[s]
		p.parent[s] = root
		s = next
	}
	return root
}

// ClusterOf returns the canonical id of the cluster containing id
func (p *Partition) ClusterOf(id int) (int, error) {
	s, err := p.slot(id)
	if err != nil {
		return 0, err
	}
	return p.ids[p.first[p.find(s)]], nil
}

// Same reports whether a and b are in the same cluster
func (p *Partition) Same(a, b int) (bool, error) {
	sa, err := p.slot(a)
	if err != nil {
		return false, err
	}
	sb, err := p.slot(b)
	if err != nil {
		return false, err
	}
	return p.find(sa) == p.find(sb), nil
}

// Members returns the ids in the cluster containing id, in registration
// order
func (p *Partition) Members(id int) ([]int, error) {
	s, err := p.slot(id)
	if err != nil {
		return nil, err
	}
	return p.memberIDs(p.find(s)), nil
}

func (p *Partition) memberIDs(root int) []int {
	slots := append([]int(nil), p.members[root]...)
	sort.Ints(slots)
	ids := make([]int, len(slots))
	for i, s := range slots {
		ids[i] = p.ids[s]
	}
	return ids
}

// Union merges the clusters of a and b. It returns false without
// changing anything when they already share a cluster.
func (p *Partition) Union(a, b int) (bool, error) {
	sa, err := p.slot(a)
	if err != nil {
		return false, err
	}
	sb, err := p.slot(b)
	if err != nil {
		return false, err
	}

	ra, rb := p.find(sa), p.find(sb)
	if ra == rb {
		return false, nil
	}
	if p.size[ra] < p.size[rb] {
		ra, rb = rb, ra
	}

	p.parent[rb] = ra
	p.size[ra] += p.size[rb]
	p.members[ra] = append(p.members[ra], p.members[rb]...)
	p.members[rb] = nil
	if p.first[rb] < p.first[ra] {
		p.first[ra] = p.first[rb]
	}
	return true, nil
}

// Clusters returns every cluster as canonical id -> member ids
func (p *Partition) Clusters() map[int][]int {
	out := make(map[int][]int)
	for s := range p.ids {
		if p.find(s) != s {
			continue
		}
		out[p.ids[p.first[s]]] = p.memberIDs(s)
	}
	return out
}

// Roots returns the canonical ids of all clusters in registration order
// of their first member
func (p *Partition) Roots() []int {
	var firsts []int
	for s := range p.ids {
		if p.find(s) == s {
			firsts = append(firsts, p.first[s])
		}
	}
	sort.Ints(firsts)
	ids := make([]int, len(firsts))
	for i, s := range firsts {
		ids[i] = p.ids[s]
	}
	return ids
}
