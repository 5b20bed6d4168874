package pipeline

import (
	"iter"

	"github.com/google/btree"
)

type nodeWeight struct {
	id     int64
	weight int64
}

func lessNodeWeight(a, b nodeWeight) bool {
	return a.id < b.id
}

// DegreeTabulator accumulates a scalar weight per node id and iterates in ascending
// id order.
type DegreeTabulator struct {
	tree *btree.BTreeG[nodeWeight]
}

// NewDegreeTabulator returns an empty tabulator.
func NewDegreeTabulator() *DegreeTabulator {
	return &DegreeTabulator{tree: btree.NewG(btreeDegree, lessNodeWeight)}
}

// Ensure adds the node with zero weight if it is not present.
func (t *DegreeTabulator) Ensure(id int64) {
	if !t.tree.Has(nodeWeight{id: id}) {
		t.tree.ReplaceOrInsert(nodeWeight{id: id})
	}
}

// Add adds w to the node's weight, creating the node if needed.
func (t *DegreeTabulator) Add(id int64, w int64) {
	entry, _ := t.tree.Get(nodeWeight{id: id})
	entry.id = id
	entry.weight += w
	t.tree.ReplaceOrInsert(entry)
}

// Get returns the node's weight.
func (t *DegreeTabulator) Get(id int64) (int64, bool) {
	entry, found := t.tree.Get(nodeWeight{id: id})
	return entry.weight, found
}

// Len returns the number of nodes.
func (t *DegreeTabulator) Len() int {
	return t.tree.Len()
}

// All iterates (id, weight) pairs in ascending id order.
func (t *DegreeTabulator) All() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		t.tree.Ascend(func(entry nodeWeight) bool {
			return yield(entry.id, entry.weight)
		})
	}
}

// Sum returns the total weight over all nodes.
func (t *DegreeTabulator) Sum() int64 {
	var sum int64
	for _, w := range t.All() {
		sum += w
	}
	return sum
}
