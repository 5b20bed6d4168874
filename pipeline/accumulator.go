package pipeline

import (
	"github.com/google/btree"

	"github.com/janelia-flyem/gprep/gprep"
)

// btreeDegree is the branching factor for the in-memory ordered maps.
const btreeDegree = 32

type edgeEntry struct {
	key   gprep.EdgeKey
	attrs gprep.Attributes
}

func lessEdgeEntry(a, b edgeEntry) bool {
	return a.key.Less(b.key)
}

// EdgeAccumulator holds one summed attribute vector per distinct edge key and
// iterates them in ascending (source, destination) order.
type EdgeAccumulator struct {
	tree *btree.BTreeG[edgeEntry]
}

// NewEdgeAccumulator returns an empty accumulator.
func NewEdgeAccumulator() *EdgeAccumulator {
	return &EdgeAccumulator{tree: btree.NewG(btreeDegree, lessEdgeEntry)}
}

// Add stores the record's attributes for an unseen key or adds them element-wise into
// the stored vector.  A key must always be seen with the same attribute arity; a
// mismatch returns a *gprep.FormatError and leaves the stored vector unchanged.
func (acc *EdgeAccumulator) Add(rec gprep.EdgeRecord) error {
	entry := edgeEntry{key: rec.Key, attrs: rec.Attrs}
	if stored, found := acc.tree.Get(entry); found {
		sum, err := stored.attrs.Add(rec.Attrs)
		if err != nil {
			return gprep.FormatErrorf(gprep.FormatEdgeLine(rec), "edge %s: %v", rec.Key, err)
		}
		entry.attrs = sum
	}
	acc.tree.ReplaceOrInsert(entry)
	return nil
}

// Len returns the number of distinct edge keys.
func (acc *EdgeAccumulator) Len() int {
	return acc.tree.Len()
}

// Get returns the accumulated attributes for a key.
func (acc *EdgeAccumulator) Get(key gprep.EdgeKey) (gprep.Attributes, bool) {
	entry, found := acc.tree.Get(edgeEntry{key: key})
	return entry.attrs, found
}

// Ascend calls fn for each merged edge in ascending key order until fn returns false.
func (acc *EdgeAccumulator) Ascend(fn func(gprep.EdgeRecord) bool) {
	acc.tree.Ascend(func(entry edgeEntry) bool {
		return fn(gprep.EdgeRecord{Key: entry.key, Attrs: entry.attrs})
	})
}
