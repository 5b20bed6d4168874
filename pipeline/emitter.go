package pipeline

import (
	"fmt"
	"iter"

	"github.com/janelia-flyem/gprep/gprep"
)

// EmitDegrees walks the in- and out-degree tabulators in lock-step and calls emit once
// per node id from 0 through the largest id, in ascending order.  Ids missing from
// the tabulators get a zero record.  Both tabulators must hold exactly the same ids;
// any disagreement is a *gprep.InternalError.  It returns the number of zero records
// that were filled in.
func EmitDegrees(in, out *DegreeTabulator, emit func(gprep.DegreeRecord) error) (filled int, err error) {
	if in.Len() != out.Len() {
		return 0, &gprep.InternalError{
			Op:     "node_degree",
			Reason: fmt.Sprintf("in-degree has %d nodes, out-degree has %d", in.Len(), out.Len()),
		}
	}
	nextIn, stopIn := iter.Pull2(in.All())
	defer stopIn()
	nextOut, stopOut := iter.Pull2(out.All())
	defer stopOut()

	var next int64
	for {
		inID, inWeight, okIn := nextIn()
		outID, outWeight, okOut := nextOut()
		if !okIn || !okOut {
			if okIn != okOut {
				return filled, &gprep.InternalError{Op: "node_degree", Reason: "tabulators ended at different nodes"}
			}
			return filled, nil
		}
		if inID != outID {
			return filled, &gprep.InternalError{
				Op:     "node_degree",
				Reason: fmt.Sprintf("in-degree node %d paired with out-degree node %d", inID, outID),
			}
		}
		if inID < next {
			return filled, &gprep.InternalError{
				Op:     "node_degree",
				Reason: fmt.Sprintf("node %d is below next expected node %d", inID, next),
			}
		}
		for ; next < inID; next++ {
			if err := emit(gprep.DegreeRecord{ID: next}); err != nil {
				return filled, err
			}
			filled++
		}
		if err := emit(gprep.DegreeRecord{ID: inID, In: inWeight, Out: outWeight}); err != nil {
			return filled, err
		}
		next = inID + 1
	}
}
