package pipeline

import (
	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/stream"
)

// DegreeStats summarizes a NodeDegree run.
type DegreeStats struct {
	Edges   int // edge records parsed
	Skipped int // blank or endpoint-only lines
	Nodes   int // distinct node ids seen as endpoints
	Filled  int // zero records written for ids never seen
	Written int // degree records written
}

// TabulateDegrees reads every edge of path and returns the weighted in- and out-degree
// of each endpoint.  Both tabulators end up with the same node ids.
func TabulateDegrees(path string, opts Options) (in, out *DegreeTabulator, stats DegreeStats, err error) {
	in, out = NewDegreeTabulator(), NewDegreeTabulator()
	p := gprep.NewProgress("node_degree: reading "+path, opts.ProgressInterval)
	stats.Edges, stats.Skipped, err = scanEdges(path, p, func(_ string, rec gprep.EdgeRecord) error {
		src, dst := rec.Key.Src, rec.Key.Dst
		in.Ensure(src)
		out.Ensure(dst)
		w := rec.Attrs.Weight()
		out.Add(src, w)
		in.Add(dst, w)
		return nil
	})
	if err != nil {
		return nil, nil, stats, err
	}
	p.Done()
	stats.Nodes = in.Len()
	return in, out, stats, nil
}

// NodeDegree writes "<id> <in weight> <out weight>" for every node id from 0 through
// the largest id seen in the edge file src.
func NodeDegree(src, dst string, opts Options) (DegreeStats, error) {
	tlog := gprep.NewTimeLog()
	in, out, stats, err := TabulateDegrees(src, opts)
	if err != nil {
		return stats, err
	}

	err = stream.WithWriter(dst, opts.Output, func(w *stream.Writer) error {
		wp := gprep.NewProgress("node_degree: writing "+dst, opts.ProgressInterval)
		buf := make([]byte, 0, 48)
		filled, err := EmitDegrees(in, out, func(rec gprep.DegreeRecord) error {
			buf = gprep.AppendDegreeLine(buf[:0], rec)
			if _, err := w.Write(buf); err != nil {
				return err
			}
			wp.Incr()
			return nil
		})
		stats.Filled = filled
		stats.Written = wp.Done()
		return err
	})
	if err != nil {
		return stats, err
	}
	tlog.Infof("node_degree: wrote %d nodes (%d never seen as endpoints) to %s", stats.Written, stats.Filled, dst)
	return stats, nil
}
