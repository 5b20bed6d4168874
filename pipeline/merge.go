package pipeline

import (
	"github.com/dustin/go-humanize"

	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/stream"
)

// MergeStats summarizes a MergeEdges run.
type MergeStats struct {
	Read    int // edge records parsed
	Skipped int // blank or endpoint-only lines
	Written int // distinct edges written
}

// MergeEdges reads every edge of src, sums the attribute vectors of edges sharing the
// same (source, destination) key, and writes one edge per key to dst in ascending key
// order.  Merging an already merged file reproduces it.
func MergeEdges(src, dst string, opts Options) (MergeStats, error) {
	var stats MergeStats
	tlog := gprep.NewTimeLog()

	acc := NewEdgeAccumulator()
	p := gprep.NewProgress("merge_edges: reading "+src, opts.ProgressInterval)
	var err error
	stats.Read, stats.Skipped, err = scanEdges(src, p, func(_ string, rec gprep.EdgeRecord) error {
		return acc.Add(rec)
	})
	if err != nil {
		return stats, err
	}
	p.Done()
	gprep.Infof("merge_edges: %s edges reduced to %s distinct keys\n",
		humanize.Comma(int64(stats.Read)), humanize.Comma(int64(acc.Len())))

	err = stream.WithWriter(dst, opts.Output, func(w *stream.Writer) error {
		wp := gprep.NewProgress("merge_edges: writing "+dst, opts.ProgressInterval)
		err := writeEdges(w, acc, wp)
		stats.Written = wp.Done()
		return err
	})
	if err != nil {
		return stats, err
	}
	tlog.Infof("merge_edges: wrote %d edges to %s", stats.Written, dst)
	return stats, nil
}
