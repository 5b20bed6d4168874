package pipeline

import (
	"github.com/dustin/go-humanize"

	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/stream"
)

// KeepSet is the set of node ids that survive pruning.
type KeepSet map[int64]struct{}

// Has returns true if the node id is kept.
func (ks KeepSet) Has(id int64) bool {
	_, found := ks[id]
	return found
}

// KeepsEdge returns true only if both endpoints are kept.
func (ks KeepSet) KeepsEdge(key gprep.EdgeKey) bool {
	return ks.Has(key.Src) && ks.Has(key.Dst)
}

// BuildKeepSet reads a degree file and keeps every node whose in plus out weight is
// strictly greater than threshold.  Every line must hold three integers.
func BuildKeepSet(path string, threshold int64, opts Options) (KeepSet, int, error) {
	r, err := stream.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	keep := make(KeepSet)
	p := gprep.NewProgress("prune_graph: reading node degree file "+path, opts.ProgressInterval)
	for r.Next() {
		rec, err := gprep.ParseDegreeLine(r.Text())
		if err != nil {
			return nil, p.Count(), r.Locate(err)
		}
		if rec.Total() > threshold {
			keep[rec.ID] = struct{}{}
		}
		p.Incr()
	}
	if err := r.Err(); err != nil {
		return nil, p.Count(), err
	}
	return keep, p.Done(), nil
}

// PruneConfig names the files and threshold for a PruneGraph run.
type PruneConfig struct {
	NodeFile    string
	EdgeFile    string
	DegreeFile  string
	OutNodeFile string
	OutEdgeFile string
	Threshold   int64
}

// PruneStats summarizes a PruneGraph run.
type PruneStats struct {
	DegreeRecords int
	KeepSetSize   int

	NodesKept     int
	NodesTotal    int
	NodesUnparsed int // node lines without a leading id, always dropped

	EdgesKept    int
	EdgesTotal   int
	EdgesSkipped int // blank or endpoint-only lines
}

// PruneGraph drops nodes whose total degree weight is at or below the threshold and
// every edge with a dropped endpoint.  Kept node and edge lines are copied unchanged.
func PruneGraph(cfg PruneConfig, opts Options) (PruneStats, error) {
	var stats PruneStats
	tlog := gprep.NewTimeLog()

	keep, n, err := BuildKeepSet(cfg.DegreeFile, cfg.Threshold, opts)
	stats.DegreeRecords = n
	if err != nil {
		return stats, err
	}
	stats.KeepSetSize = len(keep)
	gprep.Infof("prune_graph: keeping %s of %s nodes with total weight > %d\n",
		humanize.Comma(int64(len(keep))), humanize.Comma(int64(n)), cfg.Threshold)

	if err := pruneNodes(cfg, keep, opts, &stats); err != nil {
		return stats, err
	}
	gprep.Infof("Kept nodes : %d / %d\n", stats.NodesKept, stats.NodesTotal)

	if err := pruneEdges(cfg, keep, opts, &stats); err != nil {
		return stats, err
	}
	gprep.Infof("Kept edges: %d / %d\n", stats.EdgesKept, stats.EdgesTotal)

	tlog.Infof("prune_graph: wrote %s and %s", cfg.OutNodeFile, cfg.OutEdgeFile)
	return stats, nil
}

func pruneNodes(cfg PruneConfig, keep KeepSet, opts Options, stats *PruneStats) error {
	r, err := stream.Open(cfg.NodeFile)
	if err != nil {
		return err
	}
	defer r.Close()

	return stream.WithWriter(cfg.OutNodeFile, opts.Output, func(w *stream.Writer) error {
		p := gprep.NewProgress("prune_graph: pruning nodes", opts.ProgressInterval)
		for r.Next() {
			line := r.Text()
			stats.NodesTotal++
			p.Incr()
			id, ok := gprep.ParseNodeID(line)
			if !ok {
				stats.NodesUnparsed++
				gprep.Debugf("dropping node line %d without id: %q\n", r.LineNumber(), line)
				continue
			}
			if !keep.Has(id) {
				continue
			}
			if err := w.WriteLine(line); err != nil {
				return err
			}
			stats.NodesKept++
		}
		p.Done()
		return r.Err()
	})
}

func pruneEdges(cfg PruneConfig, keep KeepSet, opts Options, stats *PruneStats) error {
	return stream.WithWriter(cfg.OutEdgeFile, opts.Output, func(w *stream.Writer) error {
		p := gprep.NewProgress("prune_graph: pruning edges", opts.ProgressInterval)
		var err error
		stats.EdgesTotal, stats.EdgesSkipped, err = scanEdges(cfg.EdgeFile, p, func(line string, rec gprep.EdgeRecord) error {
			if !keep.KeepsEdge(rec.Key) {
				return nil
			}
			stats.EdgesKept++
			return w.WriteLine(line)
		})
		if err != nil {
			return err
		}
		p.Done()
		return nil
	})
}
