package pipeline

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/stream"
)

// ErrOutputExists is returned by CombineGraphs when an output file is already present.
var ErrOutputExists = errors.New("output file already exists")

// GraphFiles is one node file and its edge file.
type GraphFiles struct {
	Nodes string
	Edges string
}

// ReadGraphList reads a list file with one "<node file> <edge file>" pair per line.
// Blank lines are skipped.
func ReadGraphList(path string) ([]GraphFiles, error) {
	r, err := stream.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var graphs []GraphFiles
	for r.Next() {
		fields := strings.Fields(r.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, r.Locate(gprep.FormatErrorf(r.Text(), "expected a node file and an edge file"))
		}
		graphs = append(graphs, GraphFiles{Nodes: fields[0], Edges: fields[1]})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if len(graphs) == 0 {
		return nil, fmt.Errorf("no graphs listed in %q", path)
	}
	return graphs, nil
}

// CombineConfig names the inputs and outputs for a CombineGraphs run.
type CombineConfig struct {
	Graphs      []GraphFiles
	OutNodeFile string
	OutEdgeFile string

	// SkipMerge writes relabeled edges without combining duplicates.
	SkipMerge bool
}

// CombineStats summarizes a CombineGraphs run.
type CombineStats struct {
	Graphs       int
	Nodes        int // distinct node keys written
	EdgesRead    int
	EdgesSkipped int
	EdgesWritten int
}

// combiner assigns one id per distinct node key across all graphs.
type combiner struct {
	opts   Options
	ids    map[string]int64
	nextID int64
	stats  CombineStats
}

// CombineGraphs merges several graphs whose nodes are identified by a key token.  The
// first graph keeps its node ids; nodes of later graphs reuse the id of an already seen
// key or get the next free id, and their edges are relabeled accordingly.  Nodes are
// written as "<id> <key>" in id order and edges are merged as in MergeEdges unless
// SkipMerge is set.
func CombineGraphs(cfg CombineConfig, opts Options) (CombineStats, error) {
	for _, path := range []string{cfg.OutNodeFile, cfg.OutEdgeFile} {
		if _, err := os.Stat(path); err == nil {
			return CombineStats{}, fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
	}
	if len(cfg.Graphs) == 0 {
		return CombineStats{}, fmt.Errorf("no graphs to combine")
	}
	tlog := gprep.NewTimeLog()
	c := &combiner{opts: opts, ids: make(map[string]int64)}

	var err error
	if cfg.SkipMerge {
		err = stream.WithWriter(cfg.OutEdgeFile, opts.Output, func(w *stream.Writer) error {
			buf := make([]byte, 0, 64)
			err := c.loadGraphs(cfg.Graphs, func(rec gprep.EdgeRecord) error {
				buf = gprep.AppendEdgeLine(buf[:0], rec)
				_, err := w.Write(buf)
				return err
			})
			c.stats.EdgesWritten = w.Lines()
			return err
		})
		if err == nil {
			gprep.Warningf("Skipped edge merge step.  Duplicates may exist in %s\n", cfg.OutEdgeFile)
		}
	} else {
		acc := NewEdgeAccumulator()
		if err = c.loadGraphs(cfg.Graphs, acc.Add); err == nil {
			err = stream.WithWriter(cfg.OutEdgeFile, opts.Output, func(w *stream.Writer) error {
				p := gprep.NewProgress("combine_graphs: writing "+cfg.OutEdgeFile, opts.ProgressInterval)
				err := writeEdges(w, acc, p)
				c.stats.EdgesWritten = p.Done()
				return err
			})
		}
	}
	if err != nil {
		return c.stats, err
	}

	if err := c.writeNodes(cfg.OutNodeFile); err != nil {
		return c.stats, err
	}
	tlog.Infof("combine_graphs: combined %d graphs into %s nodes and %s edges", c.stats.Graphs,
		humanize.Comma(int64(c.stats.Nodes)), humanize.Comma(int64(c.stats.EdgesWritten)))
	return c.stats, nil
}

func (c *combiner) loadGraphs(graphs []GraphFiles, sink func(gprep.EdgeRecord) error) error {
	for i, g := range graphs {
		gprep.Infof("combine_graphs: merging %s %s\n", g.Nodes, g.Edges)
		before := len(c.ids)
		relabel, err := c.loadNodes(g.Nodes, i == 0)
		if err != nil {
			return err
		}
		gprep.Infof("combine_graphs: added %d new nodes\n", len(c.ids)-before)

		p := gprep.NewProgress("combine_graphs: reading "+g.Edges, c.opts.ProgressInterval)
		read, skipped, err := scanEdges(g.Edges, p, func(_ string, rec gprep.EdgeRecord) error {
			if relabel != nil {
				src, found := relabel[rec.Key.Src]
				if !found {
					return gprep.FormatErrorf("", "source node %d not in %s", rec.Key.Src, g.Nodes)
				}
				dst, found := relabel[rec.Key.Dst]
				if !found {
					return gprep.FormatErrorf("", "destination node %d not in %s", rec.Key.Dst, g.Nodes)
				}
				rec.Key = gprep.EdgeKey{Src: src, Dst: dst}
			}
			return sink(rec)
		})
		c.stats.EdgesRead += read
		c.stats.EdgesSkipped += skipped
		if err != nil {
			return err
		}
		p.Done()
		c.stats.Graphs++
	}
	return nil
}

// loadNodes reads a node file.  The first graph's ids are taken as is and a nil
// relabeling is returned.  For later graphs it returns the map from the file's ids to
// combined ids.
func (c *combiner) loadNodes(path string, first bool) (map[int64]int64, error) {
	r, err := stream.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var relabel map[int64]int64
	if !first {
		relabel = make(map[int64]int64)
	}
	for r.Next() {
		line := r.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, key, err := gprep.NodeKey(line)
		if err != nil {
			return nil, r.Locate(err)
		}
		if first {
			c.ids[key] = id
			if id >= c.nextID {
				c.nextID = id + 1
			}
			continue
		}
		combined, found := c.ids[key]
		if !found {
			combined = c.nextID
			c.ids[key] = combined
			c.nextID++
		}
		relabel[id] = combined
	}
	return relabel, r.Err()
}

func (c *combiner) writeNodes(path string) error {
	type node struct {
		id  int64
		key string
	}
	nodes := make([]node, 0, len(c.ids))
	for key, id := range c.ids {
		nodes = append(nodes, node{id, key})
	}
	c.ids = nil
	slices.SortFunc(nodes, func(a, b node) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return strings.Compare(a.key, b.key)
		}
	})
	return stream.WithWriter(path, c.opts.Output, func(w *stream.Writer) error {
		for _, n := range nodes {
			if err := w.WriteLine(fmt.Sprintf("%d %s", n.id, n.key)); err != nil {
				return err
			}
		}
		c.stats.Nodes = len(nodes)
		return nil
	})
}
