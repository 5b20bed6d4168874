/*
	Package pipeline implements the graph-preparation batch operations: merging parallel
	edges, tabulating weighted node degrees, pruning a graph by degree weight, and
	combining several graphs into one.  Each operation makes a fixed number of
	sequential passes over its inputs and holds one entry per distinct edge or node in
	memory.
*/
package pipeline

import (
	"errors"

	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/stream"
)

// Options are the settings shared by all operations.
type Options struct {
	// Output sets the codec for every file an operation writes.
	Output stream.Options

	// ProgressInterval is the number of records between progress log lines.
	ProgressInterval int
}

// DefaultOptions writes gzip (or by extension) and reports every million records.
func DefaultOptions() Options {
	return Options{ProgressInterval: gprep.DefaultProgressInterval}
}

// locate attaches the reader's position and raw line to a format error.
func locate(r *stream.Reader, line string, err error) error {
	var fe *gprep.FormatError
	if errors.As(err, &fe) {
		located := fe.WithPosition(r.Name(), r.LineNumber())
		located.Text = line
		return located
	}
	return err
}

// scanEdges streams every edge record of a file through fn, skipping blank lines and
// lines that only hold endpoints.  It returns the number of records handed to fn and
// the number of skipped lines.
func scanEdges(path string, p *gprep.Progress, fn func(line string, rec gprep.EdgeRecord) error) (records, skipped int, err error) {
	r, err := stream.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	for r.Next() {
		line := r.Text()
		rec, err := gprep.ParseEdgeLine(line)
		if err != nil {
			if gprep.IsBlank(err) {
				skipped++
				continue
			}
			return records, skipped, locate(r, line, err)
		}
		if err := fn(line, rec); err != nil {
			return records, skipped, locate(r, line, err)
		}
		records++
		p.Incr()
	}
	return records, skipped, r.Err()
}

// writeEdges writes the accumulated edges in ascending key order.
func writeEdges(w *stream.Writer, acc *EdgeAccumulator, p *gprep.Progress) error {
	buf := make([]byte, 0, 64)
	var err error
	acc.Ascend(func(rec gprep.EdgeRecord) bool {
		buf = gprep.AppendEdgeLine(buf[:0], rec)
		if _, err = w.Write(buf); err != nil {
			return false
		}
		p.Incr()
		return true
	})
	return err
}
