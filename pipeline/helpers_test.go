package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/stream"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.ProgressInterval = 2
	return opts
}

// writeLines writes a gzip compressed test file and returns its path.
func writeLines(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := stream.WithWriter(path, stream.Options{}, func(w *stream.Writer) error {
		for _, line := range lines {
			if err := w.WriteLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unable to write %s: %v", path, err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	r, err := stream.Open(path)
	if err != nil {
		t.Fatalf("unable to open %s: %v", path, err)
	}
	defer r.Close()
	var lines []string
	for r.Next() {
		lines = append(lines, r.Text())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("error reading %s: %v", path, err)
	}
	return lines
}

func readEdges(t *testing.T, path string) []gprep.EdgeRecord {
	t.Helper()
	var recs []gprep.EdgeRecord
	for _, line := range readLines(t, path) {
		rec, err := gprep.ParseEdgeLine(line)
		if err != nil {
			t.Fatalf("bad edge line %q in %s: %v", line, path, err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func readDegrees(t *testing.T, path string) []gprep.DegreeRecord {
	t.Helper()
	var recs []gprep.DegreeRecord
	for _, line := range readLines(t, path) {
		rec, err := gprep.ParseDegreeLine(line)
		if err != nil {
			t.Fatalf("bad degree line %q in %s: %v", line, path, err)
		}
		recs = append(recs, rec)
	}
	return recs
}
