package pipeline

import (
	"errors"
	"math/rand"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/janelia-flyem/gprep/gprep"
)

func TestAccumulator(t *testing.T) {
	acc := NewEdgeAccumulator()
	for _, rec := range []gprep.EdgeRecord{
		gprep.NewEdge(3, 4, gprep.ThreeAttrs(1, 2, 3)),
		gprep.NewEdge(1, 2, gprep.OneAttr(5)),
		gprep.NewEdge(1, 2, gprep.OneAttr(3)),
		gprep.NewEdge(1, 1, gprep.OneAttr(0)),
	} {
		if err := acc.Add(rec); err != nil {
			t.Fatalf("unexpected error adding %v: %v", rec, err)
		}
	}
	if acc.Len() != 3 {
		t.Fatalf("expected 3 keys, got %d", acc.Len())
	}
	attrs, found := acc.Get(gprep.EdgeKey{Src: 1, Dst: 2})
	if !found || attrs != gprep.OneAttr(8) {
		t.Errorf("expected (1,2) -> 8, got %v (found %t)", attrs, found)
	}

	var keys []gprep.EdgeKey
	acc.Ascend(func(rec gprep.EdgeRecord) bool {
		keys = append(keys, rec.Key)
		return true
	})
	expected := []gprep.EdgeKey{{Src: 1, Dst: 1}, {Src: 1, Dst: 2}, {Src: 3, Dst: 4}}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("expected keys %v, got %v", expected, keys)
	}

	// Stop early.
	n := 0
	acc.Ascend(func(gprep.EdgeRecord) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("expected iteration to stop after 1 edge, got %d", n)
	}
}

func TestAccumulatorArityMismatch(t *testing.T) {
	acc := NewEdgeAccumulator()
	if err := acc.Add(gprep.NewEdge(1, 2, gprep.OneAttr(5))); err != nil {
		t.Fatal(err)
	}
	err := acc.Add(gprep.NewEdge(1, 2, gprep.ThreeAttrs(1, 1, 1)))
	var fe *gprep.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected format error on arity mismatch, got %v", err)
	}
	attrs, _ := acc.Get(gprep.EdgeKey{Src: 1, Dst: 2})
	if attrs != gprep.OneAttr(5) {
		t.Errorf("stored attributes changed after failed merge: %v", attrs)
	}
}

func TestMergeEdges(t *testing.T) {
	dir := t.TempDir()
	src := writeLines(t, dir, "edges.gz",
		"3 4 1 2 3",
		"1 2 5",
		"",
		"1 2",
		"1 2 3",
	)
	dst := filepath.Join(dir, "merged.gz")
	stats, err := MergeEdges(src, dst, testOptions())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	expected := []string{"1 2 8 ", "3 4 1 2 3 "}
	if got := readLines(t, dst); !slices.Equal(got, expected) {
		t.Errorf("expected merged output %q, got %q", expected, got)
	}
	if stats.Read != 3 || stats.Skipped != 2 || stats.Written != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestMergeIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := writeLines(t, dir, "edges.gz",
		"5 1 1", "0 9 2 0 1", "5 1 4", "0 9 1 1 1", "2 2 7", "0 3 1",
	)
	once := filepath.Join(dir, "once.gz")
	twice := filepath.Join(dir, "twice.gz")
	if _, err := MergeEdges(src, once, testOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := MergeEdges(once, twice, testOptions()); err != nil {
		t.Fatal(err)
	}
	first, second := readLines(t, once), readLines(t, twice)
	if !slices.Equal(first, second) {
		t.Errorf("re-merge changed output:\n%q\n%q", first, second)
	}
	expected := []string{"0 3 1 ", "0 9 3 1 2 ", "2 2 7 ", "5 1 5 "}
	if !slices.Equal(first, expected) {
		t.Errorf("expected %q, got %q", expected, first)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	var lines []string
	for src := 0; src < 20; src++ {
		for dst := 0; dst < 5; dst++ {
			for k := 0; k <= (src+dst)%3; k++ {
				lines = append(lines, strings.Join([]string{strconv.Itoa(src), strconv.Itoa(dst), strconv.Itoa(k + 1), "1", strconv.Itoa(dst)}, " "))
			}
		}
	}
	dir := t.TempDir()
	var outputs [][]string
	rnd := rand.New(rand.NewSource(42))
	for trial := 0; trial < 3; trial++ {
		shuffled := slices.Clone(lines)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		src := writeLines(t, dir, "in"+strconv.Itoa(trial)+".gz", shuffled...)
		dst := filepath.Join(dir, "out"+strconv.Itoa(trial)+".gz")
		stats, err := MergeEdges(src, dst, testOptions())
		if err != nil {
			t.Fatal(err)
		}
		if stats.Written != 100 {
			t.Fatalf("expected 100 distinct edges, got %d", stats.Written)
		}
		outputs = append(outputs, readLines(t, dst))
	}
	for i := 1; i < len(outputs); i++ {
		if !slices.Equal(outputs[0], outputs[i]) {
			t.Fatalf("merge output depends on input order")
		}
	}
	recs := readEdges(t, filepath.Join(dir, "out0.gz"))
	for i := 1; i < len(recs); i++ {
		if !recs[i-1].Key.Less(recs[i].Key) {
			t.Fatalf("output not strictly ascending at %d: %v then %v", i, recs[i-1].Key, recs[i].Key)
		}
	}
}

func TestMergeFormatError(t *testing.T) {
	dir := t.TempDir()
	src := writeLines(t, dir, "edges.gz", "1 2 3", "1 2 3 4")
	_, err := MergeEdges(src, filepath.Join(dir, "out.gz"), testOptions())
	var fe *gprep.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected format error, got %v", err)
	}
	if fe.Line != 2 || fe.Text != "1 2 3 4" || fe.Source != src {
		t.Errorf("format error not located correctly: %+v", fe)
	}
	if gprep.ExitCode(err) != 1 {
		t.Errorf("expected exit code 1")
	}

	mixed := writeLines(t, dir, "mixed.gz", "1 2 3", "1 2 3 4 5")
	_, err = MergeEdges(mixed, filepath.Join(dir, "out2.gz"), testOptions())
	if !errors.As(err, &fe) || fe.Text != "1 2 3 4 5" || fe.Line != 2 {
		t.Fatalf("expected located format error on cross-arity merge, got %v", err)
	}
}

func TestMergeCommaSeparatedInput(t *testing.T) {
	dir := t.TempDir()
	src := writeLines(t, dir, "edges.gz", "1,2,5", "3,4,1")
	stats, err := MergeEdges(src, filepath.Join(dir, "out.gz"), testOptions())
	var fe *gprep.FormatError
	if !errors.As(err, &fe) || fe.Line != 1 || fe.Text != "1,2,5" {
		t.Fatalf("expected format error on line 1, got %v (stats %+v)", err, stats)
	}

	trailing := writeLines(t, dir, "trailing.gz", "1 2 5abc", "1 2 1")
	if _, err := MergeEdges(trailing, filepath.Join(dir, "out2.gz"), testOptions()); err != nil {
		t.Fatal(err)
	}
	if got := readLines(t, filepath.Join(dir, "out2.gz")); !slices.Equal(got, []string{"1 2 6 "}) {
		t.Errorf("expected leading digits of each field kept, got %q", got)
	}
}

func TestMergeMissingInput(t *testing.T) {
	dir := t.TempDir()
	if _, err := MergeEdges(filepath.Join(dir, "missing.gz"), filepath.Join(dir, "out.gz"), testOptions()); err == nil {
		t.Fatalf("expected error on missing input")
	}
}
