/*
	This file supports parsing and formatting of the line-oriented record formats:

	edge:    "<src> <dest> <a0> [<a1> <a2>]"
	degree:  "<id> <in weight> <out weight>"
	node:    "<id> ..." where anything after the id is opaque
*/

package gprep

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxAttributes is the largest attribute vector an edge may carry.
const MaxAttributes = 3

// Attributes is the integer payload of an edge.  It is either a single value or
// a triple; the zero value has no arity and is not a valid payload.
type Attributes struct {
	arity uint8
	val   [MaxAttributes]int64
}

// OneAttr returns a single-value attribute vector.
func OneAttr(a int64) Attributes {
	return Attributes{arity: 1, val: [MaxAttributes]int64{a}}
}

// ThreeAttrs returns a three-value attribute vector.
func ThreeAttrs(a, b, c int64) Attributes {
	return Attributes{arity: 3, val: [MaxAttributes]int64{a, b, c}}
}

// Arity returns 1 or 3 for a valid vector, 0 for the zero value.
func (a Attributes) Arity() int {
	return int(a.arity)
}

// Values returns a copy of the attribute values.
func (a Attributes) Values() []int64 {
	out := make([]int64, a.arity)
	copy(out, a.val[:a.arity])
	return out
}

// Weight is the scalar weight used for degree computation: the sum of all values.
func (a Attributes) Weight() int64 {
	var sum int64
	for i := uint8(0); i < a.arity; i++ {
		sum += a.val[i]
	}
	return sum
}

// Add returns the element-wise sum of two vectors.  Both must have the same arity.
// Sums wrap on overflow.
func (a Attributes) Add(b Attributes) (Attributes, error) {
	if a.arity != b.arity {
		return a, fmt.Errorf("attributes on edge are different dimension (%d vs %d)", a.arity, b.arity)
	}
	for i := uint8(0); i < a.arity; i++ {
		a.val[i] += b.val[i]
	}
	return a, nil
}

func (a Attributes) String() string {
	return strings.TrimSpace(string(a.appendTo(nil)))
}

// appendTo writes each value followed by a single space.
func (a Attributes) appendTo(dst []byte) []byte {
	for i := uint8(0); i < a.arity; i++ {
		dst = strconv.AppendInt(dst, a.val[i], 10)
		dst = append(dst, ' ')
	}
	return dst
}

// EdgeKey identifies a logical edge.  Keys are totally ordered by source then destination.
type EdgeKey struct {
	Src int64
	Dst int64
}

// Less returns true if k sorts before other.
func (k EdgeKey) Less(other EdgeKey) bool {
	if k.Src != other.Src {
		return k.Src < other.Src
	}
	return k.Dst < other.Dst
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.Src, k.Dst)
}

// EdgeRecord is a single parsed edge line.
type EdgeRecord struct {
	Key   EdgeKey
	Attrs Attributes
}

// NewEdge returns an edge record for the given endpoints and attributes.
func NewEdge(src, dst int64, attrs Attributes) EdgeRecord {
	return EdgeRecord{Key: EdgeKey{src, dst}, Attrs: attrs}
}

// scanInts parses up to len(dst) leading whitespace-separated integers the way
// "%d %d ..." conversions do: each value is an optional sign and the digits after it.
// Scanning stops at a field with no leading digits, or right after a value that is
// followed by anything other than whitespace.  It returns the number parsed.
func scanInts(line string, dst []int64) int {
	n := 0
	i := 0
	for n < len(dst) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		j := i
		if j < len(line) && (line[j] == '-' || line[j] == '+') {
			j++
		}
		digits := j
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			j++
		}
		if j == digits {
			break
		}
		v, err := strconv.ParseInt(line[i:j], 10, 64)
		if err != nil {
			break
		}
		dst[n] = v
		n++
		i = j
		if i < len(line) && !isSpace(line[i]) {
			break
		}
	}
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// ParseEdgeLine parses "<src> <dest> <a0> [<a1> <a2>]".  Lines without integers and
// lines with only the two endpoints return ErrBlankLine.  Any other count of leading
// integers besides 3 or 5 is a *FormatError.
func ParseEdgeLine(line string) (EdgeRecord, error) {
	var v [2 + MaxAttributes]int64
	switch n := scanInts(line, v[:]); n {
	case 0, 2:
		return EdgeRecord{}, ErrBlankLine
	case 3:
		return NewEdge(v[0], v[1], OneAttr(v[2])), nil
	case 5:
		return NewEdge(v[0], v[1], ThreeAttrs(v[2], v[3], v[4])), nil
	default:
		return EdgeRecord{}, FormatErrorf(line, "edge has %d fields, expected 3 or 5", n)
	}
}

// AppendEdgeLine appends the formatted edge line, including trailing newline, to dst.
func AppendEdgeLine(dst []byte, rec EdgeRecord) []byte {
	dst = strconv.AppendInt(dst, rec.Key.Src, 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, rec.Key.Dst, 10)
	dst = append(dst, ' ')
	dst = rec.Attrs.appendTo(dst)
	return append(dst, '\n')
}

// FormatEdgeLine returns "<src> <dest> <a0> [<a1> <a2>] \n".  Each attribute is
// followed by a space, which keeps output identical to earlier tooling.
func FormatEdgeLine(rec EdgeRecord) string {
	return string(AppendEdgeLine(make([]byte, 0, 48), rec))
}

// DegreeRecord is the weighted in- and out-degree of a node.
type DegreeRecord struct {
	ID  int64
	In  int64
	Out int64
}

// Total returns the sum of in and out weights.
func (r DegreeRecord) Total() int64 {
	return r.In + r.Out
}

// ParseDegreeLine parses "<id> <in> <out>".  All three integers are required.
func ParseDegreeLine(line string) (DegreeRecord, error) {
	var v [3]int64
	if n := scanInts(line, v[:]); n != 3 {
		return DegreeRecord{}, FormatErrorf(line, "corrupted node degree line, parsed %d of 3 fields", n)
	}
	return DegreeRecord{ID: v[0], In: v[1], Out: v[2]}, nil
}

// AppendDegreeLine appends the formatted degree line, including trailing newline, to dst.
func AppendDegreeLine(dst []byte, rec DegreeRecord) []byte {
	dst = strconv.AppendInt(dst, rec.ID, 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, rec.In, 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, rec.Out, 10)
	return append(dst, '\n')
}

// FormatDegreeLine returns "<id> <in> <out>\n".
func FormatDegreeLine(rec DegreeRecord) string {
	return string(AppendDegreeLine(make([]byte, 0, 32), rec))
}

// ParseNodeID returns the leading integer id of a node line.
func ParseNodeID(line string) (int64, bool) {
	var v [1]int64
	if scanInts(line, v[:]) != 1 {
		return 0, false
	}
	return v[0], true
}

// NodeKey splits a node line of the form "<id> <key> ..." into its id and key token.
func NodeKey(line string) (id int64, key string, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, "", FormatErrorf(line, "node line needs an id and a key")
	}
	id, err = strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, "", FormatErrorf(line, "bad node id %q", fields[0])
	}
	return id, fields[1], nil
}
