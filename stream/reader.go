package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/janelia-flyem/gprep/gprep"
)

const (
	// MaxLineSize is the longest line a Reader accepts.
	MaxLineSize = 64 << 20

	readBufferSize = 1 << 20
)

// Reader returns the decompressed lines of a file one at a time.
type Reader struct {
	name    string
	codec   Compression
	f       *os.File
	closer  func() error
	scanner *bufio.Scanner
	line    int
}

// Open opens a file for line reading.  The codec is detected from the leading bytes,
// so gzip, zstd, snappy-framed and plain text files can all be read.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	r, err := newReader(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	gprep.Debugf("Reading %s (%s)\n", path, r.codec)
	return r, nil
}

func newReader(name string, f *os.File) (*Reader, error) {
	br := bufio.NewReaderSize(f, readBufferSize)
	header, err := br.Peek(magicLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to read header of %q: %w", name, err)
	}
	r := &Reader{name: name, codec: sniff(header), f: f}

	var in io.Reader
	switch r.codec {
	case None:
		in = br
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("bad gzip stream in %q: %w", name, err)
		}
		in, r.closer = gr, gr.Close
	case Zstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("bad zstd stream in %q: %w", name, err)
		}
		in = zr
		r.closer = func() error {
			zr.Close()
			return nil
		}
	case Snappy:
		in = snappy.NewReader(br)
	default:
		return nil, fmt.Errorf("unknown compression type %s for %q", r.codec, name)
	}
	r.scanner = bufio.NewScanner(in)
	r.scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	return r, nil
}

// Name returns the file name given to Open.
func (r *Reader) Name() string {
	return r.name
}

// Compression returns the detected codec.
func (r *Reader) Compression() Compression {
	return r.codec
}

// Next advances to the next line, returning false at the end of the stream or on error.
func (r *Reader) Next() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	return true
}

// Text returns the current line without its line ending.
func (r *Reader) Text() string {
	return r.scanner.Text()
}

// LineNumber returns the 1-based number of the current line.
func (r *Reader) LineNumber() int {
	return r.line
}

// Err returns the first non-EOF error hit while reading.
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("error reading %q after line %d: %w", r.name, r.line, err)
	}
	return nil
}

// Locate attaches this reader's file name and current line number to a format error.
// Other errors are returned unchanged.
func (r *Reader) Locate(err error) error {
	var fe *gprep.FormatError
	if errors.As(err, &fe) {
		return fe.WithPosition(r.name, r.line)
	}
	return err
}

// Close releases the decompressor and the file.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	var err error
	if r.closer != nil {
		err = r.closer()
	}
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	r.f = nil
	return err
}
