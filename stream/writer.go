package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/janelia-flyem/gprep/gprep"
)

const writeBufferSize = 1 << 20

// Options sets how an output stream is compressed.
type Options struct {
	// Compression is the output codec.  Auto picks one from the file extension.
	Compression Compression

	// Level is the codec-specific level.  Zero uses the codec default and
	// snappy ignores it.
	Level int
}

// Writer compresses lines to a file.  A Writer must be closed to produce a valid
// compressed file: the codec trailer is only written by Close.
type Writer struct {
	name  string
	codec Compression
	f     *os.File
	enc   io.WriteCloser
	buf   *bufio.Writer
	lines int
	err   error
}

// Create truncates or creates the file and returns a Writer compressing into it.
func Create(path string, opts Options) (*Writer, error) {
	codec := opts.Compression
	if codec == Auto {
		codec = CompressionFromPath(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create %q: %w", path, err)
	}
	w := &Writer{name: path, codec: codec, f: f}
	var out io.Writer
	switch codec {
	case None:
		out = f
	case Gzip:
		level := gzip.DefaultCompression
		if opts.Level != 0 {
			level = opts.Level
		}
		gw, err := gzip.NewWriterLevel(f, level)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("bad gzip level for %q: %w", path, err)
		}
		w.enc, out = gw, gw
	case Zstd:
		zopts := []zstd.EOption{zstd.WithEncoderConcurrency(1)}
		if opts.Level != 0 {
			zopts = append(zopts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(opts.Level)))
		}
		zw, err := zstd.NewWriter(f, zopts...)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("unable to start zstd stream for %q: %w", path, err)
		}
		w.enc, out = zw, zw
	case Snappy:
		sw := snappy.NewBufferedWriter(f)
		w.enc, out = sw, sw
	default:
		f.Close()
		return nil, fmt.Errorf("can't compress to type %s for %q", codec, path)
	}
	w.buf = bufio.NewWriterSize(out, writeBufferSize)
	gprep.Debugf("Writing %s (%s)\n", path, codec)
	return w, nil
}

// Name returns the file name given to Create.
func (w *Writer) Name() string {
	return w.name
}

// Compression returns the codec in use.
func (w *Writer) Compression() Compression {
	return w.codec
}

// Lines returns the number of newline-terminated lines written so far.
func (w *Writer) Lines() int {
	return w.lines
}

// Write writes raw bytes.  Callers are responsible for line termination.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.buf.Write(p)
	w.lines += bytes.Count(p[:n], []byte{'\n'})
	if err != nil {
		w.err = fmt.Errorf("error writing %q: %w", w.name, err)
	}
	return n, w.err
}

// WriteString writes s as is.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// WriteLine writes s followed by a newline.
func (w *Writer) WriteLine(s string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.buf.WriteString(s); err != nil {
		w.err = fmt.Errorf("error writing %q: %w", w.name, err)
		return w.err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		w.err = fmt.Errorf("error writing %q: %w", w.name, err)
		return w.err
	}
	w.lines++
	return nil
}

// Close flushes buffered lines, writes the codec trailer, and closes the file.
// Every step is attempted even after a failure; the first error is returned.
// Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	var first error
	keep := func(err error) {
		if first == nil && err != nil {
			first = fmt.Errorf("error finalizing %q: %w", w.name, err)
		}
	}
	keep(w.buf.Flush())
	if w.enc != nil {
		keep(w.enc.Close())
	}
	keep(w.f.Close())
	w.f = nil
	if first == nil {
		first = w.err
	}
	if first == nil {
		gprep.Debugf("Closed %s after %d lines\n", w.name, w.lines)
	}
	return first
}

// WithWriter creates an output stream, hands it to fn, and always finalizes the stream
// afterwards, including when fn fails or panics.  Errors from fn and from finalizing
// are joined.
func WithWriter(path string, opts Options, fn func(*Writer) error) (err error) {
	w, err := Create(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		cerr := w.Close()
		if err != nil && cerr == w.err {
			cerr = nil // already reported by fn
		}
		err = errors.Join(err, cerr)
	}()
	return fn(w)
}
