package stream

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Compression is the codec applied to a line-oriented stream.
type Compression uint8

const (
	// Auto chooses the codec from the file extension on write and from the
	// stream's magic bytes on read.
	Auto Compression = iota
	None
	Gzip
	Zstd
	Snappy
)

func (c Compression) String() string {
	switch c {
	case Auto:
		return "auto"
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("unknown compression (%d)", uint8(c))
	}
}

// ParseCompression converts a user-supplied codec name.  An empty string is Auto.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "none", "raw", "txt":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "snappy", "sz":
		return Snappy, nil
	default:
		return Auto, fmt.Errorf("unknown compression type %q, expected gzip, zstd, snappy or none", s)
	}
}

// CompressionFromPath picks the codec for a file name by its extension.  Files without
// a recognized extension get gzip, the format all earlier graph tooling wrote.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".sz", ".snappy":
		return Snappy
	case ".txt":
		return None
	default:
		return Gzip
	}
}

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// magicLen is the number of leading bytes needed to recognize any codec.
const magicLen = 10

// sniff returns the codec whose magic bytes begin the header, or None.
func sniff(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, snappyMagic):
		return Snappy
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	default:
		return None
	}
}
