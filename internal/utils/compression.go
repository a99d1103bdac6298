package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies the compression of a database archive
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionXz
)

// String returns the string representation of Compression
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionXz:
		return "xz"
	default:
		return "none"
	}
}

// Magic bytes for compression detection
var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// magicLen is the number of header bytes needed to detect any compression
const magicLen = 6

// DetectCompression determines the compression format from the first bytes of a file
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXz
	default:
		return CompressionNone
	}
}

// NewDecompressReader wraps r in the decompressor matching its magic bytes.
// Data without a known magic is passed through unchanged. Closing the
// returned reader releases the decompressor but not r.
func NewDecompressReader(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)

	header, err := br.Peek(magicLen)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, fmt.Errorf("failed to read header: %w", err)
	}

	c := DetectCompression(header)
	switch c {
	case CompressionGzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gr, c, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	case CompressionXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(xr), c, nil
	default:
		return io.NopCloser(br), c, nil
	}
}
