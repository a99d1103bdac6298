package scanner

import (
	"io"
	"os"

	"github.com/ralt/pacdb/internal/utils"
)

// DetectCompression determines the compression of a file from its magic bytes
func DetectCompression(path string) (utils.Compression, error) {
	// Open file
	f, err := os.Open(path)
	if err != nil {
		return utils.CompressionNone, err
	}
	defer f.Close()

	// The longest magic is six bytes
	header := make([]byte, 6)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return utils.CompressionNone, err
	}

	return utils.DetectCompression(header[:n]), nil
}
