package scanner

import (
	"context"

	"github.com/ralt/pacdb/internal/utils"
)

// FoundDatabase represents a sync database file found during scanning
type FoundDatabase struct {
	Name        string
	Path        string
	Size        int64
	Compression utils.Compression
}

// Scanner interface for discovering sync databases
type Scanner interface {
	// Scan lists the sync databases below a pacman database directory
	Scan(ctx context.Context, dir string) ([]FoundDatabase, error)

	// DetectCompression determines the compression of a database file
	DetectCompression(path string) (utils.Compression, error)
}
