package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/pacdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan lists the *.db files of dir/sync, sorted by name
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]FoundDatabase, error) {
	syncDir := filepath.Join(dir, "sync")

	entries, err := os.ReadDir(syncDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	// ReadDir returns entries sorted by filename
	var databases []FoundDatabase
	for _, entry := range entries {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Skip directories and anything that is not a database
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		path := filepath.Join(syncDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logrus.Warnf("Skipping %s: not a regular file", path)
			continue
		}

		c, err := s.DetectCompression(path)
		if err != nil {
			logrus.Warnf("Failed to detect compression for %s: %v", path, err)
			continue
		}

		logrus.Debugf("Found %s database: %s", c, path)

		databases = append(databases, FoundDatabase{
			Name:        strings.TrimSuffix(entry.Name(), ".db"),
			Path:        path,
			Size:        info.Size(),
			Compression: c,
		})
	}

	logrus.Debugf("Found %d databases in %s", len(databases), syncDir)
	return databases, nil
}

// DetectCompression determines the compression of a database file
func (s *FileSystemScanner) DetectCompression(path string) (utils.Compression, error) {
	return DetectCompression(path)
}
