// Package database resolves pacman sync databases and iterates over their packages.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/parser"
	"github.com/sirupsen/logrus"
)

// SyncDir is the subdirectory of the database directory holding sync databases
const SyncDir = "sync"

// Database is a resolved sync database file
type Database struct {
	name    string
	path    string
	builder *parser.Builder
}

// ResolvePath returns the database file a configuration points to
func ResolvePath(config *models.DatabaseConfig) string {
	if config.File != "" {
		return config.File
	}

	dir := config.Dir
	if dir == "" {
		dir = models.DefaultDBDir
	}
	return filepath.Join(dir, SyncDir, strings.ToLower(config.Name)+".db")
}

// Load resolves the database described by config and checks that it exists
func Load(config *models.DatabaseConfig) (*Database, error) {
	if config.File == "" && config.Name == "" {
		return nil, models.NewError(models.ErrInvalidConfig, "database name is required", nil)
	}

	path := ResolvePath(config)
	name := strings.ToLower(config.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".db")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, models.NewError(models.ErrDatabaseNotFound, name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, models.NewError(models.ErrDatabaseNotFound, name, fmt.Errorf("%s is not a regular file", path))
	}

	policy := parser.UnknownKeyError
	if config.IgnoreUnknown {
		policy = parser.UnknownKeyIgnore
	}

	logrus.Debugf("Resolved database %s: %s", name, path)

	return &Database{
		name:    name,
		path:    path,
		builder: parser.NewBuilder(policy),
	}, nil
}

// Name returns the database name
func (db *Database) Name() string {
	return db.name
}

// Path returns the database file path
func (db *Database) Path() string {
	return db.path
}

// Packages returns a new iterator over the packages of the database. Each
// call reads the file from the start.
func (db *Database) Packages() *Packages {
	return NewPackages(db.path, db.builder)
}

// Find returns the first package called name. Packages that fail to parse
// are skipped.
func (db *Database) Find(ctx context.Context, name string) (*models.Package, error) {
	return db.findBy(ctx, name, func(pkg *models.Package) bool {
		return pkg.Name == name
	})
}

// FindFile returns the package whose FILENAME is filename
func (db *Database) FindFile(ctx context.Context, filename string) (*models.Package, error) {
	return db.findBy(ctx, filename, func(pkg *models.Package) bool {
		return pkg.Filename == filename
	})
}

func (db *Database) findBy(ctx context.Context, subject string, match func(*models.Package) bool) (*models.Package, error) {
	pkgs := db.Packages()
	defer pkgs.Close()

	for pkg, err := range pkgs.All() {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err != nil {
			if models.IsFatal(err) {
				return nil, err
			}
			logrus.Warnf("Skipping package in %s: %v", db.name, err)
			continue
		}

		if match(pkg) {
			return pkg, nil
		}
	}

	return nil, models.NewError(models.ErrPackageNotFound, subject, nil)
}
