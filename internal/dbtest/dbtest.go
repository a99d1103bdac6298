// Package dbtest writes synthetic pacman sync databases for tests.
package dbtest

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/utils"
	"github.com/ulikunitz/xz"
)

// Entry is one file or directory written into a database archive
type Entry struct {
	Name string
	Body []byte
	Dir  bool
}

// DescFile creates the desc file content for a package
func DescFile(pkg models.Package) []byte {
	var buf bytes.Buffer

	// Write a field to the buffer
	writeField := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&buf, "%%%s%%\n%s\n\n", name, value)
		}
	}
	writeList := func(name string, values []string) {
		if len(values) > 0 {
			fmt.Fprintf(&buf, "%%%s%%\n%s\n\n", name, strings.Join(values, "\n"))
		}
	}

	writeField("FILENAME", pkg.Filename)
	writeField("NAME", pkg.Name)
	writeField("BASE", pkg.Base)
	writeField("VERSION", pkg.Version)
	writeField("DESC", pkg.Description)
	if pkg.Size > 0 {
		writeField("CSIZE", fmt.Sprintf("%d", pkg.Size))
	}
	if pkg.InstalledSize > 0 {
		writeField("ISIZE", fmt.Sprintf("%d", pkg.InstalledSize))
	}
	writeField("MD5SUM", pkg.MD5Sum)
	writeField("SHA256SUM", pkg.SHA256Sum)
	writeField("PGPSIG", pkg.PGPSig)
	writeField("URL", pkg.URL)
	writeList("LICENSE", pkg.Licenses)
	writeField("ARCH", pkg.Architecture)
	writeField("BUILDDATE", pkg.BuildDate)
	writeField("PACKAGER", pkg.Packager)
	writeList("PROVIDES", pkg.Provides)
	writeList("DEPENDS", pkg.Depends)
	writeList("OPTIONALDEPENDS", pkg.OptionalDepends)
	writeList("MAKEDEPENDS", pkg.MakeDepends)
	writeList("CHECKDEPENDS", pkg.CheckDepends)

	return buf.Bytes()
}

// PackageEntries lays out packages the way repo-add does: a "name-version/"
// directory holding a desc file and a files manifest.
func PackageEntries(packages ...models.Package) []Entry {
	var entries []Entry
	for _, pkg := range packages {
		dir := fmt.Sprintf("%s-%s/", pkg.Name, pkg.Version)
		entries = append(entries,
			Entry{Name: dir, Dir: true},
			Entry{Name: dir + "desc", Body: DescFile(pkg)},
			Entry{Name: dir + "files", Body: []byte("%FILES%\nusr/\nusr/bin/\nusr/bin/" + pkg.Name + "\n\n")},
		)
	}
	return entries
}

// Build creates a database archive from entries with the given compression
func Build(entries []Entry, c utils.Compression) ([]byte, error) {
	// Create in-memory tar archive
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)

	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.Name,
			Mode:     0644,
			Size:     int64(len(e.Body)),
			Typeflag: tar.TypeReg,
		}
		if e.Dir {
			hdr.Mode = 0755
			hdr.Size = 0
			hdr.Typeflag = tar.TypeDir
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if !e.Dir {
			if _, err := tw.Write(e.Body); err != nil {
				return nil, err
			}
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}

	return Compress(tarBuf.Bytes(), c)
}

// Compress compresses data with the given compression
func Compress(data []byte, c utils.Compression) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser

	switch c {
	case utils.CompressionGzip:
		w = gzip.NewWriter(&buf)
	case utils.CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		w = zw
	case utils.CompressionXz:
		xw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		w = xw
	default:
		return data, nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteDatabase writes a database archive to path, creating directories as needed
func WriteDatabase(path string, entries []Entry, c utils.Compression) error {
	data, err := Build(entries, c)
	if err != nil {
		return fmt.Errorf("failed to build database: %w", err)
	}

	return utils.WriteFile(path, data, 0644)
}
