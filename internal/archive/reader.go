// Package archive streams the entries of a compressed pacman database archive.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// ErrStaleEntry is returned when reading an entry after the reader moved past it
var ErrStaleEntry = errors.New("archive entry is no longer readable")

// Entry is one file of the archive. Its content can only be read until the
// next call to Reader.Next or Reader.Close.
type Entry struct {
	Path string
	Size int64
	Type byte

	owner *Reader
	gen   int
}

// Read reads the entry content
func (e *Entry) Read(p []byte) (int, error) {
	if e.owner.gen != e.gen || e.owner.tr == nil {
		return 0, ErrStaleEntry
	}
	return e.owner.tr.Read(p)
}

// IsRegular reports whether the entry is a regular file
func (e *Entry) IsRegular() bool {
	return e.Type == tar.TypeReg
}

type readerState int

const (
	stateUnopened readerState = iota
	stateOpen
	stateDone
)

// Reader walks the entries of a database archive in on-disk order. The file
// is opened on the first call to Next. Entries are forward only and the
// walk cannot be restarted; open a new Reader for a second pass.
type Reader struct {
	path        string
	state       readerState
	file        *os.File
	decomp      io.ReadCloser
	compression utils.Compression
	tr          *tar.Reader
	gen         int
}

// Open creates a reader for the archive at path. No I/O happens until Next is called.
func Open(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the archive path
func (r *Reader) Path() string {
	return r.path
}

// Compression returns the detected compression. It is only meaningful once
// the first entry has been requested.
func (r *Reader) Compression() utils.Compression {
	return r.compression
}

// Next advances to the next entry. It returns io.EOF when the archive is
// exhausted. A failure to open the archive is reported as a DatabaseLoad
// error and a failure while walking it as a DatabaseIteration error; both
// are returned once, after which Next returns io.EOF.
func (r *Reader) Next() (*Entry, error) {
	switch r.state {
	case stateDone:
		return nil, io.EOF
	case stateUnopened:
		if err := r.open(); err != nil {
			r.Close()
			return nil, err
		}
	}

	r.gen++

	header, err := r.tr.Next()
	if err == io.EOF {
		r.Close()
		return nil, io.EOF
	}
	if err != nil {
		r.Close()
		return nil, models.NewError(models.ErrDatabaseIteration, r.path, err)
	}

	return &Entry{
		Path:  header.Name,
		Size:  header.Size,
		Type:  header.Typeflag,
		owner: r,
		gen:   r.gen,
	}, nil
}

// open opens the file and sets up decompression
func (r *Reader) open() error {
	f, err := os.Open(r.path)
	if err != nil {
		return models.NewError(models.ErrDatabaseLoad, r.path, err)
	}

	decomp, c, err := utils.NewDecompressReader(f)
	if err != nil {
		f.Close()
		return models.NewError(models.ErrDatabaseLoad, r.path, fmt.Errorf("failed to initialize decompression: %w", err))
	}

	logrus.Debugf("Opened database %s (%s)", r.path, c)

	r.file = f
	r.decomp = decomp
	r.compression = c
	r.tr = tar.NewReader(decomp)
	r.state = stateOpen
	return nil
}

// Close releases the archive. It is safe to call more than once; after
// Close, Next returns io.EOF.
func (r *Reader) Close() error {
	r.state = stateDone
	r.tr = nil
	r.gen++

	var errs []error
	if r.decomp != nil {
		errs = append(errs, r.decomp.Close())
		r.decomp = nil
	}
	if r.file != nil {
		errs = append(errs, r.file.Close())
		r.file = nil
	}
	return errors.Join(errs...)
}
