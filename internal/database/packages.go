package database

import (
	"io"
	"iter"
	"unicode/utf8"

	"github.com/ralt/pacdb/internal/archive"
	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/parser"
	"github.com/sirupsen/logrus"
)

type iterState int

const (
	stateUninitialized iterState = iota
	stateStreaming
	stateExhausted
)

// Packages iterates over the packages of a database archive. It is not
// safe for concurrent use.
type Packages struct {
	path    string
	builder *parser.Builder
	state   iterState
	reader  *archive.Reader
	filter  *archive.Filter
	log     *logrus.Entry
}

// NewPackages creates an iterator over the database archive at path. The
// archive is opened by the first call to Next.
func NewPackages(path string, builder *parser.Builder) *Packages {
	if builder == nil {
		builder = parser.NewBuilder(parser.UnknownKeyError)
	}
	return &Packages{
		path:    path,
		builder: builder,
		log:     logrus.WithField("database", path),
	}
}

// Next returns the next package of the archive.
//
// A package that cannot be decoded or parsed is reported as an *models.Error
// for that call only; calling Next again moves on to the following package.
// A failure to open or walk the archive is returned once and ends the
// iteration. Once exhausted, Next returns io.EOF.
func (p *Packages) Next() (*models.Package, error) {
	switch p.state {
	case stateExhausted:
		return nil, io.EOF
	case stateUninitialized:
		p.reader = archive.Open(p.path)
		p.filter = archive.NewFilter(p.reader)
		p.state = stateStreaming
	}

	entry, dir, err := p.filter.Next()
	if err != nil {
		p.Close()
		if err != io.EOF {
			p.log.Debugf("Database iteration stopped: %v", err)
		}
		return nil, err
	}

	data, err := io.ReadAll(entry)
	if err != nil {
		p.Close()
		return nil, models.NewError(models.ErrDatabaseIteration, p.path, err)
	}

	if !utf8.Valid(data) {
		return nil, models.NewError(models.ErrPackageUTF8Conversion, dir, nil)
	}

	pkg, err := p.builder.Build(string(data))
	if err != nil {
		p.log.WithField("package", dir).Debugf("Failed to parse desc: %v", err)
		return nil, err
	}

	return pkg, nil
}

// All returns the remaining packages as a sequence. Breaking out of the
// loop closes the iterator.
func (p *Packages) All() iter.Seq2[*models.Package, error] {
	return func(yield func(*models.Package, error) bool) {
		defer p.Close()
		for {
			pkg, err := p.Next()
			if err == io.EOF {
				return
			}
			if !yield(pkg, err) {
				return
			}
		}
	}
}

// Close releases the archive. Subsequent calls to Next return io.EOF.
func (p *Packages) Close() error {
	p.state = stateExhausted
	if p.reader == nil {
		return nil
	}
	err := p.reader.Close()
	p.reader = nil
	p.filter = nil
	return err
}
