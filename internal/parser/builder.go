package parser

import (
	"iter"
	"strconv"
	"strings"

	"github.com/ralt/pacdb/internal/models"
	"github.com/sirupsen/logrus"
)

// UnknownKeyPolicy controls what happens when a desc record contains a key
// that does not map to a Package field
type UnknownKeyPolicy int

const (
	// UnknownKeyError fails the package with a property missing error
	UnknownKeyError UnknownKeyPolicy = iota
	// UnknownKeyIgnore skips the token
	UnknownKeyIgnore
)

// setter stores the values of one token into a package
type setter func(pkg *models.Package, values []string) error

func stringField(field func(*models.Package) *string) setter {
	return func(pkg *models.Package, values []string) error {
		*field(pkg) = values[0]
		return nil
	}
}

func sizeField(field func(*models.Package) *uint64) setter {
	return func(pkg *models.Package, values []string) error {
		n, err := strconv.ParseUint(values[0], 10, 64)
		if err != nil {
			return models.NewError(models.ErrPackageParseSize, values[0], err)
		}
		*field(pkg) = n
		return nil
	}
}

func listField(field func(*models.Package) *[]string) setter {
	return func(pkg *models.Package, values []string) error {
		*field(pkg) = append([]string(nil), values...)
		return nil
	}
}

// fields maps lowercased desc keys to Package fields
var fields = map[string]setter{
	"name":      stringField(func(p *models.Package) *string { return &p.Name }),
	"base":      stringField(func(p *models.Package) *string { return &p.Base }),
	"filename":  stringField(func(p *models.Package) *string { return &p.Filename }),
	"version":   stringField(func(p *models.Package) *string { return &p.Version }),
	"desc":      stringField(func(p *models.Package) *string { return &p.Description }),
	"url":       stringField(func(p *models.Package) *string { return &p.URL }),
	"csize":     sizeField(func(p *models.Package) *uint64 { return &p.Size }),
	"isize":     sizeField(func(p *models.Package) *uint64 { return &p.InstalledSize }),
	"arch":      stringField(func(p *models.Package) *string { return &p.Architecture }),
	"md5sum":    stringField(func(p *models.Package) *string { return &p.MD5Sum }),
	"sha256sum": stringField(func(p *models.Package) *string { return &p.SHA256Sum }),
	"pgpsig":    stringField(func(p *models.Package) *string { return &p.PGPSig }),
	"builddate": stringField(func(p *models.Package) *string { return &p.BuildDate }),
	"packager":  stringField(func(p *models.Package) *string { return &p.Packager }),

	"license":         listField(func(p *models.Package) *[]string { return &p.Licenses }),
	"provides":        listField(func(p *models.Package) *[]string { return &p.Provides }),
	"depends":         listField(func(p *models.Package) *[]string { return &p.Depends }),
	"makedepends":     listField(func(p *models.Package) *[]string { return &p.MakeDepends }),
	"optionaldepends": listField(func(p *models.Package) *[]string { return &p.OptionalDepends }),
	"checkdepends":    listField(func(p *models.Package) *[]string { return &p.CheckDepends }),
}

// KnownKey reports whether key maps to a Package field. Keys are case insensitive.
func KnownKey(key string) bool {
	_, ok := fields[strings.ToLower(key)]
	return ok
}

// Builder folds desc tokens into a Package
type Builder struct {
	UnknownKeys UnknownKeyPolicy
}

// NewBuilder creates a builder with the given unknown key policy
func NewBuilder(policy UnknownKeyPolicy) *Builder {
	return &Builder{UnknownKeys: policy}
}

// Build parses the text of a desc record into a Package
func (b *Builder) Build(text string) (*models.Package, error) {
	return b.BuildTokens(NewTokenizer(text).All())
}

// BuildTokens folds tokens into a Package, starting from the zero Package.
// A later token for the same key replaces the earlier one. Missing fields
// are left at their zero value.
func (b *Builder) BuildTokens(tokens iter.Seq[Token]) (*models.Package, error) {
	pkg := &models.Package{}

	for tok := range tokens {
		set, ok := fields[strings.ToLower(tok.Key)]
		if !ok {
			if b.UnknownKeys == UnknownKeyIgnore {
				logrus.Debugf("Ignoring unknown desc key: %s", tok.Key)
				continue
			}
			return nil, models.NewError(models.ErrPackagePropertyMissing, tok.Key, nil)
		}

		if len(tok.Values) == 0 {
			continue
		}

		if err := set(pkg, tok.Values); err != nil {
			return nil, err
		}
	}

	return pkg, nil
}

// Parse parses the text of a desc record with the default policy
func Parse(text string) (*models.Package, error) {
	return NewBuilder(UnknownKeyError).Build(text)
}
