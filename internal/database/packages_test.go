package database

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ralt/pacdb/internal/dbtest"
	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/parser"
	"github.com/ralt/pacdb/internal/utils"
)

var (
	supertux = models.Package{
		Name:          "supertux",
		Base:          "supertux",
		Filename:      "supertux-0.6.2-3-x86_64.pkg.tar.zst",
		Version:       "0.6.2-3",
		Description:   "A classic 2D jump'n'run sidescroller game",
		URL:           "https://www.supertux.org",
		Size:          157518488,
		InstalledSize: 229551408,
		Architecture:  "x86_64",
		MD5Sum:        "bc9013783217dff3081d4daa4c222c32",
		BuildDate:     "1607789295",
		Packager:      "Felix Yan <felixonmars@archlinux.org>",
		Licenses:      []string{"GPL"},
		Depends:       []string{"curl", "openal", "libvorbis"},
		MakeDepends:   []string{"cmake", "boost"},
	}
	zlib = models.Package{
		Name:         "zlib",
		Filename:     "zlib-1:1.3.1-2-x86_64.pkg.tar.zst",
		Version:      "1:1.3.1-2",
		Description:  "Compression library implementing the deflate compression method found in gzip and PKZIP",
		Size:         92468,
		Architecture: "x86_64",
		Licenses:     []string{"Zlib"},
		Provides:     []string{"libz.so=1-64"},
		Depends:      []string{"glibc"},
	}
)

func writeDB(t *testing.T, entries []dbtest.Entry, c utils.Compression) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sync", "test.db")
	if err := dbtest.WriteDatabase(path, entries, c); err != nil {
		t.Fatalf("Failed to write database: %v", err)
	}
	return path
}

func TestPackagesYieldsEveryPackage(t *testing.T) {
	for _, c := range []utils.Compression{utils.CompressionGzip, utils.CompressionZstd, utils.CompressionXz} {
		t.Run(c.String(), func(t *testing.T) {
			pkgs := NewPackages(writeDB(t, dbtest.PackageEntries(supertux, zlib), c), nil)
			defer pkgs.Close()

			var got []models.Package
			for pkg, err := range pkgs.All() {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				got = append(got, *pkg)
			}

			want := []models.Package{supertux, zlib}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Packages = %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestPackagesTerminalState(t *testing.T) {
	pkgs := NewPackages(writeDB(t, dbtest.PackageEntries(zlib), utils.CompressionGzip), nil)

	if _, err := pkgs.Next(); err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		pkg, err := pkgs.Next()
		if err != io.EOF || pkg != nil {
			t.Errorf("Expected (nil, io.EOF) after exhaustion, got (%v, %v)", pkg, err)
		}
	}
	if pkgs.reader != nil {
		t.Error("Archive should be released once exhausted")
	}
}

func TestPackagesLocalErrorsDoNotStopIteration(t *testing.T) {
	entries := []dbtest.Entry{
		{Name: "unknown-1-1/desc", Body: []byte("%NAME%\nunknown\n\n%XDATA%\npkgtype=pkg\n")},
		{Name: "badsize-1-1/desc", Body: []byte("%NAME%\nbadsize\n\n%CSIZE%\nlots\n")},
		{Name: "latin1-1-1/desc", Body: []byte("%NAME%\nlatin1\n\n%DESC%\ncaf\xe9\n")},
		{Name: "latin1-1-1/files", Body: []byte("%FILES%\n")},
	}
	entries = append(entries, dbtest.PackageEntries(zlib)...)

	pkgs := NewPackages(writeDB(t, entries, utils.CompressionGzip), nil)
	defer pkgs.Close()

	wantTypes := []models.ErrorType{
		models.ErrPackagePropertyMissing,
		models.ErrPackageParseSize,
		models.ErrPackageUTF8Conversion,
	}
	var lastErr error
	for _, want := range wantTypes {
		_, lastErr = pkgs.Next()
		if !models.IsType(lastErr, want) {
			t.Fatalf("Expected %s error, got %v", want, lastErr)
		}
	}

	if e := lastErr.(*models.Error); e.Subject != "latin1-1-1" {
		t.Errorf("UTF-8 error subject = %q, want latin1-1-1", e.Subject)
	}

	pkg, err := pkgs.Next()
	if err != nil {
		t.Fatalf("Expected zlib after local errors, got %v", err)
	}
	if pkg.Name != "zlib" {
		t.Errorf("Expected zlib, got %s", pkg.Name)
	}

	if _, err := pkgs.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestPackagesIgnoreUnknownKeys(t *testing.T) {
	entries := []dbtest.Entry{
		{Name: "foo-1-1/desc", Body: []byte("%NAME%\nfoo\n\n%XDATA%\npkgtype=pkg\n")},
	}
	pkgs := NewPackages(writeDB(t, entries, utils.CompressionGzip), parser.NewBuilder(parser.UnknownKeyIgnore))
	defer pkgs.Close()

	pkg, err := pkgs.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if pkg.Name != "foo" {
		t.Errorf("Name = %q, want foo", pkg.Name)
	}
}

func TestPackagesMissingFile(t *testing.T) {
	pkgs := NewPackages(filepath.Join(t.TempDir(), "missing.db"), nil)

	var errs []error
	for pkg, err := range pkgs.All() {
		if pkg != nil {
			t.Errorf("Unexpected package %s", pkg.Name)
		}
		errs = append(errs, err)
	}

	if len(errs) != 1 || !models.IsType(errs[0], models.ErrDatabaseLoad) {
		t.Errorf("Expected a single DatabaseLoad error, got %v", errs)
	}
	if _, err := pkgs.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF after load failure, got %v", err)
	}
}

func TestPackagesEarlyBreakReleasesArchive(t *testing.T) {
	pkgs := NewPackages(writeDB(t, dbtest.PackageEntries(supertux, zlib), utils.CompressionZstd), nil)

	for pkg, err := range pkgs.All() {
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if pkg.Name != "supertux" {
			t.Errorf("Expected supertux first, got %s", pkg.Name)
		}
		break
	}

	if pkgs.reader != nil {
		t.Error("Archive should be released after breaking out of All")
	}
	if _, err := pkgs.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF after early break, got %v", err)
	}
}

func TestPackagesCloseBeforeNext(t *testing.T) {
	pkgs := NewPackages(filepath.Join(t.TempDir(), "missing.db"), nil)
	if err := pkgs.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := pkgs.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}
