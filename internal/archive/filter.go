package archive

import "strings"

// DescFile is the name of the per-package file holding the package description
const DescFile = "desc"

// DescDir reports whether an archive path is the desc file of a package
// directory, and returns that directory name. Only paths of the form
// "<dir>/desc" qualify; "files", "mtree" and other entries do not.
func DescDir(name string) (string, bool) {
	name = strings.TrimPrefix(name, "./")

	dir, file, ok := strings.Cut(name, "/")
	if !ok || dir == "" || file != DescFile {
		return "", false
	}
	return dir, true
}

// Filter yields only the desc entries of a Reader, at most one per package
// directory
type Filter struct {
	r    *Reader
	seen map[string]struct{}
}

// NewFilter creates a desc filter on top of r
func NewFilter(r *Reader) *Filter {
	return &Filter{r: r, seen: make(map[string]struct{})}
}

// Next returns the next desc entry and its package directory name. Errors
// and io.EOF are passed through from the Reader.
func (f *Filter) Next() (*Entry, string, error) {
	for {
		entry, err := f.r.Next()
		if err != nil {
			return nil, "", err
		}

		if !entry.IsRegular() {
			continue
		}
		dir, ok := DescDir(entry.Path)
		if !ok {
			continue
		}
		if _, dup := f.seen[dir]; dup {
			continue
		}
		f.seen[dir] = struct{}{}

		return entry, dir, nil
	}
}
