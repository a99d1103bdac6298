package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ralt/pacdb/internal/models"
)

// Checksum contains the checksums a sync database records for a package file
type Checksum struct {
	MD5    string
	SHA256 string
	Size   uint64
}

// CalculateChecksums calculates all checksums for a file in a single pass
func CalculateChecksums(path string) (*Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadChecksums(f)
}

// ReadChecksums hashes everything read from r
func ReadChecksums(r io.Reader) (*Checksum, error) {
	md5Hash := md5.New()
	sha256Hash := sha256.New()

	n, err := io.Copy(io.MultiWriter(md5Hash, sha256Hash), r)
	if err != nil {
		return nil, err
	}

	return &Checksum{
		MD5:    hex.EncodeToString(md5Hash.Sum(nil)),
		SHA256: hex.EncodeToString(sha256Hash.Sum(nil)),
		Size:   uint64(n),
	}, nil
}

// Mismatches compares the checksum with the fields recorded for pkg and
// describes every difference. Fields the package does not record are not
// compared.
func (c *Checksum) Mismatches(pkg *models.Package) []string {
	var diffs []string

	if pkg.Size > 0 && pkg.Size != c.Size {
		diffs = append(diffs, fmt.Sprintf("size is %d, expected %d", c.Size, pkg.Size))
	}
	if pkg.MD5Sum != "" && !strings.EqualFold(pkg.MD5Sum, c.MD5) {
		diffs = append(diffs, fmt.Sprintf("md5 is %s, expected %s", c.MD5, pkg.MD5Sum))
	}
	if pkg.SHA256Sum != "" && !strings.EqualFold(pkg.SHA256Sum, c.SHA256) {
		diffs = append(diffs, fmt.Sprintf("sha256 is %s, expected %s", c.SHA256, pkg.SHA256Sum))
	}

	return diffs
}
