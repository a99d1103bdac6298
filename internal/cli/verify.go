package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ralt/pacdb/internal/database"
	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd(v *viper.Viper) *cobra.Command {
	var config models.DatabaseConfig

	cmd := &cobra.Command{
		Use:   "verify <database> <package-file>...",
		Short: "Check package files against a sync database",
		Long: `Looks up each package file by its file name in the database and compares
its size, MD5 and SHA-256 checksums with the recorded CSIZE, MD5SUM and
SHA256SUM fields.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Dir = v.GetString("dbpath")
			config.Name = args[0]

			if err := validateConfig(&config); err != nil {
				return err
			}

			db, err := database.Load(&config)
			if err != nil {
				return err
			}

			var errs []error
			for _, path := range args[1:] {
				if err := verifyFile(cmd, db, path); err != nil {
					if models.IsFatal(err) {
						return err
					}
					logrus.Errorf("%s: %v", path, err)
					errs = append(errs, err)
				}
			}

			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&config.IgnoreUnknown, "ignore-unknown", false, "Ignore unrecognized desc fields")

	return cmd
}

func verifyFile(cmd *cobra.Command, db *database.Database, path string) error {
	pkg, err := db.FindFile(cmd.Context(), filepath.Base(path))
	if err != nil {
		return err
	}

	sum, err := utils.CalculateChecksums(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if diffs := sum.Mismatches(pkg); len(diffs) > 0 {
		return models.NewError(models.ErrPackageChecksum, pkg.Filename, errors.New(strings.Join(diffs, ", ")))
	}

	return writeVerified(cmd.OutOrStdout(), pkg)
}

func writeVerified(w io.Writer, pkg *models.Package) error {
	_, err := fmt.Fprintf(w, "%s %s: OK\n", pkg.Name, pkg.Version)
	return err
}
