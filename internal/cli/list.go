package cli

import (
	"fmt"
	"io"

	"github.com/ralt/pacdb/internal/database"
	"github.com/ralt/pacdb/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewListCmd creates the list command
func NewListCmd(v *viper.Viper) *cobra.Command {
	var config models.DatabaseConfig
	var output string
	var failFast bool

	cmd := &cobra.Command{
		Use:   "list [database]",
		Short: "List the packages of a sync database",
		Long: `Streams every package of a sync database. Packages whose description
cannot be parsed are reported as warnings and skipped unless --fail-fast
is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Dir = v.GetString("dbpath")
			if len(args) > 0 {
				config.Name = args[0]
			}

			if err := validateConfig(&config); err != nil {
				return err
			}

			return runList(cmd.OutOrStdout(), &config, output, failFast)
		},
	}

	cmd.Flags().StringVarP(&config.File, "file", "f", "", "Read this database file instead of resolving a name")
	cmd.Flags().BoolVar(&config.IgnoreUnknown, "ignore-unknown", false, "Ignore unrecognized desc fields")
	cmd.Flags().StringVarP(&output, "output", "o", FormatText, "Output format (text, yaml, json)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first package that fails to parse")

	return cmd
}

func validateConfig(config *models.DatabaseConfig) error {
	if config.Name == "" && config.File == "" {
		return &models.Error{
			Type:    models.ErrInvalidConfig,
			Subject: "a database name or --file is required",
		}
	}

	if config.Dir == "" {
		config.Dir = models.DefaultDBDir
	}

	return nil
}

func runList(out io.Writer, config *models.DatabaseConfig, format string, failFast bool) error {
	pw, err := newPackageWriter(out, format, func(w io.Writer, pkg *models.Package) error {
		_, err := fmt.Fprintf(w, "%s %s\n", pkg.Name, pkg.Version)
		return err
	})
	if err != nil {
		return err
	}

	db, err := database.Load(config)
	if err != nil {
		return err
	}

	logrus.Debugf("Listing packages of %s", db.Path())

	var count, failed int
	for pkg, err := range db.Packages().All() {
		if err != nil {
			if models.IsFatal(err) || failFast {
				return err
			}
			logrus.Warnf("Skipping package: %v", err)
			failed++
			continue
		}

		if err := pw.Write(pkg); err != nil {
			return fmt.Errorf("failed to write package %s: %w", pkg.Name, err)
		}
		count++
	}

	if err := pw.Close(); err != nil {
		return err
	}

	logrus.Debugf("Listed %d packages from %s (%d skipped)", count, db.Name(), failed)
	return nil
}
