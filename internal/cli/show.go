package cli

import (
	"fmt"
	"io"

	"github.com/ralt/pacdb/internal/database"
	"github.com/ralt/pacdb/internal/models"
	"github.com/ralt/pacdb/internal/signature"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewShowCmd creates the show command
func NewShowCmd(v *viper.Viper) *cobra.Command {
	var config models.DatabaseConfig
	var output string

	cmd := &cobra.Command{
		Use:   "show <database> <package>",
		Short: "Show the details of one package",
		Args:  cobra.ExactArgs(2),
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

			pkg, err := db.Find(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			pw, err := newPackageWriter(cmd.OutOrStdout(), output, writePackageDetails)
			if err != nil {
				return err
			}
			if err := pw.Write(pkg); err != nil {
				return err
			}
			return pw.Close()
		},
	}

	cmd.Flags().BoolVar(&config.IgnoreUnknown, "ignore-unknown", false, "Ignore unrecognized desc fields")
	cmd.Flags().StringVarP(&output, "output", "o", FormatText, "Output format (text, yaml, json)")

	return cmd
}

// writePackageDetails prints every field of a package along with a summary
// of its signature
func writePackageDetails(w io.Writer, pkg *models.Package) error {
	if _, err := io.WriteString(w, pkg.String()); err != nil {
		return err
	}

	sig := "None"
	if pkg.PGPSig != "" {
		info, err := signature.Inspect(pkg.PGPSig)
		if err != nil {
			sig = fmt.Sprintf("unreadable (%v)", err)
		} else {
			sig = info.String()
		}
	}

	_, err := fmt.Fprintf(w, "%-17s: %s\n", "Signature", sig)
	return err
}
