package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ralt/pacdb/internal/scanner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDatabasesCmd creates the databases command
func NewDatabasesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List the sync databases available in the database directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := v.GetString("dbpath")

			found, err := scanner.NewFileSystemScanner().Scan(cmd.Context(), dir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, db := range found {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", db.Name, db.Compression, db.Size, db.Path)
			}
			return tw.Flush()
		},
	}
}
