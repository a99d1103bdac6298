package cli

import (
	"strings"

	"github.com/ralt/pacdb/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding flags
const EnvPrefix = "PACDB"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("dbpath", models.DefaultDBDir)

	rootCmd := &cobra.Command{
		Use:   "pacdb",
		Short: "Read packages from pacman sync databases",
		Long: `Pacdb streams the packages of a pacman sync database (core.db,
extra.db, ...) without unpacking it, and prints them as text, YAML or JSON.

Databases are looked up in <dbpath>/sync/<name>.db. The database directory
defaults to /var/lib/pacman and can be set with --dbpath or PACDB_DBPATH.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("dbpath", "b", models.DefaultDBDir, "Database directory")
	v.BindPFlag("dbpath", rootCmd.PersistentFlags().Lookup("dbpath"))

	// Add subcommands
	rootCmd.AddCommand(NewListCmd(v))
	rootCmd.AddCommand(NewShowCmd(v))
	rootCmd.AddCommand(NewDatabasesCmd(v))
	rootCmd.AddCommand(NewVerifyCmd(v))

	return rootCmd
}
