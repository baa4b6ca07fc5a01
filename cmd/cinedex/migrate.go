package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending catalog migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := openCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	n, err := cat.Migrate(cmd.Context())
	if err != nil {
		return err //nolint:wrapcheck // already descriptive
	}
	cmd.Printf("%s catalog: applied %d migration(s)\n", cat.Driver(), n)
	return nil
}
