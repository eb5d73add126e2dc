package main

import (
	"fmt"

	"github.com/getAlby/invoicehub.go/db"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			dbConn, err := db.Open(c)
			if err != nil {
				return fmt.Errorf("error initializing db connection: %w", err)
			}
			defer dbConn.Close()

			group, err := db.Migrate(cmd.Context(), dbConn)
			if err != nil {
				return fmt.Errorf("error migrating database: %w", err)
			}
			if group.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated to %s\n", group)
			return nil
		},
	}
}
