package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// openStorage already applies pending migrations; this
			// command exists to do it explicitly and report the result.
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			version, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Database migrated to schema version %d\n", version)
			return nil
		},
	}
}
