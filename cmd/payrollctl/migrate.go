package main

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/app"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

func cmdMigrate() *cobra.Command {
	var statusOnly bool
	var cmd = &cobra.Command{
		Use:          "migrate",
		Short:        "apply pending database migrations",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				ctx := cmd.Context()
				if !statusOnly {
					if err := database.Migrate(ctx, a.DB); err != nil {
						return err
					}
				}
				version, err := database.MigrationVersion(ctx, a.DB)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&statusOnly, "status", false, "only print the current schema version")
	return cmd
}
