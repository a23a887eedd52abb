package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func cmdToken() *cobra.Command {
	var userID, email, employeeID, role string
	var cmd = &cobra.Command{
		Use:          "token",
		Short:        "issue an access token for calling the HTTP API",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := user.Role(role)
			if _, ok := user.RolePermissions[r]; !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			var empID *string
			if employeeID != "" {
				empID = &employeeID
			}

			cfg := configFrom(cmd)
			token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
				GenerateAccessToken(userID, email, empID, r)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"accessToken": token,
				"expiresAt":   time.Unix(expiresAt, 0).UTC(),
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "operator", "subject user id")
	cmd.Flags().StringVar(&email, "email", "", "subject email")
	cmd.Flags().StringVar(&employeeID, "employee", "", "subject employee id")
	cmd.Flags().StringVar(&role, "role", string(user.RoleOwner), "owner, manager or employee")
	return cmd
}
