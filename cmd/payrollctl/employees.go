package main

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/app"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/spf13/cobra"
)

func cmdEmployees() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "employees",
		Short: "inspect and adjust the team hierarchy",
	}
	cmd.AddCommand(cmdTeam())
	cmd.AddCommand(cmdSetManager())
	return cmd
}

func cmdTeam() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "team <manager-id>",
		Short:        "list a manager's direct reports",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				team, err := a.Employees.ListTeam(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), team)
			})
		},
	}
	return cmd
}

func cmdSetManager() *cobra.Command {
	var managerID string
	var root bool
	var cmd = &cobra.Command{
		Use:          "set-manager <employee-id>",
		Short:        "move an employee under a manager, or make them a root manager",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == (managerID != "") {
				return fmt.Errorf("exactly one of --manager or --root is required")
			}
			req := employee.AssignManagerRequest{EmployeeID: args[0]}
			if !root {
				req.ManagerID = &managerID
			}
			return withApp(cmd, func(a *app.App) error {
				resp, err := a.Employees.AssignManager(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().StringVarP(&managerID, "manager", "m", "", "new manager employee id")
	cmd.Flags().BoolVar(&root, "root", false, "clear the manager")
	return cmd
}
