package main

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/app"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/spf13/cobra"
)

// periodFlags are shared by every report command.
type periodFlags struct {
	managerID string
	year      int
	month     int
}

func (p *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.managerID, "manager", "m", "", "manager employee id")
	cmd.Flags().IntVarP(&p.year, "year", "y", 0, "report year")
	cmd.Flags().IntVar(&p.month, "month", 0, "report month (1-12)")
	_ = cmd.MarkFlagRequired("manager")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
}

func cmdReports() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "reports",
		Short: "generate and send monthly payroll reports",
	}
	cmd.AddCommand(cmdSummary())
	cmd.AddCommand(cmdGenerateCSV())
	cmd.AddCommand(cmdSendCSV())
	cmd.AddCommand(cmdGeneratePDFs())
	cmd.AddCommand(cmdSendPDFs())
	return cmd
}

func cmdSummary() *cobra.Command {
	var p periodFlags
	var includeBonuses bool
	var cmd = &cobra.Command{
		Use:          "summary",
		Short:        "print the manager's team totals without storing anything",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				rows, err := a.Aggregation.TeamSummary(cmd.Context(), payroll.SummaryRequest{
					ManagerID:      p.managerID,
					Year:           p.year,
					Month:          p.month,
					IncludeBonuses: includeBonuses,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rows)
			})
		},
	}
	p.register(cmd)
	cmd.Flags().BoolVar(&includeBonuses, "include-bonuses", true, "count bonuses toward gross salary")
	return cmd
}

func cmdGenerateCSV() *cobra.Command {
	var p periodFlags
	var includeBonuses bool
	var cmd = &cobra.Command{
		Use:          "generate-csv",
		Short:        "build and store the manager's team CSV",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				resp, err := a.Delivery.GenerateManagerCSV(cmd.Context(), report.GenerateCSVRequest{
					ManagerID:      p.managerID,
					Year:           p.year,
					Month:          p.month,
					IncludeBonuses: includeBonuses,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	p.register(cmd)
	cmd.Flags().BoolVar(&includeBonuses, "include-bonuses", true, "count bonuses toward gross salary")
	return cmd
}

func cmdSendCSV() *cobra.Command {
	var p periodFlags
	var key string
	var cmd = &cobra.Command{
		Use:          "send-csv",
		Short:        "mail the team CSV to the manager and archive it",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				resp, err := a.Delivery.SendManagerCSV(cmd.Context(), report.SendCSVRequest{
					ManagerID:      p.managerID,
					Year:           p.year,
					Month:          p.month,
					IdempotencyKey: key,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	p.register(cmd)
	cmd.Flags().StringVarP(&key, "idempotency-key", "k", "", "collapse repeated runs sharing this key")
	return cmd
}

func cmdGeneratePDFs() *cobra.Command {
	var p periodFlags
	var overwrite bool
	var cmd = &cobra.Command{
		Use:          "generate-pdfs",
		Short:        "build a protected salary slip for every direct report",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				resp, err := a.Delivery.GenerateEmployeePDFs(cmd.Context(), report.GeneratePDFsRequest{
					ManagerID:         p.managerID,
					Year:              p.year,
					Month:             p.month,
					OverwriteExisting: overwrite,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	p.register(cmd)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rebuild slips that already exist")
	return cmd
}

func cmdSendPDFs() *cobra.Command {
	var p periodFlags
	var key string
	var regenerate bool
	var cmd = &cobra.Command{
		Use:          "send-pdfs",
		Short:        "mail each direct report their slip, archive and bundle the sent slips",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				resp, err := a.Delivery.SendEmployeePDFs(cmd.Context(), report.SendPDFsRequest{
					ManagerID:         p.managerID,
					Year:              p.year,
					Month:             p.month,
					RegenerateMissing: regenerate,
					IdempotencyKey:    key,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	p.register(cmd)
	cmd.Flags().StringVarP(&key, "idempotency-key", "k", "", "collapse repeated runs sharing this key")
	cmd.Flags().BoolVar(&regenerate, "regenerate-missing", false, "rebuild slips before sending")
	return cmd
}
