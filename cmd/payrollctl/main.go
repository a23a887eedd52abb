package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/payroll-backend-go/internal/app"
	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmdRoot().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func cmdRoot() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "payrollctl",
		Short: "Payroll reporting operator utility",
		Long:  `Run migrations, generate and deliver monthly payroll reports, and manage the team hierarchy`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cfg.App.LogLevel = "debug"
			}
			slog.SetDefault(appHTTP.NewLogger(cfg.App, cfg.SlogLevel(), cmd.ErrOrStderr()))
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	cmd.PersistentFlags().Bool("verbose", false, "log debugging information")

	cmd.AddCommand(cmdMigrate())
	cmd.AddCommand(cmdReports())
	cmd.AddCommand(cmdEmployees())
	cmd.AddCommand(cmdToken())
	return cmd
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(configKey{}).(*config.Config)
	return cfg
}

// withApp wires the services for the duration of one command.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := app.New(cmd.Context(), configFrom(cmd))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
