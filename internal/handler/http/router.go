package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(app config.AppConfig, logger *slog.Logger, JWTService jwt.Service, reportHandler ReportHandler, payrollHandler PayrollHandler, employeeHandler EmployeeHandler, idempotencyHandler IdempotencyHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", idempotencyKeyHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireManager)

			r.Route("/reports-generation/managers/{managerID}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/summary", payrollHandler.GetTeamSummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsGenerate))
					r.Post("/csv", reportHandler.GenerateManagerCSV)
					r.Post("/pdfs", reportHandler.GenerateEmployeePDFs)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsSend))
					r.Post("/csv/send", reportHandler.SendManagerCSV)
					r.Post("/pdfs/send", reportHandler.SendEmployeePDFs)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/", reportHandler.List)
				r.Get("/{id}", reportHandler.GetByID)
				r.Get("/{id}/download", reportHandler.Download)
			})

			r.Route("/employees/{id}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeesView)).Get("/", employeeHandler.GetByID)
				r.With(middleware.RequirePermission(user.PermissionEmployeesView)).Get("/team", employeeHandler.ListTeam)
				r.With(middleware.RequirePermission(user.PermissionEmployeesManage)).Put("/manager", employeeHandler.AssignManager)
			})

			r.Route("/idempotency-keys", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionIdempotencyView))
				r.Get("/", idempotencyHandler.List)
				r.Get("/{id}", idempotencyHandler.GetByID)
			})
		})
	})
	return r
}

// NewLogger builds the JSON slog logger shared by the app and the request log, using ECS field names.
func NewLogger(app config.AppConfig, level slog.Leveler, w io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-reports"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)
}
