package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	idempotencyService "github.com/cmlabs-hris/payroll-backend-go/internal/service/idempotency"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/payroll-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
)

// App holds the wired services shared by the HTTP server and the operator CLI.
type App struct {
	Config      *config.Config
	DB          *database.DB
	JWT         jwt.Service
	Storage     storage.FileStorage
	Employees   employee.EmployeeService
	Aggregation payroll.AggregationService
	Coordinator idempotency.Coordinator
	Delivery    report.DeliveryService
}

// New connects to Postgres and builds every service. Callers must Close the result.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	fileStorage, err := NewFileStorage(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		return nil, err
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	monthRepo := postgresql.NewMonthRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	reportFileRepo := postgresql.NewReportFileRepository(db)
	keyRepo := postgresql.NewIdempotencyKeyRepository(db)

	aggregation := payrollService.NewAggregationService(employeeRepo, summaryRepo)
	coordinator := idempotencyService.NewCoordinator(keyRepo)
	mailer := email.NewSMTPMailer(cfg.SMTP)

	return &App{
		Config:      cfg,
		DB:          db,
		JWT:         jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration),
		Storage:     fileStorage,
		Employees:   employeeService.NewEmployeeService(employeeRepo),
		Aggregation: aggregation,
		Coordinator: coordinator,
		Delivery: reportService.NewDeliveryService(
			cfg.Reports,
			employeeRepo,
			monthRepo,
			reportFileRepo,
			aggregation,
			coordinator,
			fileStorage,
			mailer,
		),
	}, nil
}

// Router builds the HTTP API on top of the wired services.
func (a *App) Router(logger *slog.Logger) *chi.Mux {
	return appHTTP.NewRouter(
		a.Config.App,
		logger,
		a.JWT,
		appHTTP.NewReportHandler(a.Delivery),
		appHTTP.NewPayrollHandler(a.Aggregation),
		appHTTP.NewEmployeeHandler(a.Employees),
		appHTTP.NewIdempotencyHandler(a.Coordinator),
	)
}

func (a *App) Close() {
	a.DB.Close()
}

// NewFileStorage selects the blob storage backend named by cfg.Type.
func NewFileStorage(ctx context.Context, cfg config.StorageConfig) (storage.FileStorage, error) {
	switch cfg.Type {
	case "local":
		fs, err := storage.NewLocalStorage(cfg.BasePath, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return fs, nil
	case "s3":
		fs, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
