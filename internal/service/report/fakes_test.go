package report

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	idempotencysvc "github.com/cmlabs-hris/payroll-backend-go/internal/service/idempotency"
	"github.com/stretchr/testify/require"
)

// ---- employees / months / aggregation ----

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListSubordinates(ctx context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.ManagerID != nil && *e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b employee.Employee) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

type fakeMonthRepo struct {
	months map[period.Period]period.MonthInfo
}

func (f *fakeMonthRepo) GetByYearMonth(ctx context.Context, year, month int) (period.MonthInfo, error) {
	m, ok := f.months[period.Period{Year: year, Month: month}]
	if !ok {
		return period.MonthInfo{}, period.ErrMonthInfoNotFound
	}
	return m, nil
}

type fakeAggregation struct {
	payroll.AggregationService
	employees *fakeEmployeeRepo
	rows      map[string][]payroll.EmployeeMonthSummary
}

func (f *fakeAggregation) Summarize(ctx context.Context, managerID string, year, month int) ([]payroll.EmployeeMonthSummary, error) {
	if _, err := f.employees.GetByID(ctx, managerID); err != nil {
		return nil, err
	}
	return f.rows[managerID], nil
}

// ---- report store ----

type memReportRepo struct {
	mu    sync.Mutex
	seq   int
	files map[string]*report.ReportFile // by id
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{files: map[string]*report.ReportFile{}}
}

func (m *memReportRepo) byPath(path string) *report.ReportFile {
	for _, f := range m.files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

func (m *memReportRepo) Put(ctx context.Context, in report.PutReportFile) (report.ReportFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := m.byPath(in.Path)
	if f == nil {
		m.seq++
		f = &report.ReportFile{ID: fmt.Sprintf("rf-%d", m.seq), Path: in.Path, CreatedAt: time.Now()}
		m.files[f.ID] = f
	}
	f.Kind = in.Kind
	f.OwnerID = in.OwnerID
	f.Archived = in.Archived
	if in.Content != nil {
		f.Content = in.Content
		size := len(in.Content)
		f.SizeBytes = &size
		f.HasContent = true
	}
	if ct := in.ResolvedContentType(); ct != "" {
		f.ContentType = &ct
	}
	return *f, nil
}

func (m *memReportRepo) MarkArchived(ctx context.Context, id string, newPath string) (report.ReportFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[id]
	if !ok {
		return report.ReportFile{}, report.ErrReportFileNotFound
	}
	if stale := m.byPath(newPath); stale != nil && stale.ID != id {
		delete(m.files, stale.ID)
	}
	f.Archived = true
	f.Path = newPath
	return *f, nil
}

func (m *memReportRepo) GetByPath(ctx context.Context, path string) (*report.ReportFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f := m.byPath(path); f != nil {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (m *memReportRepo) GetByID(ctx context.Context, id string) (report.ReportFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return report.ReportFile{}, report.ErrReportFileNotFound
	}
	return *f, nil
}

func (m *memReportRepo) List(ctx context.Context, filter report.ReportFileFilter) ([]report.ReportFile, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []report.ReportFile
	for _, f := range m.files {
		if filter.Kind != nil && f.Kind != *filter.Kind {
			continue
		}
		if filter.OwnerID != nil && f.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Archived != nil && f.Archived != *filter.Archived {
			continue
		}
		cp := *f
		cp.Content = nil
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b report.ReportFile) int { return strings.Compare(a.ID, b.ID) })
	return out, int64(len(out)), nil
}

func (m *memReportRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// ---- idempotency keys ----

type memKeyRepo struct {
	mu   sync.Mutex
	keys map[string]*idempotency.Key
}

func (m *memKeyRepo) GetByKey(ctx context.Context, key string) (*idempotency.Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[key]; ok {
		cp := *k
		return &cp, nil
	}
	return nil, nil
}

func (m *memKeyRepo) GetByID(ctx context.Context, id string) (idempotency.Key, error) {
	return idempotency.Key{}, idempotency.ErrKeyNotFound
}

func (m *memKeyRepo) InsertStarted(ctx context.Context, key, endpoint string) (idempotency.Key, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[key]; ok {
		return idempotency.Key{}, false, nil
	}
	k := &idempotency.Key{ID: key, Key: key, Endpoint: endpoint, Status: idempotency.StatusStarted}
	m.keys[key] = k
	return *k, true, nil
}

func (m *memKeyRepo) RestartFailed(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[key]; ok && k.Status == idempotency.StatusFailed {
		k.Status = idempotency.StatusStarted
		return true, nil
	}
	return false, nil
}

func (m *memKeyRepo) MarkSucceeded(ctx context.Context, key string, resultPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key].Status = idempotency.StatusSucceeded
	m.keys[key].ResultPath = &resultPath
	return nil
}

func (m *memKeyRepo) MarkFailed(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key].Status = idempotency.StatusFailed
	return nil
}

func (m *memKeyRepo) FailStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *memKeyRepo) List(ctx context.Context, filter idempotency.KeyFilter) ([]idempotency.Key, int64, error) {
	return nil, 0, nil
}

// ---- storage / mail ----

// flakyStorage wraps local storage and fails copies into the given destinations.
type flakyStorage struct {
	storage.FileStorage
	failCopyTo map[string]bool
	uploads    int
}

func (f *flakyStorage) Upload(ctx context.Context, r io.Reader, path, contentType string) (string, error) {
	f.uploads++
	return f.FileStorage.Upload(ctx, r, path, contentType)
}

func (f *flakyStorage) Copy(ctx context.Context, src, dst string) error {
	if f.failCopyTo[dst] {
		return fmt.Errorf("permission denied: %s", dst)
	}
	return f.FileStorage.Copy(ctx, src, dst)
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []email.Message
	failFor  map[string]bool
	attempts int
}

func (f *fakeMailer) Send(ctx context.Context, msg email.Message) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failFor[msg.To] {
		return false
	}
	f.sent = append(f.sent, msg)
	return true
}

// ---- fixture ----

const (
	managerID = "0190a5b2-0000-7000-8000-000000000001"
	empA      = "0190a5b2-0000-7000-8000-00000000000a"
	empB      = "0190a5b2-0000-7000-8000-00000000000b"
	empC      = "0190a5b2-0000-7000-8000-00000000000c"
)

type fixture struct {
	svc       report.DeliveryService
	employees *fakeEmployeeRepo
	months    *fakeMonthRepo
	reports   *memReportRepo
	keys      *memKeyRepo
	storage   *flakyStorage
	mailer    *fakeMailer
}

func ptr[T any](v T) *T { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		managerID: {ID: managerID, FirstName: "Maria", LastName: "Popescu", Email: "maria@example.com", CNP: "2800101000001"},
		empA:      {ID: empA, FirstName: "Ana", LastName: "Ionescu", Email: "ana@example.com", CNP: "2900101000002", BaseSalary: dec("5000"), ManagerID: ptr(managerID), HireDate: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		empB:      {ID: empB, FirstName: "Bogdan", LastName: "Radu", Email: "bogdan@example.com", CNP: "1900101000003", BaseSalary: dec("4000"), ManagerID: ptr(managerID), HireDate: time.Date(2022, 7, 15, 0, 0, 0, 0, time.UTC)},
	}}

	f := &fixture{
		employees: employees,
		months: &fakeMonthRepo{months: map[period.Period]period.MonthInfo{
			{Year: 2025, Month: 6}: {ID: "m-2025-06", Year: 2025, Month: 6, WorkingDays: 20},
		}},
		reports: newMemReportRepo(),
		keys:    &memKeyRepo{keys: map[string]*idempotency.Key{}},
		storage: &flakyStorage{FileStorage: local, failCopyTo: map[string]bool{}},
		mailer:  &fakeMailer{failFor: map[string]bool{}},
	}

	aggregation := &fakeAggregation{employees: employees, rows: map[string][]payroll.EmployeeMonthSummary{
		managerID: {
			{EmployeeID: empA, FirstName: "Ana", LastName: "Ionescu", CNP: "2900101000002", BaseSalary: dec("5000"), BonusTotal: dec("300"), AdjustmentTotal: dec("0")},
			{EmployeeID: empB, FirstName: "Bogdan", LastName: "Radu", CNP: "1900101000003", BaseSalary: dec("4000"), BonusTotal: dec("0"), AdjustmentTotal: dec("-100"), VacationDays: 2},
		},
	}}

	f.svc = NewDeliveryService(
		config.DefaultReportsConfig(),
		employees,
		f.months,
		f.reports,
		aggregation,
		idempotencysvc.NewCoordinator(f.keys),
		f.storage,
		f.mailer,
	)
	return f
}

// addSubordinate adds a third direct report with no salary rows.
func (f *fixture) addSubordinate(id, email string) {
	f.employees.employees[id] = employee.Employee{
		ID: id, FirstName: "Cezar", LastName: "Dima", Email: email, CNP: "", BaseSalary: dec("3000"), ManagerID: ptr(managerID),
	}
}
