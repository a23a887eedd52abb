package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, first_name, last_name, email, cnp, hire_date, base_salary, manager_id, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.CNP, &e.HireDate,
		&e.BaseSalary, &e.ManagerID, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return e, nil
}

// ListSubordinates implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListSubordinates(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE manager_id = $1 ORDER BY id`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subordinates of %s: %w", managerID, err)
	}
	defer rows.Close()

	var subordinates []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		subordinates = append(subordinates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subordinates: %w", err)
	}
	return subordinates, nil
}

// SetManager implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetManager(ctx context.Context, employeeID string, managerID *string) error {
	if err := employee.ValidateManager(employeeID, managerID); err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET manager_id = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, managerID, employeeID)
	if err != nil {
		if _, ok := constraintViolation(err, pgCheckViolation); ok {
			return employee.ErrSelfManager
		}
		if _, ok := constraintViolation(err, pgForeignKey); ok {
			return employee.ErrManagerNotFound
		}
		return fmt.Errorf("failed to set manager for employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
