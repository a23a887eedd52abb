package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrManagerNotFound  = errors.New("manager not found")
	ErrSelfManager      = errors.New("employee cannot be their own manager")
)
