package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleManager, PermissionReportsSend))
	assert.False(t, HasPermission(RoleManager, PermissionIdempotencyView))
	assert.True(t, HasPermission(RoleOwner, PermissionIdempotencyView))
	assert.True(t, HasPermission(RoleOwner, PermissionEmployeesManage))
	assert.False(t, HasPermission(RoleManager, PermissionEmployeesManage))
	assert.False(t, HasPermission(RoleEmployee, PermissionReportsView))
	assert.False(t, HasPermission(Role("unknown"), PermissionReportsView))
}

func TestRole_IsManager(t *testing.T) {
	assert.True(t, RoleManager.IsManager())
	assert.True(t, RoleOwner.IsManager())
	assert.False(t, RoleEmployee.IsManager())
}
