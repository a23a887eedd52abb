package user

type Permission string

const (
	// Reports
	PermissionReportsView     Permission = "reports.view"
	PermissionReportsGenerate Permission = "reports.generate"
	PermissionReportsSend     Permission = "reports.send"

	// Team
	PermissionEmployeesView   Permission = "employees.view"
	PermissionEmployeesManage Permission = "employees.manage"

	// Operations
	PermissionIdempotencyView Permission = "idempotency.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionReportsView,
		PermissionReportsGenerate,
		PermissionReportsSend,
		PermissionEmployeesView,
		PermissionEmployeesManage,
		PermissionIdempotencyView,
	},
	RoleManager: {
		PermissionReportsView,
		PermissionReportsGenerate,
		PermissionReportsSend,
		PermissionEmployeesView,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
