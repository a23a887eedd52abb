package user

type Role string

const (
	RoleOwner    Role = "owner"    // Payroll administrator - full access
	RoleManager  Role = "manager"  // Can generate and send reports for their team
	RoleEmployee Role = "employee" // Regular employee
)

// IsManager reports whether the role may trigger report generation.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
