package entity

// Role is the closed set of back-office roles
type Role string

// Roles
const (
	RoleSuperAdmin  Role = "super_admin"
	RoleDirector    Role = "director"
	RoleAccounting  Role = "accounting"
	RoleCashier     Role = "cashier"
	RoleAuditor     Role = "auditor"
	RoleDelegate    Role = "delegate"
	RoleExecutor    Role = "executor"
	RoleCashManager Role = "cash_manager"
)

// AllRoles lists every role in display order
func AllRoles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleDirector,
		RoleAccounting,
		RoleCashier,
		RoleAuditor,
		RoleDelegate,
		RoleExecutor,
		RoleCashManager,
	}
}

// IsValidRole reports whether role is part of the role enumeration
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
