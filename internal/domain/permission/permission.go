// Package permission holds the role to permission table consulted before every protected operation.
package permission

import (
	"maps"
	"slices"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// Permission is a grant token following the action_resource convention
type Permission string

// Permission tokens
const (
	ViewDashboard             Permission = "view_dashboard"
	ViewTransactions          Permission = "view_transactions"
	CreateTransactions        Permission = "create_transactions"
	ValidateTransactions      Permission = "validate_transactions"
	ExecuteTransactions       Permission = "execute_transactions"
	CloseTransactions         Permission = "close_transactions"
	RequestDeleteTransactions Permission = "request_delete_transactions"
	ApproveDeleteTransactions Permission = "approve_delete_transactions"
	ViewCashSettlements       Permission = "view_cash_settlements"
	CreateCashSettlements     Permission = "create_cash_settlements"
	ImportRiaCSV              Permission = "import_ria_csv"
	ViewRiaDashboard          Permission = "view_ria_dashboard"
	ViewCards                 Permission = "view_cards"
	ManageCards               Permission = "manage_cards"
	ViewUsers                 Permission = "view_users"
	ManageUsers               Permission = "manage_users"
	ViewAgencies              Permission = "view_agencies"
	ManageAgencies            Permission = "manage_agencies"
	ViewSettings              Permission = "view_settings"
	ManageSettings            Permission = "manage_settings"
	ViewReports               Permission = "view_reports"
	ExportReports             Permission = "export_reports"
	ViewExpenses              Permission = "view_expenses"
	CreateExpenses            Permission = "create_expenses"
)

// All returns every known permission token
func All() []Permission {
	return []Permission{
		ViewDashboard, ViewTransactions, CreateTransactions, ValidateTransactions,
		ExecuteTransactions, CloseTransactions, RequestDeleteTransactions, ApproveDeleteTransactions,
		ViewCashSettlements, CreateCashSettlements, ImportRiaCSV, ViewRiaDashboard,
		ViewCards, ManageCards, ViewUsers, ManageUsers,
		ViewAgencies, ManageAgencies, ViewSettings, ManageSettings,
		ViewReports, ExportReports, ViewExpenses, CreateExpenses,
	}
}

// IsKnown reports whether p belongs to the closed token set
func IsKnown(p Permission) bool {
	return slices.Contains(All(), p)
}

type grantSet map[Permission]struct{}

// Table maps each role to the permissions it holds. A Table is never mutated after construction.
type Table struct {
	grants map[entity.Role]grantSet
}

// defaultGrants is the back-office permission matrix. super_admin holds every token.
var defaultGrants = map[entity.Role][]Permission{
	entity.RoleDirector: {
		ViewDashboard, ViewTransactions, ApproveDeleteTransactions,
		ViewCashSettlements, ViewRiaDashboard, ViewCards,
		ViewUsers, ManageUsers, ViewAgencies, ManageAgencies, ViewSettings,
		ViewReports, ExportReports, ViewExpenses,
	},
	entity.RoleAccounting: {
		ViewDashboard, ViewTransactions, ApproveDeleteTransactions,
		ViewCashSettlements, CreateCashSettlements, ImportRiaCSV, ViewRiaDashboard,
		ViewReports, ExportReports, ViewExpenses, CreateExpenses,
	},
	entity.RoleCashier: {
		ViewDashboard, ViewTransactions, CreateTransactions, CloseTransactions,
		RequestDeleteTransactions, ViewCashSettlements, ViewCards,
		ViewExpenses, CreateExpenses,
	},
	entity.RoleAuditor: {
		ViewDashboard, ViewTransactions, ValidateTransactions,
		ViewRiaDashboard, ViewReports,
	},
	entity.RoleDelegate: {
		ViewDashboard, ViewTransactions, ApproveDeleteTransactions,
		ViewCashSettlements, ViewUsers, ViewAgencies, ViewReports,
	},
	entity.RoleExecutor: {
		ViewDashboard, ViewTransactions, ExecuteTransactions,
	},
	entity.RoleCashManager: {
		ViewDashboard, ViewCashSettlements, CreateCashSettlements,
		ViewCards, ManageCards, ViewReports,
	},
}

// NewTable builds the default permission table
func NewTable() *Table {
	t := &Table{grants: make(map[entity.Role]grantSet, len(entity.AllRoles()))}
	t.grants[entity.RoleSuperAdmin] = toSet(All())
	for role, perms := range defaultGrants {
		t.grants[role] = toSet(perms)
	}
	return t
}

func toSet(perms []Permission) grantSet {
	set := make(grantSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether role holds permission. Unknown roles and tokens are refused.
func (t *Table) HasPermission(role entity.Role, p Permission) bool {
	if t == nil {
		return false
	}
	_, ok := t.grants[role][p]
	return ok
}

// Permissions returns the sorted permissions of role. The slice is a copy.
func (t *Table) Permissions(role entity.Role) []Permission {
	perms := slices.Collect(maps.Keys(t.grants[role]))
	slices.Sort(perms)
	return perms
}

// WithGrants returns a new table where role additionally holds perms.
// Unknown roles and tokens are ignored; the receiver is left untouched.
func (t *Table) WithGrants(role entity.Role, perms ...Permission) *Table {
	next := &Table{grants: make(map[entity.Role]grantSet, len(t.grants))}
	for r, set := range t.grants {
		next.grants[r] = maps.Clone(set)
	}
	if !entity.IsValidRole(string(role)) {
		return next
	}
	if next.grants[role] == nil {
		next.grants[role] = grantSet{}
	}
	for _, p := range perms {
		if IsKnown(p) {
			next.grants[role][p] = struct{}{}
		}
	}
	return next
}
