package model

// Role groups a default privilege set
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleMasterAdmin = "MASTER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleStaff       = "STAFF"
)

var DefaultRoles = []Role{
	{
		Code:        RoleMasterAdmin,
		Name:        "Master Administrator",
		Description: "Full access including transaction purge",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Catalog and stock management",
	},
	{
		Code:        RoleStaff,
		Name:        "Staff",
		Description: "Stock in/out and read access",
	},
}

// RolePrivilegeCodes lists the privileges granted to each role on seeding.
// MASTER_ADMIN is not listed: it always receives every privilege.
var RolePrivilegeCodes = map[string][]string{
	RoleAdmin: {
		PrivProductView, PrivProductCreate, PrivProductUpdate, PrivProductArchive,
		PrivTransactionView, PrivTransactionCreate, PrivDashboardView, PrivReportExport,
	},
	RoleStaff: {
		PrivProductView, PrivTransactionView, PrivTransactionCreate, PrivDashboardView,
	},
}
