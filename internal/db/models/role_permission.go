package models

import "time"

// RolePermission is one cell of the permission matrix: whether a role holds
// a capability. Unique per (role, capability) pair; pairs without a row
// default to not granted. The privileged role never consults this table.
type RolePermission struct {
	// ID is the unique identifier for the matrix cell.
	ID uint64 `gorm:"primaryKey"`
	// RoleName is the role this cell applies to.
	RoleName StaffRole `gorm:"column:role_name;type:varchar(32);not null;uniqueIndex:idx_role_capability"`
	// Capability is the capability name in resource.action format.
	Capability string `gorm:"size:64;not null;uniqueIndex:idx_role_capability"`
	// Granted indicates whether the role holds the capability.
	Granted bool `gorm:"not null;default:false"`
	// CreatedAt is the timestamp when the cell was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the cell was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RolePermission model.
// This overrides GORM's default pluralized table naming.
func (RolePermission) TableName() string {
	return "role_permissions"
}
