package auth

import (
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

// Identity is the authenticated caller of a request: account id, role and
// optional home department. It is immutable for the duration of a request.
type Identity struct {
	ID           uint64
	Role         models.StaffRole
	DepartmentID uint64
}

// FromStaff projects a staff account into the request identity.
func FromStaff(s *models.Staff) Identity {
	return Identity{
		ID:           s.ID,
		Role:         s.Role,
		DepartmentID: s.DepartmentID,
	}
}

// Privileged reports whether the identity bypasses the permission matrix.
func (id Identity) Privileged() bool {
	return id.Role == models.RolePrivileged
}
