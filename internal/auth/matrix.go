package auth

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/audit"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
)

const whereRoleAndCapability = "role_name = ? AND capability = ?"

// Matrix is the permission matrix service: it answers whether a role holds a
// capability and lets a privileged actor replace a role's grant set.
type Matrix struct {
	db *gorm.DB
}

// NewMatrix creates a new permission matrix service.
func NewMatrix(db *gorm.DB) *Matrix {
	return &Matrix{db: db}
}

// IsGranted checks whether a role holds a capability.
// The privileged role always holds every capability without a lookup;
// for other roles a missing matrix cell means not granted.
func (m *Matrix) IsGranted(role models.StaffRole, capability string) (bool, error) {
	if role == models.RolePrivileged {
		return true, nil
	}

	var cell models.RolePermission

	err := m.db.Where(whereRoleAndCapability, role, capability).First(&cell).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fault.Storage(err, "check capability")
	}

	return cell.Granted, nil
}

// Snapshot returns the full grant map for a role in a single query.
// Readers take one snapshot per request instead of querying per check, so a
// concurrent SetCapabilities never flips grants halfway through a request.
func (m *Matrix) Snapshot(role models.StaffRole) (map[string]bool, error) {
	grants := make(map[string]bool, len(Capabilities))

	if role == models.RolePrivileged {
		for _, c := range Capabilities {
			grants[c] = true
		}

		return grants, nil
	}

	var cells []models.RolePermission
	if err := m.db.Where("role_name = ?", role).Find(&cells).Error; err != nil {
		return nil, fault.Storage(err, "snapshot permissions")
	}

	for _, c := range Capabilities {
		grants[c] = false
	}

	for _, cell := range cells {
		if KnownCapability(cell.Capability) {
			grants[cell.Capability] = cell.Granted
		}
	}

	return grants, nil
}

// GetPermissions returns the grant map of a role over all known capabilities.
func (m *Matrix) GetPermissions(role models.StaffRole) (map[string]bool, error) {
	return m.Snapshot(role)
}

// SetCapabilities replaces the full capability set of a role atomically:
// every known capability is cleared, then the supplied set is granted.
// Partial updates are done by the caller supplying the complete desired set.
// Only a privileged actor may edit the matrix, and the privileged role
// itself cannot be edited since it bypasses the matrix entirely.
func (m *Matrix) SetCapabilities(actor Identity, role models.StaffRole, capabilities []string) error {
	if !actor.Privileged() {
		return fault.ErrAuthorization
	}

	if !models.KnownRole(role) || role == models.RolePrivileged {
		return fault.ErrValidation
	}

	for _, c := range capabilities {
		if !KnownCapability(c) {
			return fmt.Errorf("unknown capability %q: %w", c, fault.ErrValidation)
		}
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		// Clear first, then grant: the replace must cover capabilities the
		// caller omitted, not just the ones it supplied.
		for _, c := range Capabilities {
			cell := models.RolePermission{RoleName: role, Capability: c, Granted: false}

			err := tx.Where(whereRoleAndCapability, role, c).
				Assign("granted", false).
				FirstOrCreate(&cell).Error
			if err != nil {
				return fault.Storage(err, "clear capability")
			}
		}

		for _, c := range capabilities {
			err := tx.Model(&models.RolePermission{}).
				Where(whereRoleAndCapability, role, c).
				Update("granted", true).Error
			if err != nil {
				return fault.Storage(err, "grant capability")
			}
		}

		desc := fmt.Sprintf("set %s capabilities to [%s]", role, strings.Join(capabilities, ", "))

		return audit.Record(tx, actor.ID, PermPermissionManage, desc, "role", nil)
	})
}
