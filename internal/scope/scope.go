// Package scope computes which rows an identity may read or mutate.
//
// Department scoping used to be re-implemented ad hoc in every handler of the
// old portal; here it is one set of pure predicates every entry point calls.
// The guard never touches storage itself: for list operations it hands back a
// filter the caller pushes into the query.
package scope

import (
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
)

// CanView reports whether the identity may read the complaint.
// Privileged sees everything, department admins their own department,
// basic accounts their own submissions.
func CanView(id auth.Identity, c models.Complaint) bool {
	switch id.Role {
	case models.RolePrivileged:
		return true
	case models.RoleDepartmentAdmin:
		return c.DepartmentID == id.DepartmentID
	case models.RoleBasic:
		return c.SubmittedBy == id.ID
	}

	return false
}

// CanMutate reports whether the identity may mutate the complaint.
// Basic accounts never mutate existing complaints; they only submit new ones.
func CanMutate(id auth.Identity, c models.Complaint) bool {
	switch id.Role {
	case models.RolePrivileged:
		return true
	case models.RoleDepartmentAdmin:
		return c.DepartmentID == id.DepartmentID
	}

	return false
}

// ListFilter returns the row-visibility predicate for complaint lists as a
// gorm scope. Caller-supplied filters are applied on top and can only narrow
// the result, never widen it.
func ListFilter(id auth.Identity) func(*gorm.DB) *gorm.DB {
	switch id.Role {
	case models.RolePrivileged:
		return func(tx *gorm.DB) *gorm.DB { return tx }
	case models.RoleDepartmentAdmin:
		deptID := id.DepartmentID
		return func(tx *gorm.DB) *gorm.DB { return tx.Where("department_id = ?", deptID) }
	default:
		submitterID := id.ID
		return func(tx *gorm.DB) *gorm.DB { return tx.Where("submitted_by = ?", submitterID) }
	}
}

// StaffFilter returns the row-visibility predicate for staff lists.
// Department admins only ever see their own roster.
func StaffFilter(id auth.Identity) func(*gorm.DB) *gorm.DB {
	switch id.Role {
	case models.RolePrivileged:
		return func(tx *gorm.DB) *gorm.DB { return tx }
	case models.RoleDepartmentAdmin:
		deptID := id.DepartmentID
		return func(tx *gorm.DB) *gorm.DB { return tx.Where("department_id = ?", deptID) }
	default:
		accountID := id.ID
		return func(tx *gorm.DB) *gorm.DB { return tx.Where("id = ?", accountID) }
	}
}

// RequireDepartment rejects a request naming a department outside the
// identity's scope. The department carried by the identity is authoritative;
// a client-supplied department id never widens it.
func RequireDepartment(id auth.Identity, departmentID uint64) error {
	switch id.Role {
	case models.RolePrivileged:
		return nil
	case models.RoleDepartmentAdmin:
		if departmentID == id.DepartmentID {
			return nil
		}
	case models.RoleBasic:
		// the submitted-by predicate already pins every row a basic account
		// can see; a department filter only ever narrows that set
		return nil
	}

	return fault.ErrAuthorization
}

// Deny translates a failed guard check into the taxonomy without leaking
// existence: scoped actors get the same error whether the target is missing
// or merely out of reach, only unrestricted actors learn it does not exist.
func Deny(id auth.Identity, missing bool) error {
	if missing && id.Role == models.RolePrivileged {
		return fault.ErrNotFound
	}

	return fault.ErrAuthorization
}
