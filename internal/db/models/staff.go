package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// StaffRole represents the role assigned to a staff account.
// Exactly three roles exist; they are fixed, only their capability
// grants in the role_permissions table change.
type StaffRole string

const (
	// RoleBasic can submit complaints and read their own submissions.
	RoleBasic StaffRole = "basic"
	// RolePrivileged holds every capability and bypasses the permission matrix.
	RolePrivileged StaffRole = "privileged"
	// RoleDepartmentAdmin manages complaints and staff of their own department only.
	RoleDepartmentAdmin StaffRole = "department_admin"
)

// KnownRole reports whether the given role is one of the three defined roles.
func KnownRole(r StaffRole) bool {
	return r == RoleBasic || r == RolePrivileged || r == RoleDepartmentAdmin
}

// Staff represents an account in the portal: a complainant, a department
// administrator, or a privileged operator. Department administrators must
// have a home department; for the other roles it is optional.
type Staff struct {
	// ID is the unique identifier for the staff member.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the account can log in.
	Active bool
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null"`
	// Email is the staff member's email address.
	Email string `gorm:"size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// FirstName is the staff member's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the staff member's last or family name.
	LastName string `gorm:"size:100"`
	// Role is the role assigned to this account.
	Role StaffRole `gorm:"type:varchar(32);not null;default:'basic'"`
	// DepartmentID is the home department. Required for department admins,
	// zero means no department.
	DepartmentID uint64 `gorm:"column:department_id;index"`
	// CreatedAt is the timestamp when the account was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the account was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the Staff model.
// This overrides GORM's default pluralized table naming.
func (Staff) TableName() string {
	return "staff"
}

// FullName returns the display name for history remarks and lists.
func (s *Staff) FullName() string {
	switch {
	case s.FirstName == "" && s.LastName == "":
		return s.Username
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}

	return s.FirstName + " " + s.LastName
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the stored hash.
// It uses constant-time comparison to prevent timing attacks.
// Returns true if the password matches, false otherwise.
func (s *Staff) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, s.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
