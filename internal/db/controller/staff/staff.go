// Package staff provides read operations for staff rosters.
// Account creation and password handling live in the auth package; the
// controller only answers roster queries for lists and assignment forms.
package staff

import (
	"errors"

	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

var (
	// ErrStaffNotFound is returned when a staff member is not found.
	ErrStaffNotFound = errors.New("staff member not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a staff member by ID.
func GetByID(db *gorm.DB, id uint64) (*models.Staff, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var member models.Staff
	result := db.First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, result.Error
	}

	return &member, nil
}

// GetByUsername retrieves a staff member by username.
func GetByUsername(db *gorm.DB, username string) (*models.Staff, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var member models.Staff
	result := db.Where("username = ?", username).First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, result.Error
	}

	return &member, nil
}

// ListScoped retrieves staff members matching the given visibility scope,
// ordered by username. The scope comes from the scope guard; this package
// never derives visibility itself.
func ListScoped(db *gorm.DB, visibility func(*gorm.DB) *gorm.DB) ([]models.Staff, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var members []models.Staff
	result := db.Scopes(visibility).Order("username ASC").Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

// Roster retrieves the active staff members of one department, ordered by
// username. Used by the assignment form; assignment never crosses rosters.
func Roster(db *gorm.DB, departmentID uint64) ([]models.Staff, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var members []models.Staff
	result := db.Where("department_id = ? AND active = ?", departmentID, true).
		Order("username ASC").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}
