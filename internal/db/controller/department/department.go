// Package department provides CRUD operations for managing hospital departments.
package department

import (
	"errors"

	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrDepartmentNotFound is returned when a department is not found.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrDepartmentNameEmpty is returned when attempting to create/update a department with an empty name.
	ErrDepartmentNameEmpty = errors.New("department name cannot be empty")
	// ErrDepartmentAlreadyExists is returned when attempting to create a department that already exists.
	ErrDepartmentAlreadyExists = errors.New("department already exists")
	// ErrDepartmentInUse is returned when attempting to delete a department that still owns complaints or staff.
	ErrDepartmentInUse = errors.New("department still has complaints or staff")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a department by its name.
func Get(db *gorm.DB, name string) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrDepartmentNameEmpty
	}

	var dept models.Department
	result := db.Where(nameQueryPattern, name).First(&dept)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, result.Error
	}

	return &dept, nil
}

// GetByID retrieves a department by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var dept models.Department
	result := db.First(&dept, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, result.Error
	}

	return &dept, nil
}

// GetAll retrieves all departments ordered by name.
func GetAll(db *gorm.DB) ([]models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var depts []models.Department
	result := db.Order("name ASC").Find(&depts)
	if result.Error != nil {
		return nil, result.Error
	}

	return depts, nil
}

// Create creates a new department in the database.
func Create(db *gorm.DB, name, description string) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrDepartmentNameEmpty
	}

	// Check if department already exists
	var existing models.Department
	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrDepartmentAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	dept := &models.Department{
		Name:        name,
		Description: description,
	}

	result = db.Create(dept)
	if result.Error != nil {
		return nil, result.Error
	}

	return dept, nil
}

// Update updates an existing department by ID.
func Update(db *gorm.DB, id uint64, name, description string) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrDepartmentNameEmpty
	}

	var dept models.Department
	result := db.First(&dept, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, result.Error
	}

	dept.Name = name
	dept.Description = description

	result = db.Save(&dept)
	if result.Error != nil {
		return nil, result.Error
	}

	return &dept, nil
}

// Delete deletes a department by ID. Departments that still own complaints
// or staff cannot be deleted; complaints keep their department forever.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	var complaintCount int64
	if err := db.Model(&models.Complaint{}).Where("department_id = ?", id).Count(&complaintCount).Error; err != nil {
		return err
	}

	var staffCount int64
	if err := db.Model(&models.Staff{}).Where("department_id = ?", id).Count(&staffCount).Error; err != nil {
		return err
	}

	if complaintCount > 0 || staffCount > 0 {
		return ErrDepartmentInUse
	}

	result := db.Delete(&models.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}
