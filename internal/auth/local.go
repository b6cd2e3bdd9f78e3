package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/audit"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

// LocalProvider handles local database authentication. It is the excluded
// credential collaborator of the core: everything past login only ever sees
// the Identity it produces.
type LocalProvider struct {
	db *gorm.DB
}

const whereID = "id = ?"

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates an account against the local database.
func (p *LocalProvider) Authenticate(username, password string) (*models.Staff, error) {
	var account models.Staff

	err := p.db.Where("username = ?", username).First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	if !account.Active {
		return nil, ErrAccountDisabled
	}

	if !account.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &account, nil
}

// CreateAccount creates a new staff account. Department admins must be given
// a home department; the department carried by the identity is what scopes
// every later operation. Like every other staff edit, the creation and its
// activity log entry commit in one transaction.
func (p *LocalProvider) CreateAccount(
	actor Identity,
	username, email, password, firstName, lastName string,
	role models.StaffRole,
	departmentID uint64,
) (*models.Staff, error) {
	if role == models.RoleDepartmentAdmin && departmentID == 0 {
		return nil, ErrDepartmentRequired
	}

	var existing models.Staff

	err := p.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	account := models.Staff{
		Active:       true,
		Username:     username,
		Email:        email,
		Password:     models.HashPassword(password),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		DepartmentID: departmentID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		desc := fmt.Sprintf("created %s account %s", role, username)

		return audit.Record(tx, actor.ID, PermStaffManage, desc, "staff", &account.ID)
	})
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// ChangePassword changes an account's password.
func (p *LocalProvider) ChangePassword(accountID uint64, oldPassword, newPassword string) error {
	var account models.Staff
	if err := p.db.Where(whereID, accountID).First(&account).Error; err != nil {
		return fmt.Errorf("account not found: %w", err)
	}

	if !account.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	return p.db.Model(&models.Staff{}).
		Where(whereID, accountID).
		Update("password", models.HashPassword(newPassword)).Error
}

// ResetPassword resets an account's password without the old one (admin
// function). The reset is recorded in the activity log atomically with the
// password update.
func (p *LocalProvider) ResetPassword(actor Identity, accountID uint64, newPassword string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, accountID)
		if err != nil {
			return err
		}

		err = tx.Model(&models.Staff{}).
			Where(whereID, accountID).
			Update("password", models.HashPassword(newPassword)).Error
		if err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}

		desc := "reset password of staff account " + account.Username

		return audit.Record(tx, actor.ID, PermStaffManage, desc, "staff", &account.ID)
	})
}

// ActivateAccount activates a staff account.
func (p *LocalProvider) ActivateAccount(actor Identity, accountID uint64) error {
	return p.setActive(actor, accountID, true)
}

// DeactivateAccount deactivates a staff account without deleting it.
func (p *LocalProvider) DeactivateAccount(actor Identity, accountID uint64) error {
	return p.setActive(actor, accountID, false)
}

func (p *LocalProvider) setActive(actor Identity, accountID uint64, active bool) error {
	verb := "deactivated"
	if active {
		verb = "activated"
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, accountID)
		if err != nil {
			return err
		}

		err = tx.Model(&models.Staff{}).
			Where(whereID, accountID).
			Update("active", active).Error
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}

		desc := fmt.Sprintf("%s staff account %s", verb, account.Username)

		return audit.Record(tx, actor.ID, PermStaffManage, desc, "staff", &account.ID)
	})
}

func loadAccount(tx *gorm.DB, accountID uint64) (*models.Staff, error) {
	var account models.Staff

	err := tx.Where(whereID, accountID).First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return &account, nil
}

// GetByID retrieves an account by ID.
func (p *LocalProvider) GetByID(accountID uint64) (*models.Staff, error) {
	var account models.Staff
	if err := p.db.First(&account, accountID).Error; err != nil {
		return nil, err
	}

	return &account, nil
}
