// Package audit maintains the system-wide activity log: one append-only entry
// per capability-gated mutation. The entry is written inside the mutation's
// own transaction, so a mutation whose audit write fails does not happen.
package audit

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
)

// Filters narrows the activity log listing.
type Filters struct {
	ActorID uint64
	Action  string
	Since   time.Time
}

// Record appends one activity log entry using the caller's transaction.
// Callers must treat a returned error as fatal for the whole operation.
func Record(tx *gorm.DB, actorID uint64, action, description, entityType string, entityID *uint64) error {
	entry := models.ActivityLog{
		ActorID:     actorID,
		Action:      action,
		Description: description,
		EntityType:  entityType,
		EntityID:    entityID,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fault.Storage(err, "append activity log entry")
	}

	return nil
}

// List returns activity log entries, newest first. Only the privileged role
// may read the system-wide log.
func List(db *gorm.DB, actorRole models.StaffRole, f Filters) ([]models.ActivityLog, error) {
	if actorRole != models.RolePrivileged {
		return nil, fault.ErrAuthorization
	}

	tx := db.Model(&models.ActivityLog{})

	if f.ActorID != 0 {
		tx = tx.Where("actor_id = ?", f.ActorID)
	}

	if f.Action != "" {
		tx = tx.Where("action = ?", f.Action)
	}

	if !f.Since.IsZero() {
		tx = tx.Where("created_at >= ?", f.Since)
	}

	var entries []models.ActivityLog
	if err := tx.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, fault.Storage(err, "list activity log")
	}

	return entries, nil
}

// Purge bulk-deletes entries strictly older than the cutoff and records the
// purge itself as a new entry, in one transaction. Returns the number of
// entries deleted. Privileged only; the cutoff must lie in the past.
func Purge(db *gorm.DB, actorID uint64, actorRole models.StaffRole, cutoff time.Time) (int64, error) {
	if actorRole != models.RolePrivileged {
		return 0, fault.ErrAuthorization
	}

	if cutoff.IsZero() || cutoff.After(time.Now()) {
		return 0, fault.ErrValidation
	}

	var deleted int64

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
		if res.Error != nil {
			return fault.Storage(res.Error, "purge activity log")
		}

		deleted = res.RowsAffected

		desc := fmt.Sprintf("purged %d entries older than %s", deleted, cutoff.UTC().Format(time.RFC3339))

		return Record(tx, actorID, "activity.purge", desc, "activity_log", nil)
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
