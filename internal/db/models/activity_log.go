package models

import "time"

// ActivityLog is the system-wide append-only record of privileged actions.
// Every capability-gated mutation writes exactly one entry in the same
// transaction as the mutation. Entries are only ever removed in bulk by a
// privileged purge with an age cutoff; gaps in IDs are tolerated.
type ActivityLog struct {
	// ID is the unique identifier for the entry.
	ID uint64 `gorm:"primaryKey"`
	// ActorID is the account that performed the action.
	ActorID uint64 `gorm:"column:actor_id;not null;index"`
	// Action is the capability name of the action (e.g., "complaint.transition").
	Action string `gorm:"size:64;not null;index"`
	// Description is a human-readable summary of what happened.
	Description string `gorm:"size:255"`
	// EntityType names the related entity, if any (e.g., "complaint").
	EntityType string `gorm:"size:64"`
	// EntityID is the related entity's ID, if any.
	EntityID *uint64 `gorm:"column:entity_id"`
	// CreatedAt is the timestamp of the action (managed by GORM).
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for the ActivityLog model.
// This overrides GORM's default pluralized table naming.
func (ActivityLog) TableName() string {
	return "activity_log"
}
