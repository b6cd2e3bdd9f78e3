package models

import "time"

// ComplaintHistory is one append-only audit row tied to a single complaint.
// Exactly one row is created per accepted transition or assignment change,
// in the same transaction as the mutation itself. Rows are never edited or
// removed; replaying them in ID order reconstructs the complaint's status.
type ComplaintHistory struct {
	// ID is the unique identifier and the insertion order. Display order is
	// oldest first; timestamp collisions are broken by ID, never re-sorted.
	ID uint64 `gorm:"primaryKey"`
	// ComplaintID is the complaint this entry belongs to.
	ComplaintID uint64 `gorm:"column:complaint_id;not null;index"`
	// ActorID is the account that performed the mutation.
	ActorID uint64 `gorm:"column:actor_id;not null"`
	// Stage labels the kind of mutation: "Status" or "Assignment".
	Stage string `gorm:"size:32;not null"`
	// OldStatus is the status before the mutation.
	OldStatus string `gorm:"size:32;not null"`
	// NewStatus is the status after the mutation. Equal to OldStatus for
	// assignment changes.
	NewStatus string `gorm:"size:32;not null"`
	// Remark is the free-text note supplied with the mutation.
	Remark string `gorm:"type:text"`
	// CreatedAt is the timestamp of the mutation (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ComplaintHistory model.
// This overrides GORM's default pluralized table naming.
func (ComplaintHistory) TableName() string {
	return "complaint_history"
}
