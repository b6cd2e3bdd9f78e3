package models

import "time"

// Complaint represents a complaint filed against a hospital department.
// Complaints are created through submission and afterwards mutated only by
// status transitions and assignment changes; they are never hard-deleted,
// the Closed and Rejected statuses stand in for logical deletion.
type Complaint struct {
	// ID is the unique identifier for the complaint.
	ID uint64 `gorm:"primaryKey"`
	// Reference is a short public code the complainant can quote when
	// following up (e.g., on the phone).
	Reference string `gorm:"unique;size:16;not null"`
	// DepartmentID is the owning department. Immutable after creation.
	DepartmentID uint64 `gorm:"column:department_id;not null;index"`
	// SubmittedBy is the account that filed the complaint.
	SubmittedBy uint64 `gorm:"column:submitted_by;not null;index"`
	// Category is the complaint type chosen on the submission form
	// (e.g., "waiting time", "staff conduct", "billing").
	Category string `gorm:"size:100;not null"`
	// Detail is the free-text description of the complaint.
	Detail string `gorm:"type:text"`
	// Status is the current lifecycle status. Mutated only through the
	// lifecycle service so that every change lands in complaint_history.
	Status string `gorm:"size:32;not null;index"`
	// AssigneeID is the staff member responsible for the complaint, if any.
	AssigneeID *uint64 `gorm:"column:assignee_id;index"`
	// Resolution is the closing text recorded when the complaint is resolved.
	Resolution string `gorm:"type:text"`
	// CreatedAt is the timestamp when the complaint was filed (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp of the last accepted mutation (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Complaint model.
// This overrides GORM's default pluralized table naming.
func (Complaint) TableName() string {
	return "complaints"
}
