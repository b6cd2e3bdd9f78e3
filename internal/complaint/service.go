// Package complaint implements the complaint lifecycle: submission, the
// status state machine, assignment, and the append-only history that must
// agree with every mutation.
//
// Every mutation runs as one transaction: the complaint row, its history
// entry and the activity log entry commit together or not at all, so a
// reader never observes a status without its matching history.
package complaint

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/audit"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/scope"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/uniuri"
)

const (
	// StageStatus labels history entries created by status transitions.
	StageStatus = "Status"
	// StageAssignment labels history entries created by assignment changes.
	StageAssignment = "Assignment"
)

// Filters narrows a complaint listing. Filters only ever narrow the scope
// guard's predicate; they cannot widen it.
type Filters struct {
	Status       Status
	DepartmentID uint64
	AssigneeID   uint64
}

// Service provides the complaint operations exposed to the web layer.
type Service struct {
	db *gorm.DB
}

// NewService creates a new complaint service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit files a new complaint against a department. The complaint starts in
// New; submission is the only mutation a basic account ever performs.
func (s *Service) Submit(actor auth.Identity, departmentID uint64, category, detail string) (*models.Complaint, error) {
	if strings.TrimSpace(category) == "" || strings.TrimSpace(detail) == "" {
		return nil, fault.ErrValidation
	}

	var dept models.Department
	if err := s.db.First(&dept, departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("unknown department %d: %w", departmentID, fault.ErrValidation)
		}

		return nil, fault.Storage(err, "load department")
	}

	c := models.Complaint{
		Reference:    uniuri.NewRef(),
		DepartmentID: departmentID,
		SubmittedBy:  actor.ID,
		Category:     category,
		Detail:       detail,
		Status:       string(StatusNew),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return fault.Storage(err, "create complaint")
		}

		desc := fmt.Sprintf("submitted complaint %s against %s", c.Reference, dept.Name)

		return audit.Record(tx, actor.ID, auth.PermComplaintSubmit, desc, "complaint", &c.ID)
	})
	if err != nil {
		return nil, err
	}

	observeOperation("submit", "ok")

	return &c, nil
}

// Get returns a single complaint within the actor's scope.
func (s *Service) Get(actor auth.Identity, id uint64) (*models.Complaint, error) {
	var c models.Complaint

	err := s.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, scope.Deny(actor, true)
	}

	if err != nil {
		return nil, fault.Storage(err, "load complaint")
	}

	if !scope.CanView(actor, c) {
		return nil, scope.Deny(actor, false)
	}

	return &c, nil
}

// List returns the complaints visible to the actor, newest first. The scope
// guard's predicate is applied before any caller filter; a department admin
// naming a foreign department is rejected before the query runs.
func (s *Service) List(actor auth.Identity, f Filters) ([]models.Complaint, error) {
	if f.DepartmentID != 0 {
		if err := scope.RequireDepartment(actor, f.DepartmentID); err != nil {
			return nil, err
		}
	}

	tx := s.db.Model(&models.Complaint{}).Scopes(scope.ListFilter(actor))

	if f.Status != "" {
		tx = tx.Where("status = ?", string(f.Status))
	}

	if f.DepartmentID != 0 {
		tx = tx.Where("department_id = ?", f.DepartmentID)
	}

	if f.AssigneeID != 0 {
		tx = tx.Where("assignee_id = ?", f.AssigneeID)
	}

	var complaints []models.Complaint
	if err := tx.Order("id DESC").Find(&complaints).Error; err != nil {
		return nil, fault.Storage(err, "list complaints")
	}

	return complaints, nil
}

// Transition moves a complaint to a new status.
//
// The caller supplies the status it believes is current; if the stored
// status changed underneath it the operation fails with a Conflict and the
// caller must re-read and retry. On success exactly one history entry is
// appended in the same transaction as the status update.
func (s *Service) Transition(actor auth.Identity, id uint64, expected, next Status, remark string) (*models.Complaint, error) {
	if !KnownStatus(expected) || !KnownStatus(next) {
		return nil, fault.ErrValidation
	}

	var c models.Complaint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return scope.Deny(actor, true)
			}

			return fault.Storage(err, "load complaint")
		}

		if !scope.CanMutate(actor, c) {
			return scope.Deny(actor, false)
		}

		current := Status(c.Status)

		// Stale expectation first: a racing caller that lost must hear
		// Conflict and retry, whatever status it was trying to reach.
		if expected != current {
			return fault.ErrConflict
		}

		if next == current {
			// A client re-sending the current status must hear about it,
			// not be silently accepted as a refresh.
			return fault.ErrInvalidTransition
		}

		if !CanTransition(current, next) {
			return fmt.Errorf("no edge %s -> %s: %w", current, next, fault.ErrInvalidTransition)
		}

		updates := map[string]interface{}{
			"status": string(next),
		}

		// Resolving records the remark as the resolution. Closing keeps the
		// resolution already on file unless the closer supplies a new one.
		if next == StatusResolved || (next == StatusClosed && remark != "") {
			updates["resolution"] = remark
		}

		// The WHERE on the old status is the optimistic concurrency check:
		// of two racing transitions only one finds the row to update.
		res := tx.Model(&models.Complaint{}).
			Where("id = ? AND status = ?", id, string(current)).
			Updates(updates)
		if res.Error != nil {
			return fault.Storage(res.Error, "update complaint status")
		}

		if res.RowsAffected == 0 {
			return fault.ErrConflict
		}

		entry := models.ComplaintHistory{
			ComplaintID: c.ID,
			ActorID:     actor.ID,
			Stage:       StageStatus,
			OldStatus:   string(current),
			NewStatus:   string(next),
			Remark:      remark,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fault.Storage(err, "append history entry")
		}

		desc := fmt.Sprintf("complaint %s: %s -> %s", c.Reference, current, next)

		if err := audit.Record(tx, actor.ID, auth.PermComplaintTransition, desc, "complaint", &c.ID); err != nil {
			return err
		}

		c.Status = string(next)
		if r, ok := updates["resolution"]; ok {
			c.Resolution = r.(string)
		}

		return nil
	})
	if err != nil {
		observeOperation("transition", classify(err))
		return nil, err
	}

	observeOperation("transition", "ok")

	return &c, nil
}

// Assign attaches a responsible staff member to a complaint. The assignee
// must belong to the complaint's own department; cross-department assignment
// is rejected even for privileged actors. Re-assignment is permitted at any
// non-terminal status and is recorded in the history just like the first
// assignment; a complaint nobody works anymore cannot be assigned.
func (s *Service) Assign(actor auth.Identity, id, staffID uint64) (*models.Complaint, error) {
	var c models.Complaint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return scope.Deny(actor, true)
			}

			return fault.Storage(err, "load complaint")
		}

		if !scope.CanMutate(actor, c) {
			return scope.Deny(actor, false)
		}

		if Terminal(Status(c.Status)) {
			return fmt.Errorf("complaint is %s: %w", c.Status, fault.ErrInvalidTransition)
		}

		var assignee models.Staff
		if err := tx.First(&assignee, staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("unknown staff %d: %w", staffID, fault.ErrValidation)
			}

			return fault.Storage(err, "load assignee")
		}

		if !assignee.Active || assignee.DepartmentID != c.DepartmentID {
			return fmt.Errorf("staff %d is not on the department roster: %w", staffID, fault.ErrValidation)
		}

		remark := "assigned to " + assignee.FullName()

		if c.AssigneeID != nil {
			var previous models.Staff
			if err := tx.First(&previous, *c.AssigneeID).Error; err == nil {
				remark = fmt.Sprintf("reassigned from %s to %s", previous.FullName(), assignee.FullName())
			}
		}

		if err := tx.Model(&models.Complaint{}).
			Where("id = ?", c.ID).
			Update("assignee_id", staffID).Error; err != nil {
			return fault.Storage(err, "update assignee")
		}

		entry := models.ComplaintHistory{
			ComplaintID: c.ID,
			ActorID:     actor.ID,
			Stage:       StageAssignment,
			OldStatus:   c.Status,
			NewStatus:   c.Status,
			Remark:      remark,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fault.Storage(err, "append history entry")
		}

		desc := fmt.Sprintf("complaint %s %s", c.Reference, remark)

		if err := audit.Record(tx, actor.ID, auth.PermComplaintAssign, desc, "complaint", &c.ID); err != nil {
			return err
		}

		c.AssigneeID = &staffID

		return nil
	})
	if err != nil {
		observeOperation("assign", classify(err))
		return nil, err
	}

	observeOperation("assign", "ok")

	return &c, nil
}

// History returns the complaint's append-only history, oldest first.
// Insertion order is the display order; colliding timestamps are broken by
// ID, never re-sorted by status.
func (s *Service) History(actor auth.Identity, id uint64) ([]models.ComplaintHistory, error) {
	if _, err := s.Get(actor, id); err != nil {
		return nil, err
	}

	var entries []models.ComplaintHistory

	err := s.db.Where("complaint_id = ?", id).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, fault.Storage(err, "load history")
	}

	return entries, nil
}

// CountByStatus returns complaint counts per status within the actor's
// scope, for the dashboard.
func (s *Service) CountByStatus(actor auth.Identity) (map[Status]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	var rows []row

	err := s.db.Model(&models.Complaint{}).
		Scopes(scope.ListFilter(actor)).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fault.Storage(err, "count complaints")
	}

	counts := make(map[Status]int64, len(rows))
	for _, r := range rows {
		counts[Status(r.Status)] = r.Total
	}

	return counts, nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, fault.ErrAuthorization):
		return "authorization"
	case errors.Is(err, fault.ErrNotFound):
		return "not_found"
	case errors.Is(err, fault.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, fault.ErrConflict):
		return "conflict"
	case errors.Is(err, fault.ErrValidation):
		return "validation"
	default:
		return "storage"
	}
}
