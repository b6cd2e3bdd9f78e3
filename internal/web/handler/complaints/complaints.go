// Package complaints provides the web handlers for the complaint intake and
// tracking pages: listing, submission, detail view, lifecycle transitions and
// assignment.
package complaints

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/complaint"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/controller/department"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/controller/staff"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/handler"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/navigation"
)

const (
	// Path is the base path of the complaint pages.
	Path = handler.RootPath + "complaints"

	// ListTemplateName is the name of the complaint list template.
	ListTemplateName = "complaints/list"

	// FormTemplateName is the name of the submission form template.
	FormTemplateName = "complaints/form"

	// ViewTemplateName is the name of the detail page template.
	ViewTemplateName = "complaints/view"
)

// submitForm carries a new complaint submission.
type submitForm struct {
	DepartmentID uint64 `form:"department_id" validate:"required"`
	Category     string `form:"category"      validate:"required,max=64"`
	Detail       string `form:"detail"        validate:"required"`
}

var validate = validator.New()

// transitionForm carries a requested lifecycle transition. Expected is the
// status the submitter saw when the page was rendered; a mismatch with the
// stored status means someone else changed the complaint first.
type transitionForm struct {
	Expected   string `form:"expected"`
	Next       string `form:"next"`
	Remark     string `form:"remark"`
	Resolution string `form:"resolution"`
}

// assignForm carries an assignment request.
type assignForm struct {
	StaffID uint64 `form:"staff_id"`
}

// Service is the complaints handler service.
type Service struct {
	cfg        *config.Config
	db         *gorm.DB
	complaints *complaint.Service
}

// Handler is the complaints handler.
var Handler = Service{}

// Init initializes the complaints handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, matrix *auth.Matrix) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.complaints = complaint.NewService(db)

	app.Get(Path,
		auth.RequireCapability(matrix, auth.PermComplaintRead),
		s.List,
	)
	app.Get(Path+"/export",
		auth.RequireCapability(matrix, auth.PermReportExport),
		s.Export,
	)
	app.Get(Path+"/new",
		auth.RequireCapability(matrix, auth.PermComplaintSubmit),
		s.NewForm,
	)
	app.Post(Path,
		auth.RequireCapability(matrix, auth.PermComplaintSubmit),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequireCapability(matrix, auth.PermComplaintRead),
		s.View,
	)
	app.Post(Path+"/:id/status",
		auth.RequireCapability(matrix, auth.PermComplaintTransition),
		s.Transition,
	)
	app.Post(Path+"/:id/assign",
		auth.RequireCapability(matrix, auth.PermComplaintAssign),
		s.Assign,
	)
}

// List renders the scoped complaint list with optional filters.
func (s *Service) List(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	filters := complaint.Filters{
		Status:       complaint.Status(c.Query("status")),
		DepartmentID: uint64(c.QueryInt("department")), //nolint:gosec
		AssigneeID:   uint64(c.QueryInt("assignee")),   //nolint:gosec
	}

	items, err := s.complaints.List(identity, filters)
	if err != nil {
		return handler.Fail(c, err)
	}

	departments, err := department.GetAll(s.db)
	if err != nil {
		return handler.Fail(c, fault.Storage(err, "list departments"))
	}

	nav := navigation.NewContext("Complaints", "complaints", "list").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Complaints", Path, true)

	return c.Render(ListTemplateName, fiber.Map{
		"Navigation":  nav,
		"Complaints":  items,
		"Departments": departments,
		"Statuses":    complaint.Statuses,
		"Filters":     filters,
	}, handler.BaseLayout)
}

// NewForm renders the complaint submission form.
func (s *Service) NewForm(c *fiber.Ctx) error {
	departments, err := department.GetAll(s.db)
	if err != nil {
		return handler.Fail(c, fault.Storage(err, "list departments"))
	}

	nav := navigation.NewContext("New Complaint", "complaints", "new").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Complaints", Path, false).
		AddBreadcrumb("New", Path+"/new", true)

	return c.Render(FormTemplateName, fiber.Map{
		"Navigation":  nav,
		"Departments": departments,
	}, handler.BaseLayout)
}

// Create handles the submission form.
func (s *Service) Create(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	form := new(submitForm)
	if err := c.BodyParser(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	if err := validate.Struct(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	created, err := s.complaints.Submit(identity, form.DepartmentID, form.Category, form.Detail)
	if err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Uint64("complaint_id", created.ID).
		Str("reference", created.Reference).
		Msg("Complaint submitted")

	return c.Redirect(Path + "/" + strconv.FormatUint(created.ID, 10))
}

// View renders the complaint detail page with its history trail and, for
// actors who may mutate it, the transition and assignment controls.
func (s *Service) View(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.Fail(c, fault.ErrNotFound)
	}

	item, err := s.complaints.Get(identity, id)
	if err != nil {
		return handler.Fail(c, err)
	}

	history, err := s.complaints.History(identity, id)
	if err != nil {
		return handler.Fail(c, err)
	}

	// Roster of active staff in the owning department, for the assignment
	// dropdown. Empty for actors who cannot assign anyway.
	var roster []models.Staff

	if identity.Role != models.RoleBasic {
		roster, err = staff.Roster(s.db, item.DepartmentID)
		if err != nil {
			return handler.Fail(c, fault.Storage(err, "load department roster"))
		}
	}

	nav := navigation.NewContext(item.Reference, "complaints", "view").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Complaints", Path, false).
		AddBreadcrumb(item.Reference, Path+"/"+strconv.FormatUint(id, 10), true)

	return c.Render(ViewTemplateName, fiber.Map{
		"Navigation": nav,
		"Complaint":  item,
		"History":    history,
		"Next":       complaint.NextStatuses(complaint.Status(item.Status)),
		"Terminal":   complaint.Terminal(complaint.Status(item.Status)),
		"Roster":     roster,
	}, handler.BaseLayout)
}

// Export streams the scoped complaint list as a CSV report.
func (s *Service) Export(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	filters := complaint.Filters{
		Status:       complaint.Status(c.Query("status")),
		DepartmentID: uint64(c.QueryInt("department")), //nolint:gosec
	}

	items, err := s.complaints.List(identity, filters)
	if err != nil {
		return handler.Fail(c, err)
	}

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"reference", "department_id", "category", "status", "assignee_id", "created_at", "updated_at"})

	for i := range items {
		item := &items[i]

		assignee := ""
		if item.AssigneeID != nil {
			assignee = strconv.FormatUint(*item.AssigneeID, 10)
		}

		_ = w.Write([]string{
			item.Reference,
			strconv.FormatUint(item.DepartmentID, 10),
			item.Category,
			item.Status,
			assignee,
			item.CreatedAt.Format(time.RFC3339),
			item.UpdatedAt.Format(time.RFC3339),
		})
	}

	w.Flush()

	if err = w.Error(); err != nil {
		return handler.Fail(c, fault.Storage(err, "write csv report"))
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="complaints.csv"`)

	return c.Send(buf.Bytes())
}

// Transition handles a lifecycle transition request.
func (s *Service) Transition(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.Fail(c, fault.ErrNotFound)
	}

	form := new(transitionForm)
	if err = c.BodyParser(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	remark := form.Remark
	if form.Resolution != "" {
		remark = form.Resolution
	}

	_, err = s.complaints.Transition(identity, id,
		complaint.Status(form.Expected), complaint.Status(form.Next), remark)
	if err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Uint64("complaint_id", id).
		Str("next", form.Next).
		Msg("Complaint transitioned")

	return c.Redirect(Path + "/" + strconv.FormatUint(id, 10))
}

// Assign handles an assignment request.
func (s *Service) Assign(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.Fail(c, fault.ErrNotFound)
	}

	form := new(assignForm)
	if err = c.BodyParser(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	_, err = s.complaints.Assign(identity, id, form.StaffID)
	if err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Uint64("complaint_id", id).
		Uint64("assignee_id", form.StaffID).
		Msg("Complaint assigned")

	return c.Redirect(Path + "/" + strconv.FormatUint(id, 10))
}
