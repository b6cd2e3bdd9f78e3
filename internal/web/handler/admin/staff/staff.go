// Package staff provides the admin pages for managing staff accounts. A
// department admin only ever sees and manages their own department's roster;
// the privileged role manages everyone.
package staff

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/controller/department"
	staffctl "github.com/CareDesk-Admin/CareDesk-Admin/internal/db/controller/staff"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/scope"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/handler"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/navigation"
)

const (
	// Path is the base path of the staff admin pages.
	Path = handler.RootPath + "admin/staff"

	// ListTemplateName is the name of the roster template.
	ListTemplateName = "admin/staff_list"

	// FormTemplateName is the name of the account creation template.
	FormTemplateName = "admin/staff_form"
)

// createForm carries a new staff account.
type createForm struct {
	Username     string `form:"username"      validate:"required,min=3,max=100"`
	Email        string `form:"email"         validate:"required,email"`
	Password     string `form:"password"      validate:"required,min=8"`
	FirstName    string `form:"first_name"    validate:"max=100"`
	LastName     string `form:"last_name"     validate:"max=100"`
	Role         string `form:"role"          validate:"required"`
	DepartmentID uint64 `form:"department_id"`
}

var validate = validator.New()

// passwordForm carries an administrative password reset.
type passwordForm struct {
	Password string `form:"password"`
}

// Service is the staff admin handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	provider *auth.LocalProvider
}

// Handler is the staff admin handler.
var Handler = Service{}

// Init initializes the staff admin handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, matrix *auth.Matrix) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.provider = auth.NewLocalProvider(db)

	manage := auth.RequireCapability(matrix, auth.PermStaffManage)

	app.Get(Path, manage, s.List)
	app.Get(Path+"/new", manage, s.NewForm)
	app.Post(Path, manage, s.Create)
	app.Post(Path+"/:id/activate", manage, s.Activate)
	app.Post(Path+"/:id/deactivate", manage, s.Deactivate)
	app.Post(Path+"/:id/password", manage, s.ResetPassword)
}

// List renders the roster visible to the current identity.
func (s *Service) List(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	accounts, err := staffctl.ListScoped(s.db, scope.StaffFilter(identity))
	if err != nil {
		return handler.Fail(c, fault.Storage(err, "list staff"))
	}

	nav := navigation.NewContext("Staff", "admin", "staff").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Staff", Path, true)

	return c.Render(ListTemplateName, fiber.Map{
		"Navigation": nav,
		"Accounts":   accounts,
	}, handler.BaseLayout)
}

// NewForm renders the account creation form.
func (s *Service) NewForm(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	departments, err := department.GetAll(s.db)
	if err != nil {
		return handler.Fail(c, fault.Storage(err, "list departments"))
	}

	nav := navigation.NewContext("New Staff Account", "admin", "staff").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Staff", Path, false).
		AddBreadcrumb("New", Path+"/new", true)

	return c.Render(FormTemplateName, fiber.Map{
		"Navigation":  nav,
		"Departments": departments,
		"Privileged":  identity.Privileged(),
	}, handler.BaseLayout)
}

// Create handles the account creation form.
func (s *Service) Create(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	form := new(createForm)
	if err := c.BodyParser(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	if err := validate.Struct(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	role := models.StaffRole(form.Role)
	if !models.KnownRole(role) {
		return handler.Fail(c, fault.ErrValidation)
	}

	// Only the privileged role mints privileged accounts; a department admin
	// creates accounts inside their own department only.
	if !identity.Privileged() {
		if role == models.RolePrivileged {
			return handler.Fail(c, fault.ErrAuthorization)
		}

		form.DepartmentID = identity.DepartmentID
	}

	account, err := s.provider.CreateAccount(
		identity,
		form.Username, form.Email, form.Password,
		form.FirstName, form.LastName,
		role, form.DepartmentID,
	)
	if err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Uint64("account_id", account.ID).
		Str("role", form.Role).
		Msg("Staff account created")

	return c.Redirect(Path)
}

// Activate re-enables a staff account.
func (s *Service) Activate(c *fiber.Ctx) error {
	return s.mutate(c, "Staff account activated", s.provider.ActivateAccount)
}

// Deactivate disables a staff account without deleting it.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	return s.mutate(c, "Staff account deactivated", s.provider.DeactivateAccount)
}

// ResetPassword sets a new password on a staff account.
func (s *Service) ResetPassword(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	id, err := s.manageable(identity, c.Params("id"))
	if err != nil {
		return handler.Fail(c, err)
	}

	form := new(passwordForm)
	if err = c.BodyParser(form); err != nil || form.Password == "" {
		return handler.Fail(c, fault.ErrValidation)
	}

	if err = s.provider.ResetPassword(identity, id, form.Password); err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Uint64("account_id", id).
		Msg("Staff password reset")

	return c.Redirect(Path)
}

// mutate runs an activate/deactivate style account operation after the scope
// check, logging msg on success.
func (s *Service) mutate(c *fiber.Ctx, msg string, op func(auth.Identity, uint64) error) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	id, err := s.manageable(identity, c.Params("id"))
	if err != nil {
		return handler.Fail(c, err)
	}

	if err = op(identity, id); err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Uint64("account_id", id).
		Msg(msg)

	return c.Redirect(Path)
}

// manageable parses the target account ID and verifies the identity may
// manage that account. Out-of-scope targets read as Authorization, never as
// NotFound, so a department admin cannot probe other departments' rosters.
func (s *Service) manageable(identity auth.Identity, raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fault.ErrNotFound
	}

	account, err := staffctl.GetByID(s.db, id)
	if errors.Is(err, staffctl.ErrStaffNotFound) {
		return 0, scope.Deny(identity, true)
	}

	if err != nil {
		return 0, fault.Storage(err, "load staff account")
	}

	if !identity.Privileged() && account.DepartmentID != identity.DepartmentID {
		return 0, scope.Deny(identity, false)
	}

	return id, nil
}
