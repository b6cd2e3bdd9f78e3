// Package permissions provides the admin page for editing the role
// permission matrix.
package permissions

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/handler"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/navigation"
)

const (
	// Path is the path to the permission matrix editor.
	Path = handler.RootPath + "admin/permissions"

	// TemplateName is the name of the matrix editor template.
	TemplateName = "admin/permissions"
)

// editableRoles are the roles whose capability sets can be changed. The
// privileged role bypasses the matrix and is not listed.
var editableRoles = []models.StaffRole{
	models.RoleBasic,
	models.RoleDepartmentAdmin,
}

// form carries the replacement capability set for one role. Checkboxes that
// are unchecked are simply absent, which is what makes the POST a
// replace-set rather than a merge.
type form struct {
	Capabilities []string `form:"capabilities"`
}

// Service is the permission matrix handler service.
type Service struct {
	cfg    *config.Config
	matrix *auth.Matrix
}

// Handler is the permission matrix handler.
var Handler = Service{}

// Init initializes the permission matrix handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, matrix *auth.Matrix) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.matrix = matrix

	app.Get(Path,
		auth.RequireCapability(matrix, auth.PermPermissionManage),
		s.Get,
	)
	app.Post(Path+"/:role",
		auth.RequireCapability(matrix, auth.PermPermissionManage),
		s.Post,
	)
}

// Get renders the capability grid for every editable role.
func (s *Service) Get(c *fiber.Ctx) error {
	grid := make(map[models.StaffRole]map[string]bool, len(editableRoles))

	for _, role := range editableRoles {
		grants, err := s.matrix.GetPermissions(role)
		if err != nil {
			return handler.Fail(c, err)
		}

		grid[role] = grants
	}

	nav := navigation.NewContext("Permissions", "admin", "permissions").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Permissions", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Navigation":   nav,
		"Roles":        editableRoles,
		"Capabilities": auth.Capabilities,
		"Grid":         grid,
	}, handler.BaseLayout)
}

// Post replaces a role's capability set with the submitted one.
func (s *Service) Post(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	role := models.StaffRole(c.Params("role"))

	submitted := new(form)
	if err := c.BodyParser(submitted); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	if err := s.matrix.SetCapabilities(identity, role, submitted.Capabilities); err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Str("role", string(role)).
		Strs("capabilities", submitted.Capabilities).
		Msg("Permission matrix updated")

	return c.Redirect(Path)
}
