// Package activity provides the admin page for the append-only activity log:
// a filtered listing and the bulk purge of old entries.
package activity

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/audit"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/handler"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/navigation"
)

const (
	// Path is the path to the activity log page.
	Path = handler.RootPath + "admin/activity"

	// TemplateName is the name of the activity log template.
	TemplateName = "admin/activity"

	// dateLayout is the format of the purge cutoff date field.
	dateLayout = "2006-01-02"
)

// purgeForm carries the purge cutoff. Entries strictly older than Before are
// deleted.
type purgeForm struct {
	Before string `form:"before"`
}

// Service is the activity log handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the activity log handler.
var Handler = Service{}

// Init initializes the activity log handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, matrix *auth.Matrix) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path,
		auth.RequireCapability(matrix, auth.PermActivityView),
		s.Get,
	)
	app.Post(Path+"/purge",
		auth.RequireCapability(matrix, auth.PermActivityPurge),
		s.Purge,
	)
}

// Get renders the activity log with optional actor/action/since filters.
func (s *Service) Get(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	filters := audit.Filters{
		ActorID: uint64(c.QueryInt("actor")), //nolint:gosec
		Action:  c.Query("action"),
	}

	if since := c.Query("since"); since != "" {
		parsed, err := time.Parse(dateLayout, since)
		if err != nil {
			return handler.Fail(c, fault.ErrValidation)
		}

		filters.Since = parsed
	}

	entries, err := audit.List(s.db, identity.Role, filters)
	if err != nil {
		return handler.Fail(c, err)
	}

	nav := navigation.NewContext("Activity", "admin", "activity").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Activity", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Entries":    entries,
		"Filters":    filters,
	}, handler.BaseLayout)
}

// Purge deletes activity entries older than the submitted cutoff.
func (s *Service) Purge(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	form := new(purgeForm)
	if err := c.BodyParser(form); err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	cutoff, err := time.Parse(dateLayout, form.Before)
	if err != nil {
		return handler.Fail(c, fault.ErrValidation)
	}

	purged, err := audit.Purge(s.db, identity.ID, identity.Role, cutoff)
	if err != nil {
		return handler.Fail(c, err)
	}

	log.Info().
		Uint64("staff_id", identity.ID).
		Int64("purged", purged).
		Time("cutoff", cutoff).
		Msg("Activity log purged")

	return c.Redirect(Path)
}
