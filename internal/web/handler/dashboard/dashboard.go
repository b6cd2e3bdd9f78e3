// Package dashboard provides the dashboard handler showing complaint counts.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/complaint"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/handler"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// RecentLimit caps the number of recent complaints rendered below the counters.
	RecentLimit = 10
)

// Service is the dashboard handler service.
type Service struct {
	cfg        *config.Config
	complaints *complaint.Service
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, matrix *auth.Matrix) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.complaints = complaint.NewService(db)

	// register routes with capability checks
	app.Get(Path,
		auth.RequireCapability(matrix, auth.PermDashboardView),
		s.Get,
	)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.Redirect("/login")
	}

	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	counts, err := s.complaints.CountByStatus(identity)
	if err != nil {
		return handler.Fail(c, err)
	}

	recent, err := s.complaints.List(identity, complaint.Filters{})
	if err != nil {
		return handler.Fail(c, err)
	}

	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	var open int64
	for status, n := range counts {
		if !complaint.Terminal(status) {
			open += n
		}
	}

	log.Debug().
		Uint64("staff_id", identity.ID).
		Int64("open_complaints", open).
		Int("recent", len(recent)).
		Msg("Dashboard counters retrieved successfully")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Counts":     counts,
		"Open":       open,
		"Recent":     recent,
		"Statuses":   complaint.Statuses,
	}, handler.BaseLayout)
}
