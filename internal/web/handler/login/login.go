package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/handler"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// form carries the submitted login credentials.
type form struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app or db is nil")
	}

	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	credentials := new(form)

	if err := c.BodyParser(credentials); err != nil {
		return s.failed(c, ErrInvalidFormData)
	}

	account, err := s.provider.Authenticate(credentials.Username, credentials.Password)

	switch {
	case err == nil:
		// fallthrough to session creation
	case errors.Is(err, auth.ErrAccountDisabled):
		return s.failed(c, ErrAccountDisabled)
	case errors.Is(err, auth.ErrAccountNotFound), errors.Is(err, auth.ErrInvalidPassword):
		return s.failed(c, ErrInvalidCredentials)
	default:
		log.Error().Err(err).Msg("failed to authenticate account")
		return s.failed(c, ErrInternalServerError)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.failed(c, ErrInternalServerError)
	}

	staffSession := &session.Data{
		Staff: *account,
	}

	if err = staffSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.failed(c, ErrInternalServerError)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect("/dashboard")
}

// failed re-renders the login page with an error message.
func (s *Service) failed(c *fiber.Ctx, err error) error {
	return c.Render(TemplateName, fiber.Map{
		"error": err.Error(),
	})
}
