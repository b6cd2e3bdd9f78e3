package daemon

import (
	"fmt"
	"time"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/dsn"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/logger"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/logger/adapter/stdlogger"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{
		Logger: gormlogger.New(stdlogger.New(), gormlogger.Config{
			SlowThreshold: 200 * time.Millisecond, //nolint:mnd
			LogLevel:      gormlogger.Warn,
		}),
	})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Department{},
		&models.Staff{},
		&models.Complaint{},
		&models.ComplaintHistory{},
		&models.ActivityLog{},
		&models.RolePermission{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}
