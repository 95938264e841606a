package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db                  *gorm.DB
	teamMemberRepo      *TeamMemberRepo
	projectRepo         *ProjectRepo
	categoryRepo        *CategoryRepo
	bannerSlideRepo     *BannerSlideRepo
	inquiryRepo         *InquiryRepo
	inquiryActivityRepo *InquiryActivityRepo
	siteSettingsRepo    *SiteSettingsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                  db,
		teamMemberRepo:      NewTeamMemberRepo(db),
		projectRepo:         NewProjectRepo(db),
		categoryRepo:        NewCategoryRepo(db),
		bannerSlideRepo:     NewBannerSlideRepo(db),
		inquiryRepo:         NewInquiryRepo(db),
		inquiryActivityRepo: NewInquiryActivityRepo(db),
		siteSettingsRepo:    NewSiteSettingsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) TeamMemberRepo() *TeamMemberRepo {
	return d.teamMemberRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) BannerSlideRepo() *BannerSlideRepo {
	return d.bannerSlideRepo
}

func (d Database) InquiryRepo() *InquiryRepo {
	return d.inquiryRepo
}

func (d Database) InquiryActivityRepo() *InquiryActivityRepo {
	return d.inquiryActivityRepo
}

func (d Database) SiteSettingsRepo() *SiteSettingsRepo {
	return d.siteSettingsRepo
}

// Migrate creates or alters the tables of every model
func (d Database) Migrate() error {
	return d.db.AutoMigrate(models.AllModels()...)
}

// Ping checks that the primary database answers
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}

// Open connects to the database selected by DB_TYPE. When DB_REPLICA_DSN is
// set, reads are routed to the replica through dbresolver.
func Open(c map[string]string) (*gorm.DB, error) {
	dbType := config.GetString(c, "DB_TYPE", "postgres")

	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Duration(config.GetInt(c, "DB_SLOW_THRESHOLD_SECONDS", 10)) * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch dbType {
	case "postgres", "supa":
		dsn, dsnErr := postgresDSN(c, dbType)
		if dsnErr != nil {
			return nil, dsnErr
		}
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(config.GetString(c, "SQLITE_PATH", "site.db")), gormConfig)
	default:
		return nil, errs.NewConfigInvalidError("DB_TYPE", fmt.Sprintf("unsupported database type %q", dbType))
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", dbType, err)
	}

	if replica := config.GetString(c, "DB_REPLICA_DSN", ""); replica != "" && dbType != "sqlite" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: replica, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", 10)).
			SetConnMaxIdleTime(time.Duration(config.GetInt(c, "DB_CONN_MAX_IDLE_MINUTES", 5)) * time.Minute)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("registering read replica: %w", err)
		}
	}

	return db, nil
}

func postgresDSN(c map[string]string, dbType string) (string, error) {
	if dbType == "postgres" {
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return "", errs.NewConfigMissingError("DATABASE_URL")
		}
		return dsn, nil
	}

	host := config.GetString(c, "SUPABASE_DB_HOST", "")
	if host == "" {
		return "", errs.NewConfigMissingError("SUPABASE_DB_HOST")
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		host,
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
	), nil
}
