// connection.go
//
// Database handles for the portfolio content service: the local store opened
// from DB_TYPE/DB_* and the optional mirror opened from MIRROR_URL.

package database

import (
	"fmt"
	"log"
	"net/url"

	"github.com/anuragch/folio/internal/config"
	"github.com/anuragch/folio/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes the local store connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBType {
	case "sqlite":
		// For SQLite, DBDatabase is the file path
		dialector = sqlite.Open(cfg.DBDatabase)

	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		dialector = mysql.Open(dsn)

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
		)
		dialector = postgres.Open(dsn)

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		dialector = sqlserver.Open(dsn)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(cfg.DBConnectionLimit / 2)

	log.Printf("Connected to %s local store: %s", cfg.DBType, cfg.DBDatabase)

	return db, nil
}

// ConnectMirror opens a handle to the remote mirror's Postgres endpoint.
// The automatic ping is disabled so an unreachable mirror cannot fail boot;
// every call to the mirror carries its own bounded timeout instead.
func ConnectMirror(cfg *config.Config) (*gorm.DB, error) {
	dsn, err := MirrorDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror handle: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying mirror SQL DB: %w", err)
	}

	// the mirror is best-effort, keep its pool small
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

// MirrorDSN merges the MIRROR_PASSWORD credential into the MIRROR_URL endpoint.
func MirrorDSN(cfg *config.Config) (string, error) {
	u, err := url.Parse(cfg.MirrorURL)
	if err != nil {
		return "", fmt.Errorf("invalid MIRROR_URL: %w", err)
	}

	if cfg.MirrorPassword != "" {
		user := ""
		if u.User != nil {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, cfg.MirrorPassword)
	}

	return u.String(), nil
}

// AutoMigrate runs automatic migrations for the content table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.ContentRow{})
}

// Close closes a database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
