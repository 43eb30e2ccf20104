package database

import (
	"Cruder/internal/config"
	"Cruder/internal/models"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
	"os"
)

var ErrUnknownDriver = errors.New("unknown database driver")

func SetupDatabase(configuration *config.Configuration) (*gorm.DB, error) {
	dialector, err := openDialector(configuration.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if configuration.Database.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, err
	}
	if configuration.Database.AutoMigrate {
		if err = Migrate(db); err != nil {
			CloseDatabase(db)
			return nil, err
		}
	}
	return db, nil
}

// ProvideDatabase is SetupDatabase with a cleanup func for the injector.
func ProvideDatabase(configuration *config.Configuration) (*gorm.DB, func(), error) {
	db, err := SetupDatabase(configuration)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { CloseDatabase(db) }, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	case "postgres":
		dsn, err := postgresDSN()
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func postgresDSN() (string, error) {
	// a missing .env is fine, the variables may come from the environment
	_ = godotenv.Load()

	var envVariables = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_TZ"}
	for _, envVariable := range envVariables {
		if os.Getenv(envVariable) == "" {
			return "", fmt.Errorf("%s environment variable not set", envVariable)
		}
	}
	if os.Getenv("DB_SSLMODE") == "" {
		if err := os.Setenv("DB_SSLMODE", "disable"); err != nil {
			return "", err
		}
	}
	return os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}"), nil
}
