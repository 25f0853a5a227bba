package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"habitflow/internal/domain"
)

// Connect opens PostgreSQL for postgres:// DSNs, SQLite otherwise (local
// development and tests). TranslateError is on so unique-key violations
// surface as gorm.ErrDuplicatedKey on both drivers; the concurrent check-in
// guarantee depends on that mapping.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite:", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        sqliteDSN(dsn),
		}),
		cfg,
	)
}

// sqliteDSN turns on foreign key enforcement. SQLite keeps it off per
// connection unless asked, and the check-in cascade on habit deletion
// depends on it; a DSN pragma reaches every pooled connection.
func sqliteDSN(dsn string) string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragma
	}
	return dsn + "?" + pragma
}

// Migrate applies the schema for all persistent models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Habit{},
		&domain.CheckIn{},
		&domain.RefreshToken{},
	)
}
