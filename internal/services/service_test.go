package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/otcheredev/hms-backend/internal/database"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupMockDB points the package-global gorm handle at a sqlmock-backed
// connection for the duration of one test.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})

	return mock
}
