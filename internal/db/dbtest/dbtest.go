// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-crm/internal/db"
)

// New returns a migrated, private in-memory sqlite database that is
// closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
