package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAccessKeyTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE access_keys (
		key_hash TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		label TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		uses INTEGER NOT NULL DEFAULT 0,
		max_uses INTEGER,
		expires_at DATETIME,
		created_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		updated_by TEXT,
		revoked_at DATETIME,
		revoked_by TEXT,
		rotation_replaced_by TEXT
	);`)
}

func createRedemptionTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE redemptions (
		key_hash TEXT NOT NULL,
		user_id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		redeemed_at DATETIME NOT NULL,
		PRIMARY KEY (key_hash, user_id)
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		claims TEXT NOT NULL DEFAULT '{}',
		tenant_id TEXT,
		tenant_access_source TEXT,
		tenant_access_granted_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
