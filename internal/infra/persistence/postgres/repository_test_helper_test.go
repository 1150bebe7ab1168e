package postgres

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	createSchema(t, db)

	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_authentications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		provider TEXT NOT NULL,
		provider_user_id TEXT NOT NULL,
		password_hash TEXT,
		created_at DATETIME,
		UNIQUE (provider, provider_user_id)
	);`)
	mustExec(t, db, `CREATE TABLE refresh_tokens (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		full_name TEXT,
		avatar_url TEXT,
		bio TEXT,
		location TEXT,
		role TEXT NOT NULL,
		is_public BOOLEAN NOT NULL,
		show_email BOOLEAN NOT NULL,
		show_activity BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE seller_applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		business_name TEXT NOT NULL,
		owner_name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		category TEXT NOT NULL,
		address TEXT NOT NULL,
		proof_url TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE shops (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT,
		address TEXT,
		contact_number TEXT,
		category TEXT,
		image_url TEXT,
		rating REAL NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE products (
		id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		image_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE shop_events (
		id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL,
		image_url TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE favorites (
		user_id TEXT NOT NULL,
		shop_id TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (user_id, shop_id)
	);`)
	mustExec(t, db, `CREATE TABLE user_devices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		push_token TEXT NOT NULL,
		device_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (user_id, device_id)
	);`)
}
