package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"sabores/internal/infrastructure/sqlite"
)

// SetupTestDB opens the MySQL integration database. It expects a MySQL
// server on localhost:3306 with a database named 'sabores_test' and skips
// the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/sabores_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupSQLiteDB opens a throwaway SQLite database in the test's temp dir.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"orders", "products"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the remote-store tables. The DDL is accepted by
// both MySQL and SQLite.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		product_id VARCHAR(64) NOT NULL,
		product_name VARCHAR(255),
		product_image VARCHAR(1024),
		product_price DOUBLE,
		customer_name VARCHAR(255) NOT NULL,
		customer_address VARCHAR(512) NOT NULL,
		customer_whatsapp VARCHAR(32) NOT NULL,
		delivery_date VARCHAR(32),
		payment_method VARCHAR(16) NOT NULL DEFAULT 'pix',
		notes TEXT,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		ingredients TEXT,
		price DOUBLE,
		show_price BOOLEAN NOT NULL DEFAULT 0,
		images TEXT,
		is_daily_product BOOLEAN NOT NULL DEFAULT 0,
		is_custom_product BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"orders", createOrdersTable},
		{"products", createProductsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
