package database

import (
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres through the pgx stdlib driver and verifies the
// connection with a ping.
func Open(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the storefront tables when they do not exist yet.
// Statements are idempotent so the server can start against a fresh or an
// already-populated database.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			image TEXT DEFAULT 'https://via.placeholder.com/300x200',
			stock INT NOT NULL DEFAULT 0,
			category TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL UNIQUE,
			total_amount NUMERIC(10,2) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id SERIAL PRIMARY KEY,
			cart_id INT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
			product_id INT NOT NULL REFERENCES products(id),
			quantity INT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			UNIQUE (cart_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			order_number TEXT NOT NULL UNIQUE,
			total_amount NUMERIC(10,2) NOT NULL,
			shipping_address TEXT,
			payment_method TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			transaction_id TEXT,
			payment_details JSONB,
			estimated_delivery TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			product_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS banks (
			id SERIAL PRIMARY KEY,
			account_number VARCHAR(16) NOT NULL UNIQUE,
			account_holder_name TEXT NOT NULL,
			upi_id TEXT NOT NULL UNIQUE,
			balance NUMERIC(15,2) NOT NULL DEFAULT 0,
			pin TEXT NOT NULL,
			bank_name TEXT NOT NULL,
			ifsc_code VARCHAR(11) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS wishlists (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			product_id INT NOT NULL REFERENCES products(id),
			created_at TEXT,
			UNIQUE (user_id, product_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
