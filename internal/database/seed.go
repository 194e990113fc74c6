package database

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	accountNumber string
	holderName    string
	upiID         string
	balance       float64
	pin           string
	bankName      string
	ifscCode      string
}

type seedProduct struct {
	name        string
	description string
	price       float64
	image       string
	stock       int
	category    string
}

// SeedBanks inserts the fixed set of mock bank accounts used by the payment
// simulator. It is a no-op when the banks table already holds rows, so the
// ledger survives restarts with its balances intact.
func SeedBanks(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM banks`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	accounts := []seedAccount{
		{"1234567890123456", "Selvakumar", "selva@paytm", 150000.00, "1234", "State Bank of India", "SBIN0001234"},
		{"2345678901234567", "Priya", "priya@googlepay", 75000.00, "5678", "HDFC Bank", "HDFC0002345"},
		{"3456789012345678", "Baala", "baala@phonepe", 200000.00, "9876", "ICICI Bank", "ICIC0003456"},
		{"4567890123456789", "Sneha", "sneha@paytm", 95000.00, "4321", "Axis Bank", "UTIB0004567"},
		{"5678901234567890", "Vikram", "vikram@googlepay", 300000.00, "1357", "Punjab National Bank", "PUNB0005678"},
	}

	for _, a := range accounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(a.pin), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.Exec(
			`INSERT INTO banks (account_number, account_holder_name, upi_id, balance, pin, bank_name, ifsc_code, is_active)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,TRUE)`,
			a.accountNumber, a.holderName, a.upiID, a.balance, string(hashed), a.bankName, a.ifscCode,
		); err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts fills the catalog with a starter set when it is empty.
func SeedProducts(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []seedProduct{
		{"Wireless Headphones", "Over-ear Bluetooth headphones with noise cancellation", 2499.00, "/images/headphones.jpg", 25, "Electronics"},
		{"Smart Watch", "Fitness tracking watch with heart-rate monitor", 3999.00, "/images/smart-watch.jpg", 18, "Electronics"},
		{"Cotton T-Shirt", "Plain crew-neck cotton t-shirt", 499.00, "/images/tshirt.jpg", 60, "Clothing"},
		{"Denim Jeans", "Slim-fit stretch denim jeans", 1299.00, "/images/jeans.jpg", 40, "Clothing"},
		{"Stainless Steel Bottle", "1L insulated water bottle", 649.00, "/images/bottle.jpg", 55, "Home & Kitchen"},
		{"Non-Stick Pan", "28cm non-stick frying pan", 899.00, "/images/pan.jpg", 30, "Home & Kitchen"},
		{"Yoga Mat", "6mm anti-slip yoga mat", 799.00, "/images/yoga-mat.jpg", 35, "Sports"},
		{"Running Shoes", "Lightweight cushioned running shoes", 2199.00, "/images/shoes.jpg", 22, "Sports"},
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range products {
		if _, err := db.Exec(
			`INSERT INTO products (name, description, price, image, stock, category, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)`,
			p.name, p.description, p.price, p.image, p.stock, p.category, now,
		); err != nil {
			return err
		}
	}
	return nil
}
