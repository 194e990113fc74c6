package bank

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getByAccountNumberQuery = `
		SELECT id, account_number, account_holder_name, upi_id, balance, pin, bank_name, ifsc_code, is_active
		FROM banks
		WHERE account_number = $1 AND is_active = TRUE
	`
	getByUPIQuery = `
		SELECT id, account_number, account_holder_name, upi_id, balance, pin, bank_name, ifsc_code, is_active
		FROM banks
		WHERE upi_id = $1 AND is_active = TRUE
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByAccountNumber(accountNumber string) (Account, error) {
	return r.getOne(getByAccountNumberQuery, accountNumber)
}

func (r *PostgresRepository) GetByUPI(upiID string) (Account, error) {
	return r.getOne(getByUPIQuery, upiID)
}

func (r *PostgresRepository) getOne(query, key string) (Account, error) {
	var a Account
	err := r.db.QueryRow(query, key).Scan(
		&a.ID, &a.AccountNumber, &a.AccountHolderName, &a.UPIID, &a.Balance,
		&a.PIN, &a.BankName, &a.IFSCCode, &a.IsActive)
	if err == sql.ErrNoRows {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}
