package bank

import (
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("bank account not found")
	ErrInvalidPIN = errors.New("invalid PIN")
)

// Repository reads active ledger rows. Debits happen inside the payment
// settlement transaction, not here.
type Repository interface {
	GetByAccountNumber(accountNumber string) (Account, error)
	GetByUPI(upiID string) (Account, error)
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts []Account
}

func NewInMemoryRepository(seed []Account) *InMemoryRepository {
	return &InMemoryRepository{accounts: append([]Account(nil), seed...)}
}

func (r *InMemoryRepository) GetByAccountNumber(accountNumber string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.AccountNumber == accountNumber && a.IsActive {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUPI(upiID string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.UPIID == upiID && a.IsActive {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

// Balance reports the current balance for an account id. Test helper.
func (r *InMemoryRepository) Balance(id int) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.ID == id {
			return a.Balance
		}
	}
	return 0
}

// Debit subtracts amount when the balance covers it. Used by the in-memory
// settlement path in tests.
func (r *InMemoryRepository) Debit(id int, amount float64) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].ID == id {
			if r.accounts[i].Balance < amount {
				return r.accounts[i].Balance, false
			}
			r.accounts[i].Balance -= amount
			return r.accounts[i].Balance, true
		}
	}
	return 0, false
}
