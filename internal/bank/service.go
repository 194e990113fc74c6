package bank

import "golang.org/x/crypto/bcrypt"

// Ledger is the validation surface the checkout flow depends on. It reads
// account state and verifies credentials but never moves money, so a real
// gateway integration could replace it without touching the orchestrator.
type Ledger interface {
	ValidateCard(accountNumber, pin string) (Account, error)
	ValidateUPI(upiID, pin string) (Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ValidateCard looks up an active account by number and checks the PIN
// against the stored hash. It does not reserve funds; the balance may
// change between validation and debit.
func (s *Service) ValidateCard(accountNumber, pin string) (Account, error) {
	a, err := s.repo.GetByAccountNumber(accountNumber)
	if err != nil {
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PIN), []byte(pin)) != nil {
		return Account{}, ErrInvalidPIN
	}
	return a, nil
}

// ValidateUPI is ValidateCard keyed by UPI handle.
func (s *Service) ValidateUPI(upiID, pin string) (Account, error) {
	a, err := s.repo.GetByUPI(upiID)
	if err != nil {
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PIN), []byte(pin)) != nil {
		return Account{}, ErrInvalidPIN
	}
	return a, nil
}
