package bank

// MaskAccountNumber keeps the first and last four digits visible, the way
// statements print card numbers.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) <= 8 {
		return accountNumber
	}
	return accountNumber[:4] + "****" + accountNumber[len(accountNumber)-4:]
}

// Account is a row in the mock bank ledger that simulates an external
// payment network. PIN holds a bcrypt hash.
type Account struct {
	ID                int     `json:"id"`
	AccountNumber     string  `json:"accountNumber"`
	AccountHolderName string  `json:"accountHolderName"`
	UPIID             string  `json:"upiId"`
	Balance           float64 `json:"balance"`
	PIN               string  `json:"-"`
	BankName          string  `json:"bankName"`
	IFSCCode          string  `json:"ifscCode"`
	IsActive          bool    `json:"isActive"`
}
