package rpcsvc

import "context"

// Account is a customer account.
type Account struct {
	ID      int     `json:"id"`
	Owner   *Person `json:"owner"`
	balance float64
}

func (a *Account) GetBalance() float64 { return a.balance }

type Person struct {
	Name    string   `json:"name"`
	Account *Account `json:"account"`
}

// AccountService manages accounts.
type AccountService struct {
	accounts map[int]*Account
}

// Open creates an account.
//
// @param string $currency ISO 4217 code
func (s *AccountService) Open(ctx context.Context, owner Person, currency any) (*Account, error) {
	return &Account{Owner: &owner}, nil
}

// Close closes an account.
func (s *AccountService) Close(id int) error {
	delete(s.accounts, id)
	return nil
}

type AuditResolver struct{}

// Trail lists recent audit entries.
//
// @return string[]
func (r *AuditResolver) Trail(accountID int, limit ...int) []any {
	return nil
}

type helperService struct{}

func (h *helperService) Run() {}

type Repository struct{}

func (r *Repository) Save() {}
