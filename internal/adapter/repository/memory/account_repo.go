package memory

import (
	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

var _ usecase.AccountStore = (*AccountRepository)(nil)

// AccountRepository keeps accounts in a map keyed by client id.
// It is not safe for concurrent use.
type AccountRepository struct {
	accounts map[domain.ClientID]*domain.Account
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[domain.ClientID]*domain.Account),
	}
}

// Get returns a copy of the account for client.
func (r *AccountRepository) Get(client domain.ClientID) (*domain.Account, bool) {
	acc, ok := r.accounts[client]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

// Put stores account, replacing any previous state for its client.
func (r *AccountRepository) Put(account *domain.Account) {
	cp := *account
	r.accounts[account.Client] = &cp
}

// List returns copies of all accounts in no particular order.
func (r *AccountRepository) List() []*domain.Account {
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		cp := *acc
		out = append(out, &cp)
	}
	return out
}
