package usecase

import (
	"github.com/iho/txengine/internal/domain"
)

// AccountStore holds the account of every client seen so far.
type AccountStore interface {
	Get(client domain.ClientID) (*domain.Account, bool)
	Put(account *domain.Account)
	List() []*domain.Account
}

// HistoryStore holds accepted transactions for lookup by id.
type HistoryStore interface {
	// Find returns the first transaction recorded under id.
	Find(id domain.TxID) (domain.Transaction, bool)
	Append(tx domain.Transaction)
	Len() int
}

// RecordSource yields raw transaction records in input order.
// Next returns io.EOF once the input is exhausted.
type RecordSource interface {
	Next() (domain.RawTransaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
