package memory

import (
	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

var _ usecase.HistoryStore = (*HistoryRepository)(nil)

// HistoryRepository is an append-only log of accepted transactions with an
// index on transaction id. The index keeps the first entry recorded for an id.
type HistoryRepository struct {
	log   []domain.Transaction
	index map[domain.TxID]int
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		index: make(map[domain.TxID]int),
	}
}

// Find returns the first transaction recorded under id.
func (r *HistoryRepository) Find(id domain.TxID) (domain.Transaction, bool) {
	pos, ok := r.index[id]
	if !ok {
		return domain.Transaction{}, false
	}
	return r.log[pos], true
}

// Append records tx.
func (r *HistoryRepository) Append(tx domain.Transaction) {
	if _, ok := r.index[tx.Tx]; !ok {
		r.index[tx.Tx] = len(r.log)
	}
	r.log = append(r.log, tx)
}

// Len returns the number of recorded transactions.
func (r *HistoryRepository) Len() int {
	return len(r.log)
}
