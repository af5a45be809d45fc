package usecase

import (
	"fmt"
	"sort"

	"github.com/iho/txengine/internal/domain"
)

// OutcomeKind tells what the ledger should do with a verified transaction.
type OutcomeKind int

const (
	// OutcomeAccept applies Outcome.Tx to its account and records it.
	OutcomeAccept OutcomeKind = iota + 1
	// OutcomeNoOp drops the transaction without touching any state.
	OutcomeNoOp
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccept:
		return "accept"
	case OutcomeNoOp:
		return "noop"
	default:
		return "unknown"
	}
}

// Outcome is the result of verifying a transaction against history.
type Outcome struct {
	Kind OutcomeKind
	Tx   domain.Transaction
}

// LedgerOption configures a LedgerUseCase.
type LedgerOption func(*LedgerUseCase)

// WithStrictReferences makes references to unknown transactions fail with
// domain.ErrTransactionNotFound instead of being dropped.
func WithStrictReferences() LedgerOption {
	return func(uc *LedgerUseCase) {
		uc.strictReferences = true
	}
}

// WithFrozenLockedAccounts rejects every transaction for a locked account
// with domain.ErrAccountLocked.
func WithFrozenLockedAccounts() LedgerOption {
	return func(uc *LedgerUseCase) {
		uc.freezeLocked = true
	}
}

// LedgerUseCase verifies transactions and dispatches them to accounts.
type LedgerUseCase struct {
	accountStore AccountStore
	historyStore HistoryStore

	strictReferences bool
	freezeLocked     bool
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountStore AccountStore, historyStore HistoryStore, opts ...LedgerOption) *LedgerUseCase {
	uc := &LedgerUseCase{
		accountStore: accountStore,
		historyStore: historyStore,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Verify decides whether tx is new, a resolvable reference or invalid.
// It never mutates state.
func (uc *LedgerUseCase) Verify(tx domain.Transaction) (Outcome, error) {
	found, exists := uc.historyStore.Find(tx.Tx)

	if tx.Type.IsReference() {
		if !exists {
			if uc.strictReferences {
				return Outcome{}, fmt.Errorf("%w: tx %d", domain.ErrTransactionNotFound, tx.Tx)
			}
			return Outcome{Kind: OutcomeNoOp, Tx: tx}, nil
		}
		return Outcome{Kind: OutcomeAccept, Tx: tx.WithAmount(found.Amount)}, nil
	}

	if exists {
		return Outcome{}, fmt.Errorf("%w: tx %d", domain.ErrDuplicateTransaction, tx.Tx)
	}

	return Outcome{Kind: OutcomeAccept, Tx: tx}, nil
}

// TryAdd verifies tx and applies it to the owning account. On failure no
// account is created or changed and nothing is recorded in history.
func (uc *LedgerUseCase) TryAdd(tx domain.Transaction) (Outcome, error) {
	outcome, err := uc.Verify(tx)
	if err != nil {
		return Outcome{}, domain.NewLedgerError(tx, err)
	}

	if outcome.Kind == OutcomeNoOp {
		return outcome, nil
	}

	derived := outcome.Tx

	account, ok := uc.accountStore.Get(derived.Client)
	if !ok {
		account = domain.NewAccount(derived.Client)
	}

	if uc.freezeLocked && account.Locked {
		return Outcome{}, domain.NewLedgerError(derived, domain.ErrAccountLocked)
	}

	next := *account
	if err := next.Apply(derived); err != nil {
		return Outcome{}, domain.NewLedgerError(derived, err)
	}

	uc.accountStore.Put(&next)
	uc.historyStore.Append(derived)

	return outcome, nil
}

// Accounts returns every account ordered by client id.
func (uc *LedgerUseCase) Accounts() []*domain.Account {
	accounts := uc.accountStore.List()

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Client < accounts[j].Client
	})

	return accounts
}

// HistoryLen returns the number of accepted transactions.
func (uc *LedgerUseCase) HistoryLen() int {
	return uc.historyStore.Len()
}

// CheckConsistency verifies that every account is balanced.
func (uc *LedgerUseCase) CheckConsistency() error {
	for _, account := range uc.Accounts() {
		if !account.IsBalanced() {
			return fmt.Errorf(
				"%w: client=%d available=%s held=%s total=%s",
				domain.ErrInconsistentLedger,
				account.Client,
				account.Available.String(),
				account.Held.String(),
				account.Total.String(),
			)
		}
	}

	return nil
}
