package domain

import (
	"errors"
	"fmt"
)

var (
	// Transaction errors
	ErrInvalidTxType   = errors.New("invalid transaction type")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrMalformedRecord = errors.New("malformed transaction record")

	// Account errors
	ErrInsufficientFunds = errors.New("insufficient available funds")
	ErrAccountLocked     = errors.New("account is locked")

	// Ledger errors
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrTransactionNotFound  = errors.New("referenced transaction not found")
	ErrInconsistentLedger   = errors.New("ledger is inconsistent: total does not equal available plus held")
)

// LedgerError is returned by the ledger when a transaction is rejected.
// It wraps the account or verification error that caused the rejection.
type LedgerError struct {
	Type   TxType
	Client ClientID
	Tx     TxID
	Err    error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s tx %d for client %d rejected: %v", e.Type, e.Tx, e.Client, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError wraps err with the identity of tx.
func NewLedgerError(tx Transaction, err error) *LedgerError {
	return &LedgerError{
		Type:   tx.Type,
		Client: tx.Client,
		Tx:     tx.Tx,
		Err:    err,
	}
}

// IsTransactionError reports whether err comes from building a transaction
// out of a raw record rather than from applying it.
func IsTransactionError(err error) bool {
	return errors.Is(err, ErrInvalidTxType) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrMalformedRecord)
}
