package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for every amount.
const AmountScale = 4

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a value transaction.
type TxID uint32

// TxType is the closed set of transaction kinds.
type TxType int

const (
	TxTypeDeposit TxType = iota + 1
	TxTypeWithdraw
	TxTypeDispute
	TxTypeResolve
	TxTypeChargeback
)

// ParseTxType matches s case-sensitively against the known transaction kinds.
// Both "withdraw" and "withdrawal" map to TxTypeWithdraw.
func ParseTxType(s string) (TxType, error) {
	switch s {
	case "deposit":
		return TxTypeDeposit, nil
	case "withdraw", "withdrawal":
		return TxTypeWithdraw, nil
	case "dispute":
		return TxTypeDispute, nil
	case "resolve":
		return TxTypeResolve, nil
	case "chargeback":
		return TxTypeChargeback, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTxType, s)
	}
}

func (t TxType) String() string {
	switch t {
	case TxTypeDeposit:
		return "deposit"
	case TxTypeWithdraw:
		return "withdraw"
	case TxTypeDispute:
		return "dispute"
	case TxTypeResolve:
		return "resolve"
	case TxTypeChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("TxType(%d)", int(t))
	}
}

// IsReference reports whether t refers to an earlier transaction instead of
// introducing a new one.
func (t TxType) IsReference() bool {
	return t == TxTypeDispute || t == TxTypeResolve || t == TxTypeChargeback
}

// RawTransaction is an untyped record as read from the input.
// Amount is nil when the record carries no amount.
type RawTransaction struct {
	Type   string
	Client ClientID
	Tx     TxID
	Amount *decimal.Decimal
}

// Transaction is a validated transaction. Reference kinds carry the amount of
// the transaction they refer to once the ledger has resolved them.
type Transaction struct {
	Type   TxType
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

// NewTransaction validates raw and converts it into a Transaction.
func NewTransaction(raw RawTransaction) (Transaction, error) {
	txType, err := ParseTxType(raw.Type)
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		Type:   txType,
		Client: raw.Client,
		Tx:     raw.Tx,
		Amount: decimal.Zero,
	}

	// Reference kinds inherit their amount from history.
	if txType.IsReference() || raw.Amount == nil {
		return tx, nil
	}

	if raw.Amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: %s", ErrNegativeAmount, raw.Amount.String())
	}

	tx.Amount = raw.Amount.Round(AmountScale)

	return tx, nil
}

// WithAmount returns a copy of t carrying amount.
func (t Transaction) WithAmount(amount decimal.Decimal) Transaction {
	t.Amount = amount
	return t
}
