package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account holds one client's balances.
type Account struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// NewAccount returns an unlocked account with zero balances.
func NewAccount(client ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// ValidateWithdraw checks if amount can be withdrawn from available funds.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if a.Available.LessThan(amount) {
		return fmt.Errorf("%w: available %s, requested %s", ErrInsufficientFunds, a.Available, amount)
	}
	return nil
}

// Apply applies tx to the account. Only a withdraw can fail, and it leaves
// the account untouched when it does.
func (a *Account) Apply(tx Transaction) error {
	amount := tx.Amount

	switch tx.Type {
	case TxTypeDeposit:
		a.Available = a.Available.Add(amount)
		a.Total = a.Total.Add(amount)
	case TxTypeWithdraw:
		if err := a.ValidateWithdraw(amount); err != nil {
			return err
		}
		a.Available = a.Available.Sub(amount)
		a.Total = a.Total.Sub(amount)
	case TxTypeDispute:
		a.Available = a.Available.Sub(amount)
		a.Held = a.Held.Add(amount)
	case TxTypeResolve:
		a.Available = a.Available.Add(amount)
		a.Held = a.Held.Sub(amount)
	case TxTypeChargeback:
		a.Held = a.Held.Sub(amount)
		a.Total = a.Total.Sub(amount)
		a.Locked = true
	default:
		return fmt.Errorf("%w: %s", ErrInvalidTxType, tx.Type)
	}

	return nil
}

// IsBalanced reports whether total equals available plus held.
func (a *Account) IsBalanced() bool {
	return a.Total.Equal(a.Available.Add(a.Held))
}
