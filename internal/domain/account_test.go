package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

func TestAccount_ValidateWithdraw(t *testing.T) {
	tests := []struct {
		name        string
		available   string
		amount      string
		expectError bool
	}{
		{
			name:        "withdraw less than available",
			available:   "10",
			amount:      "5",
			expectError: false,
		},
		{
			name:        "withdraw exact available",
			available:   "10.0",
			amount:      "10.0",
			expectError: false,
		},
		{
			name:        "withdraw just above available",
			available:   "10.0",
			amount:      "10.0001",
			expectError: true,
		},
		{
			name:        "withdraw from empty account",
			available:   "0",
			amount:      "0.0001",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Available: mustDecimal(t, tt.available)}

			err := acc.ValidateWithdraw(mustDecimal(t, tt.amount))

			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_Apply(t *testing.T) {
	tests := []struct {
		name          string
		start         Account
		tx            Transaction
		wantAvailable string
		wantHeld      string
		wantTotal     string
		wantLocked    bool
		expectError   error
	}{
		{
			name:          "deposit credits available and total",
			start:         *NewAccount(1),
			tx:            Transaction{Type: TxTypeDeposit, Amount: decimal.NewFromInt(100)},
			wantAvailable: "100",
			wantHeld:      "0",
			wantTotal:     "100",
		},
		{
			name:          "withdraw debits available and total",
			start:         Account{Available: decimal.NewFromInt(100), Held: decimal.Zero, Total: decimal.NewFromInt(100)},
			tx:            Transaction{Type: TxTypeWithdraw, Amount: decimal.NewFromInt(30)},
			wantAvailable: "70",
			wantHeld:      "0",
			wantTotal:     "70",
		},
		{
			name:          "withdraw over available fails without change",
			start:         Account{Available: decimal.NewFromInt(10), Held: decimal.NewFromInt(5), Total: decimal.NewFromInt(15)},
			tx:            Transaction{Type: TxTypeWithdraw, Amount: decimal.NewFromInt(12)},
			wantAvailable: "10",
			wantHeld:      "5",
			wantTotal:     "15",
			expectError:   ErrInsufficientFunds,
		},
		{
			name:          "dispute moves available to held",
			start:         Account{Available: decimal.NewFromInt(100), Held: decimal.Zero, Total: decimal.NewFromInt(100)},
			tx:            Transaction{Type: TxTypeDispute, Amount: decimal.NewFromInt(40)},
			wantAvailable: "60",
			wantHeld:      "40",
			wantTotal:     "100",
		},
		{
			name:          "dispute may drive available negative",
			start:         Account{Available: decimal.NewFromInt(10), Held: decimal.Zero, Total: decimal.NewFromInt(10)},
			tx:            Transaction{Type: TxTypeDispute, Amount: decimal.NewFromInt(40)},
			wantAvailable: "-30",
			wantHeld:      "40",
			wantTotal:     "10",
		},
		{
			name:          "resolve moves held back to available",
			start:         Account{Available: decimal.NewFromInt(60), Held: decimal.NewFromInt(40), Total: decimal.NewFromInt(100)},
			tx:            Transaction{Type: TxTypeResolve, Amount: decimal.NewFromInt(40)},
			wantAvailable: "100",
			wantHeld:      "0",
			wantTotal:     "100",
		},
		{
			name:          "chargeback removes held funds and locks",
			start:         Account{Available: decimal.NewFromInt(60), Held: decimal.NewFromInt(40), Total: decimal.NewFromInt(100)},
			tx:            Transaction{Type: TxTypeChargeback, Amount: decimal.NewFromInt(40)},
			wantAvailable: "60",
			wantHeld:      "0",
			wantTotal:     "60",
			wantLocked:    true,
		},
		{
			name:          "locked account still accepts deposits",
			start:         Account{Available: decimal.Zero, Held: decimal.Zero, Total: decimal.Zero, Locked: true},
			tx:            Transaction{Type: TxTypeDeposit, Amount: decimal.NewFromInt(5)},
			wantAvailable: "5",
			wantHeld:      "0",
			wantTotal:     "5",
			wantLocked:    true,
		},
		{
			name:          "unknown type rejected",
			start:         *NewAccount(1),
			tx:            Transaction{Type: TxType(99), Amount: decimal.NewFromInt(5)},
			wantAvailable: "0",
			wantHeld:      "0",
			wantTotal:     "0",
			expectError:   ErrInvalidTxType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := tt.start

			err := acc.Apply(tt.tx)

			if tt.expectError == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}

			if !acc.Available.Equal(mustDecimal(t, tt.wantAvailable)) {
				t.Errorf("expected available %s, got %s", tt.wantAvailable, acc.Available)
			}
			if !acc.Held.Equal(mustDecimal(t, tt.wantHeld)) {
				t.Errorf("expected held %s, got %s", tt.wantHeld, acc.Held)
			}
			if !acc.Total.Equal(mustDecimal(t, tt.wantTotal)) {
				t.Errorf("expected total %s, got %s", tt.wantTotal, acc.Total)
			}
			if acc.Locked != tt.wantLocked {
				t.Errorf("expected locked %v, got %v", tt.wantLocked, acc.Locked)
			}
			if !acc.IsBalanced() {
				t.Errorf("account not balanced: %+v", acc)
			}
		})
	}
}

func TestAccount_IsBalanced(t *testing.T) {
	acc := &Account{
		Available: decimal.NewFromInt(10),
		Held:      decimal.NewFromInt(5),
		Total:     decimal.NewFromInt(16),
	}

	if acc.IsBalanced() {
		t.Error("expected unbalanced account to be reported")
	}
}
