package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTxType(t *testing.T) {
	tests := []struct {
		input       string
		want        TxType
		expectError bool
	}{
		{input: "deposit", want: TxTypeDeposit},
		{input: "withdraw", want: TxTypeWithdraw},
		{input: "withdrawal", want: TxTypeWithdraw},
		{input: "dispute", want: TxTypeDispute},
		{input: "resolve", want: TxTypeResolve},
		{input: "chargeback", want: TxTypeChargeback},
		{input: "Deposit", expectError: true},
		{input: "transfer", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTxType(tt.input)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidTxType) {
					t.Fatalf("expected ErrInvalidTxType, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseTxType(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTxType_IsReference(t *testing.T) {
	if TxTypeDeposit.IsReference() || TxTypeWithdraw.IsReference() {
		t.Error("value kinds must not be references")
	}

	for _, tt := range []TxType{TxTypeDispute, TxTypeResolve, TxTypeChargeback} {
		if !tt.IsReference() {
			t.Errorf("expected %s to be a reference kind", tt)
		}
	}
}

func TestNewTransaction(t *testing.T) {
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name        string
		raw         RawTransaction
		wantType    TxType
		wantAmount  string
		expectError error
	}{
		{
			name:       "deposit with amount",
			raw:        RawTransaction{Type: "deposit", Client: 1, Tx: 1, Amount: amount("1.5")},
			wantType:   TxTypeDeposit,
			wantAmount: "1.5",
		},
		{
			name:       "withdrawal alias",
			raw:        RawTransaction{Type: "withdrawal", Client: 1, Tx: 2, Amount: amount("2")},
			wantType:   TxTypeWithdraw,
			wantAmount: "2",
		},
		{
			name:       "missing amount defaults to zero",
			raw:        RawTransaction{Type: "deposit", Client: 1, Tx: 3},
			wantType:   TxTypeDeposit,
			wantAmount: "0",
		},
		{
			name:       "amount rounded to four places",
			raw:        RawTransaction{Type: "deposit", Client: 1, Tx: 4, Amount: amount("1.23456")},
			wantType:   TxTypeDeposit,
			wantAmount: "1.2346",
		},
		{
			name:        "negative amount rejected",
			raw:         RawTransaction{Type: "deposit", Client: 1, Tx: 5, Amount: amount("-1")},
			expectError: ErrNegativeAmount,
		},
		{
			name:       "reference amount ignored",
			raw:        RawTransaction{Type: "dispute", Client: 1, Tx: 1, Amount: amount("-7")},
			wantType:   TxTypeDispute,
			wantAmount: "0",
		},
		{
			name:        "unknown type rejected",
			raw:         RawTransaction{Type: "refund", Client: 1, Tx: 6, Amount: amount("1")},
			expectError: ErrInvalidTxType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(tt.raw)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				if !IsTransactionError(err) {
					t.Fatalf("expected %v to be classified as a transaction error", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tx.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, tx.Type)
			}
			if tx.Client != tt.raw.Client || tx.Tx != tt.raw.Tx {
				t.Errorf("identity not preserved: %+v", tx)
			}
			if !tx.Amount.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Errorf("expected amount %s, got %s", tt.wantAmount, tx.Amount)
			}
		})
	}
}

func TestLedgerError_Unwrap(t *testing.T) {
	tx := Transaction{Type: TxTypeWithdraw, Client: 3, Tx: 9}
	err := NewLedgerError(tx, ErrInsufficientFunds)

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected wrapped ErrInsufficientFunds, got %v", err)
	}

	var ledgerErr *LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Client != 3 || ledgerErr.Tx != 9 {
		t.Fatalf("expected LedgerError with tx identity, got %v", err)
	}

	if IsTransactionError(err) {
		t.Fatal("ledger rejection must not be classified as a transaction error")
	}
}
