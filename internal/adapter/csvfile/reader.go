package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

// Input column names.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

const byteOrderMark = "\ufeff"

// ErrInvalidHeader is returned when the input header lacks a required column.
var ErrInvalidHeader = errors.New("invalid csv header")

var _ usecase.RecordSource = (*Reader)(nil)

// Reader reads raw transactions from a CSV stream with a header row.
// Fields are whitespace-trimmed; rows may have extra or missing trailing fields.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewReader creates a Reader over r. The header is read on the first call to Next.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{csv: cr}
}

// Next returns the next raw transaction, or io.EOF when the stream is done.
// Row-level problems are reported as domain.ErrMalformedRecord.
func (r *Reader) Next() (domain.RawTransaction, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return domain.RawTransaction{}, err
		}
	}

	var record []string
	for {
		var err error
		record, err = r.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return domain.RawTransaction{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, parseErr)
			}
			return domain.RawTransaction{}, err
		}
		if !isBlank(record) {
			break
		}
	}

	line, _ := r.csv.FieldPos(0)

	return r.parseRecord(record, line)
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{ColumnType, ColumnClient, ColumnTx} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrInvalidHeader, required)
		}
	}

	r.columns = columns
	return nil
}

func (r *Reader) parseRecord(record []string, line int) (domain.RawTransaction, error) {
	clientField := r.field(record, ColumnClient)
	client, err := strconv.ParseUint(clientField, 10, 16)
	if err != nil {
		return domain.RawTransaction{}, fmt.Errorf("%w: line %d: invalid client %q", domain.ErrMalformedRecord, line, clientField)
	}

	txField := r.field(record, ColumnTx)
	tx, err := strconv.ParseUint(txField, 10, 32)
	if err != nil {
		return domain.RawTransaction{}, fmt.Errorf("%w: line %d: invalid tx %q", domain.ErrMalformedRecord, line, txField)
	}

	raw := domain.RawTransaction{
		Type:   r.field(record, ColumnType),
		Client: domain.ClientID(client),
		Tx:     domain.TxID(tx),
	}

	// Dispute, resolve and chargeback rows take their amount from history.
	if txType, err := domain.ParseTxType(raw.Type); err == nil && txType.IsReference() {
		return raw, nil
	}

	if amountField := r.field(record, ColumnAmount); amountField != "" {
		amount, err := decimal.NewFromString(amountField)
		if err != nil {
			return domain.RawTransaction{}, fmt.Errorf("%w: line %d: invalid amount %q", domain.ErrMalformedRecord, line, amountField)
		}
		raw.Amount = &amount
	}

	return raw, nil
}

// field returns the trimmed value of column, or "" when the row is too short
// or the header has no such column.
func (r *Reader) field(record []string, column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
