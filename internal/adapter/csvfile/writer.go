package csvfile

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/txengine/internal/domain"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account states as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAccounts writes the header followed by one row per account.
func (w *Writer) WriteAccounts(accounts []*domain.Account) error {
	if err := w.csv.Write(outputHeader); err != nil {
		return err
	}

	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.Client), 10),
			acc.Available.StringFixed(domain.AmountScale),
			acc.Held.StringFixed(domain.AmountScale),
			acc.Total.StringFixed(domain.AmountScale),
			strconv.FormatBool(acc.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
