package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
)

// IngestConfig configures an IngestUseCase.
type IngestConfig struct {
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	IDGen   IDGenerator

	// SkipInvalidRecords logs and skips records that cannot be turned into a
	// transaction instead of aborting the run.
	SkipInvalidRecords bool
}

// Summary counts what happened to the records of one run.
type Summary struct {
	RunID    string
	Read     int
	Accepted int
	Ignored  int
	Rejected int
	Invalid  int
}

// IngestUseCase feeds a record stream through the ledger in input order.
type IngestUseCase struct {
	ledger      *LedgerUseCase
	logger      zerolog.Logger
	metrics     *metrics.Metrics
	idGen       IDGenerator
	skipInvalid bool
}

// NewIngestUseCase creates a new IngestUseCase.
func NewIngestUseCase(ledger *LedgerUseCase, cfg IngestConfig) *IngestUseCase {
	return &IngestUseCase{
		ledger:      ledger,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		idGen:       cfg.IDGen,
		skipInvalid: cfg.SkipInvalidRecords,
	}
}

// Run reads source to the end and applies every record to the ledger.
// Ledger rejections are logged and skipped. Invalid records abort the run
// unless SkipInvalidRecords is set. Source I/O errors always abort.
func (uc *IngestUseCase) Run(ctx context.Context, source RecordSource) (Summary, error) {
	var summary Summary
	if uc.idGen != nil {
		summary.RunID = uc.idGen.Generate()
	}

	log := uc.logger.With().Str("run_id", summary.RunID).Logger()
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		raw, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil && !domain.IsTransactionError(err) {
			return summary, fmt.Errorf("read input: %w", err)
		}

		summary.Read++
		uc.recordRead()

		var tx domain.Transaction
		if err == nil {
			tx, err = domain.NewTransaction(raw)
		}

		if err != nil {
			summary.Invalid++
			uc.recordError("unknown", metrics.OutcomeInvalid, err)

			if !uc.skipInvalid {
				return summary, fmt.Errorf("record %d: %w", summary.Read, err)
			}

			log.Warn().Err(err).Int("record", summary.Read).Msg("skipping invalid record")
			continue
		}

		outcome, err := uc.ledger.TryAdd(tx)
		if err != nil {
			summary.Rejected++
			uc.recordError(tx.Type.String(), metrics.OutcomeRejected, err)

			log.Warn().
				Err(err).
				Str("type", tx.Type.String()).
				Uint16("client", uint16(tx.Client)).
				Uint32("tx", uint32(tx.Tx)).
				Msg("transaction rejected")
			continue
		}

		switch outcome.Kind {
		case OutcomeNoOp:
			summary.Ignored++
			uc.recordOutcome(tx.Type.String(), metrics.OutcomeIgnored)

			log.Debug().
				Str("type", tx.Type.String()).
				Uint16("client", uint16(tx.Client)).
				Uint32("tx", uint32(tx.Tx)).
				Msg("reference to unknown transaction ignored")
		case OutcomeAccept:
			summary.Accepted++
			uc.recordOutcome(tx.Type.String(), metrics.OutcomeAccepted)
			uc.recordAmount(outcome.Tx)
		}
	}

	if err := uc.ledger.CheckConsistency(); err != nil {
		return summary, err
	}

	uc.recordRun(time.Since(start))

	log.Info().
		Int("read", summary.Read).
		Int("accepted", summary.Accepted).
		Int("ignored", summary.Ignored).
		Int("rejected", summary.Rejected).
		Int("invalid", summary.Invalid).
		Dur("duration", time.Since(start)).
		Msg("ingestion finished")

	return summary, nil
}

func (uc *IngestUseCase) recordRead() {
	if uc.metrics != nil {
		uc.metrics.RecordsRead.Inc()
	}
}

func (uc *IngestUseCase) recordOutcome(txType, outcome string) {
	if uc.metrics != nil {
		uc.metrics.TransactionsProcessed.WithLabelValues(txType, outcome).Inc()
	}
}

func (uc *IngestUseCase) recordError(txType, outcome string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionsProcessed.WithLabelValues(txType, outcome).Inc()
	uc.metrics.TransactionErrors.WithLabelValues(errorType(err)).Inc()
}

func (uc *IngestUseCase) recordAmount(tx domain.Transaction) {
	if uc.metrics != nil {
		uc.metrics.TransactionAmount.Observe(tx.Amount.InexactFloat64())
	}
}

func (uc *IngestUseCase) recordRun(d time.Duration) {
	if uc.metrics == nil {
		return
	}

	accounts := uc.ledger.Accounts()
	locked := 0
	for _, acc := range accounts {
		if acc.Locked {
			locked++
		}
	}

	uc.metrics.Accounts.Set(float64(len(accounts)))
	uc.metrics.LockedAccounts.Set(float64(locked))
	uc.metrics.HistoryEntries.Set(float64(uc.ledger.HistoryLen()))
	uc.metrics.RunDuration.Set(d.Seconds())
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, domain.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, domain.ErrInvalidTxType):
		return "invalid_tx_type"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, domain.ErrMalformedRecord):
		return "malformed_record"
	default:
		return "unknown"
	}
}
