package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iho/txengine/internal/adapter/csvfile"
	"github.com/iho/txengine/internal/adapter/idgen"
	"github.com/iho/txengine/internal/adapter/repository/memory"
	"github.com/iho/txengine/internal/infrastructure/config"
	"github.com/iho/txengine/internal/infrastructure/logger"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = &config.Config{LogLevel: "info", LogFormat: "console"}
	}

	cmd := &cobra.Command{
		Use:   "txengine <transactions.csv>",
		Short: "Replay a transaction log and print final client balances",
		Long: `txengine reads a CSV of deposits, withdrawals, disputes, resolves and
chargebacks, applies them in file order and writes one CSV row per client
account to stdout.

Disputes, resolves and chargebacks that reference an unknown transaction id
are ignored silently unless --strict-references is given. Locked accounts keep
accepting transactions unless --freeze-locked is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return fmt.Errorf("load configuration: %w", cfgErr)
			}
			return run(cmd.Context(), cfg, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error, disabled")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json")
	flags.BoolVar(&cfg.SkipInvalidRecords, "skip-invalid", cfg.SkipInvalidRecords, "Skip malformed records instead of aborting")
	flags.BoolVar(&cfg.StrictReferences, "strict-references", cfg.StrictReferences, "Reject references to unknown transactions")
	flags.BoolVar(&cfg.FreezeLockedAccounts, "freeze-locked", cfg.FreezeLockedAccounts, "Reject transactions for locked accounts")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file after the run")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, path string, stdout, stderr io.Writer) error {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	var opts []usecase.LedgerOption
	if cfg.StrictReferences {
		opts = append(opts, usecase.WithStrictReferences())
	}
	if cfg.FreezeLockedAccounts {
		opts = append(opts, usecase.WithFrozenLockedAccounts())
	}

	m := metrics.New()

	ledger := usecase.NewLedgerUseCase(memory.NewAccountRepository(), memory.NewHistoryRepository(), opts...)
	ingest := usecase.NewIngestUseCase(ledger, usecase.IngestConfig{
		Logger:             log,
		Metrics:            m,
		IDGen:              idgen.NewULIDGenerator(),
		SkipInvalidRecords: cfg.SkipInvalidRecords,
	})

	summary, err := ingest.Run(ctx, csvfile.NewReader(file))
	if err != nil {
		log.Error().Err(err).Str("run_id", summary.RunID).Str("input", path).Msg("ingestion failed")
		return err
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}

	if err := csvfile.NewWriter(stdout).WriteAccounts(ledger.Accounts()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
