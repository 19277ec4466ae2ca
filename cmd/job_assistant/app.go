package main

import (
	"context"
	"fmt"

	"github.com/jonathan/job-assistant/internal/aggregate"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/generation"
	"github.com/jonathan/job-assistant/internal/ledger"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/notify"
	"github.com/jonathan/job-assistant/internal/session"
	"github.com/jonathan/job-assistant/internal/sources"
	"go.uber.org/zap"
)

// fetchOptions returns the outbound HTTP settings for board and posting fetches.
func fetchOptions(cfg *config.Config) *fetch.Options {
	opts := fetch.DefaultOptions()
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}
	return opts
}

// loadBoards returns the configured boards, or the built-in set.
func loadBoards(cfg *config.Config) ([]sources.Board, error) {
	if cfg.BoardsFile == "" {
		return sources.DefaultBoards(), nil
	}
	boards, err := sources.LoadBoardsFile(cfg.BoardsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load boards: %w", err)
	}
	return boards, nil
}

// buildAggregator registers one adapter per enabled board.
func buildAggregator(cfg *config.Config, log *zap.Logger) (*aggregate.Aggregator, error) {
	boards, err := loadBoards(cfg)
	if err != nil {
		return nil, err
	}

	registry := sources.NewRegistry(boards, sources.Options{
		HTTP:       fetchOptions(cfg),
		UseBrowser: cfg.UseBrowser,
		Logger:     log,
	})
	log.Debug("sources registered", zap.Any("sources", registry.Names()))

	var opts []aggregate.Option
	if timeout := cfg.SourceTimeout(); timeout > 0 {
		opts = append(opts, aggregate.WithSourceTimeout(timeout))
	}
	return aggregate.New(log, registry.Adapters(), opts...), nil
}

// buildGenerator loads the language model. A model that cannot be loaded is
// logged and the generator answers with generation.UnavailableMessage.
func buildGenerator(ctx context.Context, cfg *config.Config, log *zap.Logger) (*generation.Generator, func()) {
	llmConfig, err := llm.ConfigFor(cfg.LLMProvider, cfg.Model, cfg.Temperature)
	if err != nil {
		log.Warn("language model unavailable", zap.Error(err))
		return generation.New(nil, log), func() {}
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		log.Warn("language model unavailable", zap.String("provider", cfg.LLMProvider), zap.Error(err))
		return generation.New(nil, log), func() {}
	}

	log.Debug("language model loaded",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", client.GetModel(llm.TierStandard)),
	)
	return generation.New(client, log), func() { _ = client.Close() }
}

// openLedgerStore returns the configured ledger backend and a release func.
func openLedgerStore(ctx context.Context, cfg *config.Config) (ledger.Store, func(), error) {
	switch cfg.LedgerBackend {
	case config.LedgerPostgres:
		store, err := ledger.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return &ledger.CSVStore{Path: cfg.LedgerPath}, func() {}, nil
	}
}

// openLedger loads the application ledger. An unreadable file starts an empty
// ledger; a database that cannot be queried is an error.
func openLedger(ctx context.Context, cfg *config.Config, log *zap.Logger) (*ledger.Ledger, func(), error) {
	store, release, err := openLedgerStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.LedgerBackend != config.LedgerPostgres {
		return ledger.Open(ctx, store, log), release, nil
	}
	led, err := ledger.OpenStrict(ctx, store, log)
	if err != nil {
		release()
		return nil, nil, err
	}
	return led, release, nil
}

// buildNotifier combines every configured channel. With none configured it returns nil.
func buildNotifier(cfg *config.Config, log *zap.Logger) notify.Notifier {
	var channels notify.Multi
	if cfg.SMTPConfigured() {
		channels = append(channels, notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}))
	}
	if cfg.TelegramConfigured() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, "")
		if err != nil {
			log.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			channels = append(channels, tg)
		}
	}
	if len(channels) == 0 {
		return nil
	}
	return channels
}

// buildSessions returns a Redis session store when configured, in-memory otherwise.
func buildSessions(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(cfg.SessionTTL()), func() {}, nil
	}
	store, err := session.NewRedisStore(ctx, session.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.SessionTTL(),
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
