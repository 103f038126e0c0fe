package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mzhadan/matchwatch/external/sofadata"
	"github.com/mzhadan/matchwatch/external/telegram"
	"github.com/mzhadan/matchwatch/internal/config"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/infrastructure/repository/postgres"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/resilience"
	"github.com/mzhadan/matchwatch/internal/usecase"
)

// Syncer bundles the job runner with the resources it owns. Close releases
// the database pool once the invoked job is done.
type Syncer struct {
	Runner *usecase.JobRunnerService

	db *sqlx.DB
}

func (s *Syncer) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BuildSyncer wires the full dependency graph: database, upstream client,
// notifier, repositories and every sync and alert service.
func BuildSyncer(cfg config.Config, logger *logging.Logger) (*Syncer, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := connectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	provider := sofadata.NewClient(sofadata.ClientConfig{
		BaseURL:    cfg.SofaDataBaseURL,
		Timeout:    cfg.SofaDataTimeout,
		MaxRetries: cfg.SofaDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SofaDataCircuitEnabled,
			FailureThreshold: cfg.SofaDataCircuitFailureCount,
			OpenTimeout:      cfg.SofaDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SofaDataCircuitHalfOpenMaxReq,
		},
	})

	countryRepo := postgres.NewCountryRepository(db)
	tournamentRepo := postgres.NewTournamentRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	standingRepo := postgres.NewStandingRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	incidentLedger := postgres.NewIncidentLedger(db)

	countrySync := usecase.NewCountrySyncService(provider, countryRepo, logger)
	tournamentSync := usecase.NewTournamentSyncService(provider, countryRepo, tournamentRepo, tournament.DefaultConfig(), logger)
	seasonSync := usecase.NewSeasonSyncService(provider, tournamentRepo, seasonRepo, logger)
	fixtureSync := usecase.NewFixtureSyncService(provider, tournamentRepo, matchRepo, usecase.FixtureSyncConfig{
		HorizonDays: cfg.FixtureHorizonDays,
		StaleCutoff: cfg.StaleMatchCutoff,
	}, logger)
	resultSync := usecase.NewResultSyncService(provider, matchRepo, usecase.ResultSyncConfig{
		Grace: cfg.ResultGrace,
	}, logger)
	teamSync := usecase.NewTeamSyncService(provider, matchRepo, teamRepo, usecase.TeamSyncConfig{
		Window:     cfg.TeamWindow,
		MaxWorkers: cfg.SyncMaxWorkers,
	}, logger)
	playerSync := usecase.NewPlayerSyncService(provider, matchRepo, playerRepo, usecase.PlayerSyncConfig{
		Window: cfg.TeamWindow,
	}, logger)
	standingSync := usecase.NewStandingSyncService(provider, matchRepo, standingRepo, usecase.StandingSyncConfig{
		Lookback: cfg.StandingsLookback,
	}, logger)
	lineupSync := usecase.NewLineupSyncService(provider, matchRepo, usecase.LineupSyncConfig{
		Lead: cfg.LineupLead,
	}, logger)

	// Alert jobs only exist when a notifier exists. Leaving them out drops
	// them from the full chain instead of failing it.
	var prematchAlert *usecase.PrematchAlertService
	var liveAlert *usecase.LiveAlertService
	if cfg.TelegramEnabled {
		notifier := telegram.NewNotifier(telegram.NotifierConfig{
			BaseURL:       cfg.TelegramBaseURL,
			BotToken:      cfg.TelegramBotToken,
			Timeout:       cfg.TelegramTimeout,
			MaxRetries:    cfg.TelegramMaxRetries,
			FanOutWorkers: cfg.TelegramFanOutWorkers,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.TelegramCircuitEnabled,
				FailureThreshold: cfg.TelegramCircuitFailureCount,
				OpenTimeout:      cfg.TelegramCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.TelegramCircuitHalfOpenMaxReq,
			},
		}, logger)

		prematchAlert = usecase.NewPrematchAlertService(matchRepo, chatRepo, notifier, usecase.PrematchAlertConfig{
			WindowStart:  cfg.PrematchWindowStart,
			WindowEnd:    cfg.PrematchWindowEnd,
			MessageLimit: telegram.MaxMessageLength,
		}, logger)
		liveAlert = usecase.NewLiveAlertService(provider, incidentLedger, chatRepo, notifier, usecase.LiveAlertConfig{
			RedCardMaxMinute: cfg.RedCardMaxMinute,
		}, logger)
	} else {
		logger.Info("telegram disabled", "reason", "TELEGRAM_ENABLED=false")
	}

	runner := usecase.NewJobRunnerService(
		countrySync,
		tournamentSync,
		seasonSync,
		fixtureSync,
		resultSync,
		teamSync,
		playerSync,
		standingSync,
		lineupSync,
		prematchAlert,
		liveAlert,
		logger,
	)

	return &Syncer{Runner: runner, db: db}, nil
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
