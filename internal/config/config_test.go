package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "matchwatch-syncer" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.FixtureHorizonDays != 20 {
		t.Fatalf("unexpected fixture horizon: %d", cfg.FixtureHorizonDays)
	}
	if cfg.TeamWindow != 245*time.Minute {
		t.Fatalf("unexpected team window: %s", cfg.TeamWindow)
	}
	if cfg.PrematchWindowStart != 25*time.Minute || cfg.PrematchWindowEnd != 100*time.Minute {
		t.Fatalf("unexpected prematch window: %s .. %s", cfg.PrematchWindowStart, cfg.PrematchWindowEnd)
	}
	if cfg.RedCardMaxMinute != 80 {
		t.Fatalf("unexpected red card cutoff: %d", cfg.RedCardMaxMinute)
	}
	if cfg.StaleMatchCutoff != 72*time.Hour {
		t.Fatalf("unexpected stale cutoff: %s", cfg.StaleMatchCutoff)
	}
	if !cfg.DBDisablePreparedBinary {
		t.Fatalf("expected DBDisablePreparedBinary=true by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_TelegramRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when TELEGRAM_ENABLED=true without TELEGRAM_BOT_TOKEN")
	}
}

func TestLoad_TelegramConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token-123")
	t.Setenv("TELEGRAM_TIMEOUT", "4s")
	t.Setenv("TELEGRAM_MAX_RETRIES", "3")
	t.Setenv("TELEGRAM_FANOUT_WORKERS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.TelegramEnabled {
		t.Fatalf("expected TelegramEnabled=true")
	}
	if cfg.TelegramBotToken != "token-123" {
		t.Fatalf("unexpected bot token")
	}
	if cfg.TelegramTimeout != 4*time.Second {
		t.Fatalf("unexpected telegram timeout: %s", cfg.TelegramTimeout)
	}
	if cfg.TelegramMaxRetries != 3 {
		t.Fatalf("unexpected telegram retries: %d", cfg.TelegramMaxRetries)
	}
	if cfg.TelegramFanOutWorkers != 2 {
		t.Fatalf("unexpected fanout workers: %d", cfg.TelegramFanOutWorkers)
	}
}

func TestLoad_WindowValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("TEAM_WINDOW", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid TEAM_WINDOW")
		}
	})

	t.Run("prematch end must exceed start", func(t *testing.T) {
		t.Setenv("TEAM_WINDOW", "")
		t.Setenv("PREMATCH_WINDOW_START", "90m")
		t.Setenv("PREMATCH_WINDOW_END", "30m")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when PREMATCH_WINDOW_END <= PREMATCH_WINDOW_START")
		}
	})

	t.Run("horizon out of range", func(t *testing.T) {
		t.Setenv("PREMATCH_WINDOW_START", "")
		t.Setenv("PREMATCH_WINDOW_END", "")
		t.Setenv("FIXTURE_HORIZON_DAYS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for FIXTURE_HORIZON_DAYS=0")
		}
	})
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "matchwatch-syncer-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "matchwatch-syncer-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
	}
}
