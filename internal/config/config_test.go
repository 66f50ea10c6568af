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

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CookieSecureDefaultsByEnv(t *testing.T) {
	t.Run("prod defaults to secure cookies", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SESSION_COOKIE_SECURE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SessionCookieSecure {
			t.Fatalf("expected secure cookies in prod")
		}
	})

	t.Run("dev defaults to plain cookies", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SESSION_COOKIE_SECURE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SessionCookieSecure {
			t.Fatalf("expected plain cookies in dev")
		}
	})
}

func TestLoad_SessionTTLValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SESSION_TTL", "-1h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive SESSION_TTL")
	}
}

func TestLoad_IngestSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "2025")
	t.Setenv("INGEST_SEASON_TYPES", "regular, postseason ,")
	t.Setenv("INGEST_WORKERS", "4")
	t.Setenv("CFBD_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.IngestSeason != 2025 {
		t.Fatalf("unexpected IngestSeason: %d", cfg.IngestSeason)
	}
	if len(cfg.IngestSeasonTypes) != 2 || cfg.IngestSeasonTypes[1] != "postseason" {
		t.Fatalf("unexpected IngestSeasonTypes: %v", cfg.IngestSeasonTypes)
	}
	if cfg.IngestWorkers != 4 {
		t.Fatalf("unexpected IngestWorkers: %d", cfg.IngestWorkers)
	}
	if cfg.CFBDTimeout != 30*time.Second {
		t.Fatalf("unexpected CFBDTimeout: %s", cfg.CFBDTimeout)
	}
}

func TestLoad_InvalidWorkerCount(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for INGEST_WORKERS=0")
	}
}

func TestLoad_BoardClassificationNormalized(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BOARD_CLASSIFICATION", " FBS ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BoardClassification != "fbs" {
		t.Fatalf("unexpected BoardClassification: %q", cfg.BoardClassification)
	}
}
