package config

import (
	"testing"
	"time"
)

func TestParse_DevDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.JWT.Secret != DevAccessSecret || cfg.JWT.RefreshSecret != DevRefreshSecret {
		t.Fatalf("dev secrets not applied: %+v", cfg.JWT)
	}
	if cfg.JWT.AccessTTL() != 15*time.Minute {
		t.Fatalf("access ttl = %s", cfg.JWT.AccessTTL())
	}
	if cfg.JWT.RefreshTTL() != 7*24*time.Hour {
		t.Fatalf("refresh ttl = %s", cfg.JWT.RefreshTTL())
	}
	if cfg.Session.Retention() != 30*24*time.Hour || cfg.Session.CleanupCron != "@daily" {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.GetAllowedOrigins() != "*" {
		t.Fatalf("dev origins = %q", cfg.GetAllowedOrigins())
	}
}

func TestParse_ProdSecrets(t *testing.T) {
	tests := []struct {
		name    string
		access  string
		refresh string
		wantErr bool
	}{
		{"both set", "a-secret", "r-secret", false},
		{"access missing", "", "r-secret", true},
		{"refresh missing", "a-secret", "", true},
		{"equal secrets", "same", "same", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "prod")
			t.Setenv("JWT_SECRET", tt.access)
			t.Setenv("JWT_REFRESH_SECRET", tt.refresh)

			cfg, err := Parse()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.GetAllowedOrigins() != "" {
				t.Fatalf("prod origins should be empty by default, got %q", cfg.GetAllowedOrigins())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"mode", "APP_MODE", "staging"},
		{"driver", "DB_DRIVER", "oracle"},
		{"access minutes", "ACCESS_TOKEN_MINUTES", "0"},
		{"refresh days not a number", "REFRESH_TOKEN_DAYS", "seven"},
		{"bcrypt cost", "BCRYPT_COST", "40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			t.Setenv(tt.key, tt.val)

			if _, err := Parse(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("APP_MODE", " dev ")
	t.Setenv("ACCESS_TOKEN_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_DAYS", "1")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("SESSION_CLEANUP_CRON", "@hourly")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.IsDev() {
		t.Fatalf("mode = %q", cfg.AppMode)
	}
	if cfg.JWT.AccessTTL() != 5*time.Minute || cfg.JWT.RefreshTTL() != 24*time.Hour {
		t.Fatalf("unexpected ttl: %+v", cfg.JWT)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "/tmp/test.db" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Session.CleanupCron != "@hourly" {
		t.Fatalf("cron = %q", cfg.Session.CleanupCron)
	}
}
