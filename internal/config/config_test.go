package config

import (
	"strings"
	"testing"
)

func setRequiredEnvs(t *testing.T) {
	t.Helper()
	t.Setenv("IMDB_API_URL", "https://imdb236.p.rapidapi.com/imdb/top-box-office")
	t.Setenv("IMDB_API_HOST", "imdb236.p.rapidapi.com")
	t.Setenv("IMDB_API_KEY", "apikey")
}

func TestLoadSuccess(t *testing.T) {
	setRequiredEnvs(t)
	t.Setenv("PORT", "9090")
	t.Setenv("IMDB_TIMEOUT_SECS", "3")
	t.Setenv("SERVER_READ_TIMEOUT", "30")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_PATH", "tmp-logs/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.IMDBTimeoutSecs != 3 {
		t.Fatalf("IMDBTimeoutSecs = %d, want 3", cfg.IMDBTimeoutSecs)
	}
	if cfg.ReadTimeoutSecs != 30 {
		t.Fatalf("ReadTimeoutSecs = %d, want 30", cfg.ReadTimeoutSecs)
	}
	if !cfg.Debug {
		t.Fatalf("Debug = false, want true")
	}
	if cfg.LogPath != "tmp-logs/" {
		t.Fatalf("LogPath = %s, want tmp-logs/", cfg.LogPath)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnvs(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.IMDBTimeoutSecs != 10 {
		t.Fatalf("IMDBTimeoutSecs = %d, want 10", cfg.IMDBTimeoutSecs)
	}
	if cfg.IdleTimeoutSecs != 60 {
		t.Fatalf("IdleTimeoutSecs = %d, want 60", cfg.IdleTimeoutSecs)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr string
	}{
		{
			name: "missing api url",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("IMDB_API_URL", "")
			},
			wantErr: "IMDB_API_URL",
		},
		{
			name: "missing api host",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("IMDB_API_HOST", "")
			},
			wantErr: "IMDB_API_HOST",
		},
		{
			name: "missing api key",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("IMDB_API_KEY", "")
			},
			wantErr: "IMDB_API_KEY",
		},
		{
			name: "negative timeout",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("IMDB_TIMEOUT_SECS", "-1")
			},
			wantErr: "IMDB_TIMEOUT_SECS",
		},
		{
			name: "zero read timeout",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("SERVER_READ_TIMEOUT", "0")
			},
			wantErr: "server timeouts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}
