package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TMDB_API_KEY", "TMDB_BASE_URL", "TMDB_LANGUAGE", "STREAMSCOUT_ADDR",
		"STREAMSCOUT_FALLBACK_POLICY", "STREAMSCOUT_DEDUPE_POLICY",
		"STREAMSCOUT_SCHEME_FALLBACK_MS", "STREAMSCOUT_INTENT_FALLBACK_MS", "STREAMSCOUT_ALLOWED_ORIGINS",
		"STREAMSCOUT_DEBUG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultsNeedAnAPIKey(t *testing.T) {
	s := Default()
	if err := s.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	s.TMDBAPIKey = "k"
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults with a key should validate: %v", err)
	}
	if s.SchemeFallback() != 1500*time.Millisecond || s.IntentFallback() != 2500*time.Millisecond {
		t.Fatalf("unexpected default timers %s %s", s.SchemeFallback(), s.IntentFallback())
	}
	if s.FallbackPolicy != FallbackEmpty || s.DedupePolicy != DedupeMergeFirst {
		t.Fatalf("unexpected default policies %q %q", s.FallbackPolicy, s.DedupePolicy)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Settings){
		"relative base url": func(s *Settings) { s.TMDBBaseURL = "/api" },
		"fallback policy":   func(s *Settings) { s.FallbackPolicy = "retry" },
		"dedupe policy":     func(s *Settings) { s.DedupePolicy = "merge-random" },
		"zero timer":        func(s *Settings) { s.IntentFallbackMs = 0 },
		"zero timeout":      func(s *Settings) { s.HTTPTimeoutMs = 0 },
		"no attempts":       func(s *Settings) { s.RetryAttempts = 0 },
		"no listen addr":    func(s *Settings) { s.ListenAddr = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := Default()
			s.TMDBAPIKey = "k"
			mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestManagerLoadLayers(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "streamscout.toml")
	if err := os.WriteFile(tomlPath, []byte(`
tmdb_api_key = "from-file"
fallback_policy = "stale"
scheme_fallback_ms = 2000
allowed_origins = ["https://app.example.com"]
`), 0o600); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("# comment\nexport TMDB_API_KEY=\"from-env-file\"\nSTREAMSCOUT_DEDUPE_POLICY=merge-last\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STREAMSCOUT_SCHEME_FALLBACK_MS", "1800")

	s, err := NewManager(tomlPath, envPath).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.TMDBAPIKey != "from-env-file" {
		t.Fatalf("env file should override toml, got %q", s.TMDBAPIKey)
	}
	if s.FallbackPolicy != FallbackStale {
		t.Fatalf("expected stale from toml, got %q", s.FallbackPolicy)
	}
	if s.DedupePolicy != DedupeMergeLast {
		t.Fatalf("expected merge-last from env file, got %q", s.DedupePolicy)
	}
	if s.SchemeFallbackMs != 1800 {
		t.Fatalf("process env should win, got %d", s.SchemeFallbackMs)
	}
	if len(s.AllowedOrigins) != 1 || s.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected origins %v", s.AllowedOrigins)
	}
}

func TestManagerMissingFilesUseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TMDB_API_KEY", "k")
	dir := t.TempDir()

	s, err := NewManager(filepath.Join(dir, "absent.toml"), filepath.Join(dir, "absent.env")).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", s.ListenAddr)
	}
}

func TestManagerFailsFastWithoutKey(t *testing.T) {
	clearEnv(t)
	_, err := NewManager("", "").Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestManagerRejectsMalformedTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("tmdb_api_key = \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(path, "").Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadOfflineAppliesFileWithoutKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "streamscout.toml")
	if err := os.WriteFile(path, []byte("scheme_fallback_ms = 900\nintent_fallback_ms = 3000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := NewManager(path, "").LoadOffline()
	if err != nil {
		t.Fatalf("load offline: %v", err)
	}
	if s.SchemeFallback() != 900*time.Millisecond || s.IntentFallback() != 3*time.Second {
		t.Fatalf("file timers not applied: %s %s", s.SchemeFallback(), s.IntentFallback())
	}
	if _, err := NewManager(path, "").Load(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("full load should still require a key, got %v", err)
	}
}

func TestLoadOfflineStillRejectsBadTimers(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "streamscout.toml")
	if err := os.WriteFile(path, []byte("scheme_fallback_ms = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(path, "").LoadOffline(); err == nil {
		t.Fatal("expected validation error")
	}
}
