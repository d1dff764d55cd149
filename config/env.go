package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadEnvFile reads path and sets environment variables for each "KEY=value" line.
// A missing file is not an error. Existing process variables win over the file.
func LoadEnvFile(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		os.Setenv(key, unquoteEnv(strings.TrimSpace(line[idx+1:])))
	}
	return sc.Err()
}

func unquoteEnv(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func applyEnv(s *Settings) {
	setString(&s.TMDBAPIKey, "TMDB_API_KEY")
	setString(&s.TMDBBaseURL, "TMDB_BASE_URL")
	setString(&s.TMDBLanguage, "TMDB_LANGUAGE")
	setString(&s.ListenAddr, "STREAMSCOUT_ADDR")
	setString(&s.CacheDir, "STREAMSCOUT_CACHE_DIR")
	setString(&s.LogFile, "STREAMSCOUT_LOG_FILE")
	setString(&s.AnalyticsEndpoint, "STREAMSCOUT_ANALYTICS_ENDPOINT")
	setString(&s.GenericWebURL, "STREAMSCOUT_GENERIC_WEB_URL")
	if v := strings.TrimSpace(os.Getenv("STREAMSCOUT_FALLBACK_POLICY")); v != "" {
		s.FallbackPolicy = FallbackPolicy(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv("STREAMSCOUT_DEDUPE_POLICY")); v != "" {
		s.DedupePolicy = DedupePolicy(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv("STREAMSCOUT_ALLOWED_ORIGINS")); v != "" {
		s.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				s.AllowedOrigins = append(s.AllowedOrigins, origin)
			}
		}
	}
	setInt(&s.SchemeFallbackMs, "STREAMSCOUT_SCHEME_FALLBACK_MS")
	setInt(&s.IntentFallbackMs, "STREAMSCOUT_INTENT_FALLBACK_MS")
	setInt(&s.RetryAttempts, "STREAMSCOUT_RETRY_ATTEMPTS")
	setBool(&s.Debug, "STREAMSCOUT_DEBUG")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
