package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Setlist listing scope values. Whether setlist listings and deletes
// cover only the caller's setlists or every setlist in the store is a
// deployment policy, so it is a flag rather than a code path.
const (
	ScopeOwner  = "owner"
	ScopeGlobal = "global"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must()
// and missing values cause the process to exit with a fatal log message.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBPath         string // path of the SQLite database file
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	SetlistScope   string // "owner" or "global" setlist listing policy
	SeedAccounts   bool   // insert the default local-dev accounts at startup
}

// Load reads configuration values from environment variables.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBPath:         envStr("DB_PATH", "setlist_helper.db"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:     envInt("BCRYPT_COST", 12),
		SetlistScope:   strings.ToLower(envStr("SETLIST_SCOPE", ScopeOwner)),
		SeedAccounts:   envBool("SEED_DEFAULT_ACCOUNTS", true),
	}
	if cfg.SetlistScope != ScopeOwner && cfg.SetlistScope != ScopeGlobal {
		log.Fatalf("invalid SETLIST_SCOPE: %q (want %q or %q)", cfg.SetlistScope, ScopeOwner, ScopeGlobal)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
