package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. It is read once at startup
// and treated as immutable for the lifetime of the pipeline.
type Server struct {
	Addr string

	// Advisory service settings. Either field being empty routes every
	// evaluation to the deterministic fallback path; it is never fatal.
	AdvisoryBaseURL string
	AdvisoryAgentID string
	AdvisoryToken   string

	// Budget policy. The budget limit is PlannedHeadcount * RatePerPerson,
	// fixed at startup and independent of the headcount actually submitted.
	RatePerPerson    float64
	PlannedHeadcount int

	// Audit trail backend: "memory", "redis" or "postgres".
	AuditStore  string
	DatabaseURL string

	Redis RedisConfig
}

// RedisConfig holds connection settings for the optional Redis audit store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LUNCHGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	rate := floatEnv("LUNCH_RATE_PER_PERSON", 15)
	planned := intEnv("LUNCH_PLANNED_HEADCOUNT", 10)

	auditStore := os.Getenv("AUDIT_STORE")
	if auditStore == "" {
		auditStore = "memory"
	}

	return Server{
		Addr:             addr,
		AdvisoryBaseURL:  os.Getenv("ADVISORY_BASE_URL"),
		AdvisoryAgentID:  os.Getenv("ADVISORY_AGENT_ID"),
		AdvisoryToken:    os.Getenv("ADVISORY_TOKEN"),
		RatePerPerson:    rate,
		PlannedHeadcount: planned,
		AuditStore:       auditStore,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}

// BudgetLimit returns the fixed spending ceiling for one order.
func (s Server) BudgetLimit() float64 {
	return float64(s.PlannedHeadcount) * s.RatePerPerson
}

func floatEnv(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
