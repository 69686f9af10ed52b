package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Service  string
	Host     string
	Port     int
	Profile  string // default|prod (controls logger and gin mode)
	LogLevel string // overrides the profile's log level when set
	Preset   string // none|fast|slow (controls simulated latency presets)

	// Simulated latency before the canned response is written.
	BaseDelayMs int
	JitterMs    int

	MetricsEnabled  bool
	HealthGRPCPort  int // 0 disables the gRPC health server
	ShutdownTimeout time.Duration
}

// Defaults carries the per-binary values that differ between the two mocks.
type Defaults struct {
	Service string
	Host    string
	Port    int
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvStr(k string, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func LoadConfig(d Defaults) Config {
	return Config{
		Service:  d.Service,
		Host:     getEnvStr("HOST", d.Host),
		Port:     getEnvInt("PORT", d.Port),
		Profile:  getEnvStr("PROFILE", "default"),
		LogLevel: getEnvStr("LOG_LEVEL", ""),
		Preset:   strings.ToLower(getEnvStr("PRESET", "none")),

		BaseDelayMs: getEnvInt("BASE_DELAY_MS", 0),
		JitterMs:    getEnvInt("JITTER_MS", 0),

		MetricsEnabled:  getBool("METRICS_ENABLED", true),
		HealthGRPCPort:  getEnvInt("HEALTH_GRPC_PORT", 0),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}
