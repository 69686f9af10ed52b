package config

import "github.com/yungtweek/llm-mockserver/internal/logger"

func ApplyPresetOverrides(cfg *Config) {
	logger.Log.Infow("[config] apply preset overrides", "preset", cfg.Preset)
	switch cfg.Preset {
	case "fast":
		// Local model on the same host: short, tight latency.
		cfg.BaseDelayMs = 20
		cfg.JitterMs = 30

	case "slow":
		// Hosted API under load: noticeable and uneven latency.
		cfg.BaseDelayMs = 400
		cfg.JitterMs = 600

	case "none", "":
		// Respond immediately unless BASE_DELAY_MS/JITTER_MS say otherwise.
	default:
		logger.Log.Warnw("[config] unknown preset, keeping explicit delays", "preset", cfg.Preset)
	}
}
