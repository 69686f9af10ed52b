package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Init replaces Log with a logger for the given profile. Every entry carries
// the service name so both mocks can share one log stream in docker compose.
// An empty level keeps the profile's default (info for prod, debug otherwise).
func Init(profile, service, level string) error {
	var cfg zap.Config

	if profile == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.Fields(zap.String("service", service)))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	Log = l.Sugar()
	return nil
}

func Sync() {
	if Log == nil {
		return
	}

	_ = Log.Sync()
}
