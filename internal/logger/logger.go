package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "littlelemon-api"

var (
	log   *zap.Logger
	level = zap.NewAtomicLevel()
)

// Init builds the global logger for env. "production" writes JSON to
// stdout, "test" discards everything and anything else gets the colored
// console encoder. LOG_LEVEL overrides the default level.
func Init(env string) {
	if env == "test" {
		log = zap.NewNop()
		return
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level.SetLevel(cfg.Level.Level())
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if lvl, err := zapcore.ParseLevel(raw); err == nil {
			level.SetLevel(lvl)
		}
	}
	cfg.Level = level

	built, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	log = built.With(zap.String("service", serviceName), zap.String("env", env))
}

// L returns the global logger, building it from APP_ENV on first use.
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
}

// Level reports the level of loggers built by Init.
func Level() zapcore.Level {
	return level.Level()
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
