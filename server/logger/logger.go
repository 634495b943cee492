package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LOG_LEVEL_ENV overrides the default debug level, e.g. FOLIO_LOG_LEVEL=warn
const LOG_LEVEL_ENV = "FOLIO_LOG_LEVEL"

func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if level, ok := os.LookupEnv(LOG_LEVEL_ENV); ok {
		if err := config.Level.UnmarshalText([]byte(level)); err != nil {
			log.Printf("invalid %v %q, using debug", LOG_LEVEL_ENV, level)
		}
	}

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}
