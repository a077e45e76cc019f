package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"farkle/internal/app"
	"farkle/internal/config"
)

func main() {
	envErr := godotenv.Load()

	path := os.Getenv("FARKLE_CONFIG")
	cfgErr := config.LoadGameConfig(path)
	cfg := config.GetGameConfig()

	zerolog.SetGlobalLevel(parseLevel(cfg.LogLevel))
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "farkle").Logger()

	if envErr != nil {
		logger.Debug().Msg("No .env file found, using environment variables")
	}
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Str("path", path).Msg("config not loaded, using defaults")
	}

	console := NewConsole(app.NewService(nil), cfg, os.Stdout, logger)
	if err := console.Run(os.Stdin); err != nil {
		logger.Fatal().Err(err).Msg("console stopped")
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}
