package nakama

import (
	"context"
	"database/sql"

	"farkle/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if path := env[envConfigPath]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
		}
	}

	hostTokens = hostTokenService(ctx, logger)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameFarkle, NewMatch); err != nil {
		return err
	}

	logger.Info("Farkle Go module loaded.")
	return nil
}
