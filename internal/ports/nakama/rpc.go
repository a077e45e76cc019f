package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"farkle/internal/app"
	"farkle/internal/config"
	"farkle/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// hostTokens is set at module init; tests may replace it.
var hostTokens *app.HostTokenService

// newTables builds the table port for an RPC call; tests may replace it.
var newTables = func(nk runtime.NakamaModule) ports.TablePort {
	return NewNakamaTableAdapter(nk)
}

// HostTableResponse is the payload returned to clients that create or resume a table.
type HostTableResponse struct {
	MatchID   string `json:"match_id"`
	HostToken string `json:"host_token"`
	IsNew     bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcCreateMatch, rpcCreateMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcResumeMatch, rpcResumeMatch)
}

// hostTokenService returns the module token service, or one built from the runtime env.
// Missing credentials fall back to a development secret.
func hostTokenService(ctx context.Context, logger runtime.Logger) *app.HostTokenService {
	if hostTokens != nil {
		return hostTokens
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env[envHostTokenSecret]
	issuer := env[envHostTokenIssuer]
	if secret == "" {
		secret = devHostTokenSecret
		logger.Warn("Host token secret missing from env, using development default.")
	}
	if issuer == "" {
		issuer = defaultHostTokenIssuer
	}
	return app.NewHostTokenService(secret, issuer, config.GetGameConfig().HostTokenTTL())
}

func rpcCreateMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	matchID, err := newTables(nk).CreateTable(ctx, userID)
	if err != nil {
		logger.Error("rpcCreateMatch [User:%s]: %v", userID, err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}
	logger.Info("rpcCreateMatch [User:%s]: Created new table %s", userID, matchID)

	return hostTableResponse(ctx, logger, userID, matchID, true)
}

func rpcResumeMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16)
	}

	matchID, err := newTables(nk).FindOpenTable(ctx, userID)
	if err != nil {
		logger.Error("rpcResumeMatch [User:%s]: %v", userID, err)
		return "", runtime.NewError("Internal error", 13)
	}
	if matchID == "" {
		return "", runtime.NewError("No open table", 5) // NOT_FOUND
	}
	logger.Info("rpcResumeMatch [User:%s]: Found table %s", userID, matchID)

	return hostTableResponse(ctx, logger, userID, matchID, false)
}

func hostTableResponse(ctx context.Context, logger runtime.Logger, userID, matchID string, isNew bool) (string, error) {
	token, err := hostTokenService(ctx, logger).Issue(userID, matchID)
	if err != nil {
		logger.Error("Failed to issue host token for %s: %v", userID, err)
		return "", runtime.NewError("Internal error", 13)
	}

	b, err := json.Marshal(HostTableResponse{MatchID: matchID, HostToken: token, IsNew: isNew})
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
