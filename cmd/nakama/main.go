// Command nakama is the Farkle runtime plugin, built with -buildmode=plugin.
package main

import (
	"context"
	"database/sql"
	"fmt"

	"farkle/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule is the symbol Nakama looks up when it loads the plugin.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := nakama.InitModule(ctx, logger, db, nk, initializer); err != nil {
		return fmt.Errorf("farkle module init: %w", err)
	}
	return nil
}
