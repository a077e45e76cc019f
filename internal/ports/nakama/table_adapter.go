package nakama

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaTableAdapter implements ports.TablePort using Nakama authoritative matches.
type NakamaTableAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaTableAdapter creates a new table adapter.
func NewNakamaTableAdapter(nk runtime.NakamaModule) *NakamaTableAdapter {
	return &NakamaTableAdapter{
		nk: nk,
	}
}

// CreateTable creates a Farkle match with the host recorded in its params.
func (a *NakamaTableAdapter) CreateTable(ctx context.Context, hostUserID string) (string, error) {
	matchID, err := a.nk.MatchCreate(ctx, MatchNameFarkle, map[string]interface{}{paramHost: hostUserID})
	if err != nil {
		return "", fmt.Errorf("failed to create match: %w", err)
	}
	return matchID, nil
}

// FindOpenTable lists open Farkle matches labelled with the host, connected or not.
func (a *NakamaTableAdapter) FindOpenTable(ctx context.Context, hostUserID string) (string, error) {
	query := fmt.Sprintf("+label.%s:T +label.game:farkle +label.%s:%q", MatchLabelKey_Open, paramHost, hostUserID)

	limit := 1
	authoritative := true

	// Any size: the host may be disconnected or hold several sessions.
	matches, err := a.nk.MatchList(ctx, limit, authoritative, "", nil, nil, query)
	if err != nil {
		return "", fmt.Errorf("failed to list matches: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].MatchId, nil
}
