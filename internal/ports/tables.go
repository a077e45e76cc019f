package ports

import "context"

// TablePort defines how hot-seat tables are created and found on the game server.
type TablePort interface {
	// CreateTable opens a new table hosted by hostUserID and returns its match ID.
	CreateTable(ctx context.Context, hostUserID string) (string, error)

	// FindOpenTable returns the match ID of a table hosted by hostUserID that has not
	// finished yet, or "" when there is none.
	FindOpenTable(ctx context.Context, hostUserID string) (string, error)
}
