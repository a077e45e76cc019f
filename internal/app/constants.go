package app

import "time"

// DefaultHostTokenTTL bounds how long a host token can be used to join its match.
const DefaultHostTokenTTL = time.Hour

// Host token claim names beyond the registered JWT ones.
const (
	claimMatchID = "mid"
	claimRole    = "role"

	roleHost = "host"
)
