package namer

import "context"

// Namer defines the interface for the generative team-naming capability.
// Calls may be slow or fail; callers treat naming as best-effort and retry
// on the next aggregation cycle.
type Namer interface {
	TeamName(ctx context.Context, members []Player) (string, error)
	// Unsafe asks the content-safety classifier whether text violates the
	// safety policy.
	Unsafe(ctx context.Context, text string) (bool, error)
}
