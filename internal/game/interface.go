package game

import "context"

// Coordinator defines the operations a game entity answers. The HTTP layer
// and the aggregation cycle depend on this interface so they can be tested
// against mocks.
type Coordinator interface {
	AssignPlayer(username, country string) (assignedUsername, teamID string, err error)
	RenameFullTeams(ctx context.Context) error
	ReconcileTotals(ctx context.Context) error
	Leaderboard() ([]Standing, error)
	Placement(teamID string) (placement, totalCount int, err error)
	DisplayName(teamID string) (string, error)
}
