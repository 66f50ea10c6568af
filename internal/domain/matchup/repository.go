package matchup

import "context"

// Repository exposes matchup reads for the board and writes for the ingester.
type Repository interface {
	// ListByClassification returns matchups where both participants carry the
	// given classification, ordered by phase rank, week descending (nulls
	// last), then date and time ascending.
	ListByClassification(ctx context.Context, class string) ([]Matchup, error)
	// Upsert inserts or fully refreshes one matchup keyed by its match id.
	Upsert(ctx context.Context, item Matchup) error
}
