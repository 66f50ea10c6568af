package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
)

type MatchupRepository struct {
	mu       sync.RWMutex
	matchups map[int64]matchup.Matchup
}

func NewMatchupRepository(matchups []matchup.Matchup) *MatchupRepository {
	byID := make(map[int64]matchup.Matchup, len(matchups))
	for _, item := range matchups {
		byID[item.ID] = item
	}
	return &MatchupRepository{matchups: byID}
}

func (r *MatchupRepository) ListByClassification(_ context.Context, classification string) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0, len(r.matchups))
	for _, item := range r.matchups {
		if item.HomeClass != classification || item.AwayClass != classification {
			continue
		}
		out = append(out, item)
	}
	sortBoard(out)
	return out, nil
}

func (r *MatchupRepository) Upsert(_ context.Context, item matchup.Matchup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matchups[item.ID] = item
	return nil
}

// StartTimes reports the start instant of every known matchup; pick
// repositories share it for lock checks.
func (r *MatchupRepository) StartTimes() map[int64]time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	starts := make(map[int64]time.Time, len(r.matchups))
	for id, item := range r.matchups {
		starts[id] = item.StartsAt()
	}
	return starts
}

func sortBoard(items []matchup.Matchup) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := matchup.PhaseRank(a.SeasonType), matchup.PhaseRank(b.SeasonType); ra != rb {
			return ra < rb
		}
		if wa, wb := weekRank(a.Week), weekRank(b.Week); wa != wb {
			return wa > wb
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.StartsAt().Before(b.StartsAt())
	})
}

// weekRank orders weeks descending with null weeks last.
func weekRank(week *int) int {
	if week == nil {
		return math.MinInt
	}
	return *week
}
