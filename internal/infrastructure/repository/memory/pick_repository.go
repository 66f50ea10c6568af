package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/pick"
	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
)

type pickKey struct {
	userID  int64
	matchID int64
}

// PickRepository mirrors the transactional submit semantics against maps:
// the lock check runs against the shared matchup set before any state
// mutates, so a locked batch leaves nothing behind.
type PickRepository struct {
	mu       sync.RWMutex
	matchups *MatchupRepository
	picks    map[pickKey]pick.Pick
	users    map[int64]user.Profile
}

func NewPickRepository(matchups *MatchupRepository) *PickRepository {
	return &PickRepository{
		matchups: matchups,
		picks:    make(map[pickKey]pick.Pick),
		users:    make(map[int64]user.Profile),
	}
}

func (r *PickRepository) SubmitBatch(_ context.Context, submission pick.Submission) error {
	starts := r.matchups.StartTimes()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := pick.CheckLock(starts, submission.Picks, submission.Now); err != nil {
		return err
	}

	profile := submission.User
	if existing, ok := r.users[profile.ID]; ok {
		profile.Admin = existing.Admin
	}
	r.users[profile.ID] = profile

	for _, p := range submission.Picks {
		key := pickKey{userID: submission.User.ID, matchID: p.MatchID}
		createdAt := submission.Now
		if existing, ok := r.picks[key]; ok {
			createdAt = existing.CreatedAt
		}
		r.picks[key] = pick.Pick{
			UserID:    submission.User.ID,
			MatchID:   p.MatchID,
			TeamID:    p.TeamID,
			Side:      p.Side,
			CreatedAt: createdAt,
			UpdatedAt: submission.Now,
		}
	}
	return nil
}

func (r *PickRepository) ListByUser(_ context.Context, userID int64) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for key, p := range r.picks {
		if key.userID != userID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

// User reports the stored profile, for asserting upsert behavior in tests.
func (r *PickRepository) User(id int64) (user.Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.users[id]
	return profile, ok
}

// CreatedAt reports when a stored pick was first written.
func (r *PickRepository) CreatedAt(userID, matchID int64) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.picks[pickKey{userID: userID, matchID: matchID}]
	if !ok {
		return time.Time{}, false
	}
	return p.CreatedAt, true
}
