package pick

import (
	"errors"
	"fmt"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
)

// ErrMatchLocked marks submissions that reference a matchup whose start
// instant has passed. Use errors.Is against this sentinel; the concrete
// LockedError names the offending matchup.
var ErrMatchLocked = errors.New("matchup is locked")

type LockedError struct {
	MatchID int64
}

func (e LockedError) Error() string {
	return fmt.Sprintf("matchup %d has already started", e.MatchID)
}

func (e LockedError) Unwrap() error {
	return ErrMatchLocked
}

// Pick is one user's prediction for one matchup, keyed by (user, matchup).
type Pick struct {
	UserID    int64
	MatchID   int64
	TeamID    string
	Side      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Submission is a validated batch of picks together with the submitting
// profile and the instant the lock check is evaluated against. The whole
// batch is persisted atomically or not at all.
type Submission struct {
	User  user.Profile
	Picks []Pick
	Now   time.Time
}

// CheckLock rejects the batch if any pick references a known matchup whose
// start instant is at or before now. Match ids absent from starts carry no
// lock information and are skipped.
func CheckLock(starts map[int64]time.Time, picks []Pick, now time.Time) error {
	for _, p := range picks {
		startAt, known := starts[p.MatchID]
		if !known {
			continue
		}
		if !startAt.After(now) {
			return LockedError{MatchID: p.MatchID}
		}
	}
	return nil
}
