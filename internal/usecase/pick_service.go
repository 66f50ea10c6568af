package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/pick"
	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
)

// PickRequest is one element of a submission batch.
type PickRequest struct {
	MatchID int64
	TeamID  string
	Side    string
}

type PickService struct {
	pickRepo pick.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewPickService(pickRepo pick.Repository, logger *logging.Logger) *PickService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PickService{
		pickRepo: pickRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates and persists a batch of picks for the given profile. The
// batch is all-or-nothing: any validation failure, any pick referencing a
// matchup that has already started, or any write error leaves the stored pick
// set untouched.
func (s *PickService) Submit(ctx context.Context, profile user.Profile, requests []PickRequest) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if len(requests) == 0 {
		return fmt.Errorf("%w: picks cannot be empty", ErrInvalidInput)
	}

	picks := make([]pick.Pick, 0, len(requests))
	for i, req := range requests {
		if req.MatchID <= 0 {
			return fmt.Errorf("%w: picks[%d] is missing a match id", ErrInvalidInput, i)
		}
		if strings.TrimSpace(req.TeamID) == "" {
			return fmt.Errorf("%w: picks[%d] is missing a team id", ErrInvalidInput, i)
		}
		picks = append(picks, pick.Pick{
			UserID:  profile.ID,
			MatchID: req.MatchID,
			TeamID:  strings.TrimSpace(req.TeamID),
			Side:    strings.TrimSpace(req.Side),
		})
	}

	err := s.pickRepo.SubmitBatch(ctx, pick.Submission{
		User:  profile,
		Picks: picks,
		Now:   s.now(),
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "picks submitted",
		"user_id", profile.ID,
		"count", len(picks),
	)
	return nil
}

// ListForUser returns the caller's picks keyed by match id so the games page
// can show current selections alongside the board.
func (s *PickService) ListForUser(ctx context.Context, userID int64) (map[int64]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListForUser")
	defer span.End()

	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.pickRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list picks by user: %w", err)
	}

	out := make(map[int64]pick.Pick, len(items))
	for _, item := range items {
		out[item.MatchID] = item
	}
	return out, nil
}
