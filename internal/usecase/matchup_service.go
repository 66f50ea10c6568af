package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/cache"
)

// Board is the matchup listing plus the side computations the games page
// needs: the distinct regular-season weeks present (descending) and whether
// any postseason matchup exists.
type Board struct {
	Matchups      []matchup.Matchup
	RegularWeeks  []int
	HasPostseason bool
}

type MatchupService struct {
	repo           matchup.Repository
	classification string
	cache          *cache.Store
}

func NewMatchupService(repo matchup.Repository, classification string) *MatchupService {
	classification = strings.TrimSpace(classification)
	if classification == "" {
		classification = "fbs"
	}
	return &MatchupService{
		repo:           repo,
		classification: classification,
	}
}

// SetCache enables read caching for the board. Matchup rows only change when
// the ingester runs, so a short TTL is enough.
func (s *MatchupService) SetCache(store *cache.Store) {
	s.cache = store
}

func (s *MatchupService) Board(ctx context.Context) (Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.Board")
	defer span.End()

	if s.cache == nil {
		return s.loadBoard(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, "board:"+s.classification, func(ctx context.Context) (any, error) {
		return s.loadBoard(ctx)
	})
	if err != nil {
		return Board{}, err
	}

	board, ok := value.(Board)
	if !ok {
		return s.loadBoard(ctx)
	}
	return board, nil
}

func (s *MatchupService) loadBoard(ctx context.Context) (Board, error) {
	items, err := s.repo.ListByClassification(ctx, s.classification)
	if err != nil {
		return Board{}, fmt.Errorf("list matchups by classification: %w", err)
	}

	return Board{
		Matchups:      items,
		RegularWeeks:  regularWeeks(items),
		HasPostseason: hasPostseason(items),
	}, nil
}

func regularWeeks(items []matchup.Matchup) []int {
	seen := make(map[int]struct{}, 20)
	for _, item := range items {
		if item.SeasonType != matchup.SeasonTypeRegular || item.Week == nil {
			continue
		}
		seen[*item.Week] = struct{}{}
	}

	weeks := make([]int, 0, len(seen))
	for week := range seen {
		weeks = append(weeks, week)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(weeks)))
	return weeks
}

func hasPostseason(items []matchup.Matchup) bool {
	for _, item := range items {
		if item.SeasonType == matchup.SeasonTypePostseason {
			return true
		}
	}
	return false
}
