package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
)

const defaultIngestWorkers = 8

// ScheduleSource fetches a season's games from the external schedule API.
type ScheduleSource interface {
	FetchGames(ctx context.Context, year int, seasonType string) ([]matchup.Matchup, error)
}

// SyncReport summarizes one ingest run per season type.
type SyncReport struct {
	Season      int
	SeasonTypes []SeasonTypeReport
	Upserted    int
	Failed      int
}

type SeasonTypeReport struct {
	SeasonType string
	Fetched    int
	Upserted   int
	Err        error
}

type IngestService struct {
	source  ScheduleSource
	repo    matchup.Repository
	workers int
	logger  *logging.Logger
}

func NewIngestService(source ScheduleSource, repo matchup.Repository, workers int, logger *logging.Logger) *IngestService {
	if workers < 1 {
		workers = defaultIngestWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		source:  source,
		repo:    repo,
		workers: workers,
		logger:  logger,
	}
}

// SyncSeason fetches each requested season type concurrently and upserts the
// games through a bounded worker pool. A failed fetch fails only its season
// type; games from successful fetches still land.
func (s *IngestService) SyncSeason(ctx context.Context, year int, seasonTypes []string) (SyncReport, error) {
	if year <= 0 {
		return SyncReport{}, fmt.Errorf("%w: season year must be greater than zero", ErrInvalidInput)
	}

	types := normalizeSeasonTypes(seasonTypes)
	if len(types) == 0 {
		types = []string{matchup.SeasonTypeRegular, matchup.SeasonTypePostseason}
	}

	var mu sync.Mutex
	reports := make([]SeasonTypeReport, 0, len(types))

	var wg conc.WaitGroup
	for _, seasonType := range types {
		seasonType := seasonType
		wg.Go(func() {
			games, err := s.source.FetchGames(ctx, year, seasonType)
			row := SeasonTypeReport{SeasonType: seasonType, Fetched: len(games), Err: err}
			if err != nil {
				s.logger.ErrorContext(ctx, "schedule fetch failed",
					"season", year,
					"season_type", seasonType,
					"error", err,
				)
			} else {
				row.Upserted, row.Err = s.upsertGames(ctx, games)
			}

			mu.Lock()
			reports = append(reports, row)
			mu.Unlock()
		})
	}
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].SeasonType < reports[j].SeasonType
	})

	report := SyncReport{Season: year, SeasonTypes: reports}
	for _, row := range reports {
		report.Upserted += row.Upserted
		if row.Err != nil {
			report.Failed++
		}
	}

	s.logger.InfoContext(ctx, "schedule sync finished",
		"season", year,
		"upserted", report.Upserted,
		"failed_season_types", report.Failed,
	)

	if report.Failed == len(reports) {
		return report, fmt.Errorf("%w: every season type failed to sync", ErrDependencyUnavailable)
	}
	return report, nil
}

func (s *IngestService) upsertGames(ctx context.Context, games []matchup.Matchup) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var upserted atomic.Int64
	var firstErr atomic.Pointer[error]
	var workers sync.WaitGroup
	for _, game := range games {
		game := game
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := s.repo.Upsert(ctx, game); err != nil {
				s.logger.ErrorContext(ctx, "matchup upsert failed", "match_id", game.ID, "error", err)
				firstErr.CompareAndSwap(nil, &err)
				return
			}
			upserted.Add(1)
		}); err != nil {
			workers.Done()
			return int(upserted.Load()), fmt.Errorf("submit upsert task: %w", err)
		}
	}
	workers.Wait()

	if errPtr := firstErr.Load(); errPtr != nil {
		return int(upserted.Load()), fmt.Errorf("upsert matchups: %w", *errPtr)
	}
	return int(upserted.Load()), nil
}

func normalizeSeasonTypes(seasonTypes []string) []string {
	out := make([]string, 0, len(seasonTypes))
	seen := make(map[string]struct{}, len(seasonTypes))
	for _, seasonType := range seasonTypes {
		v := strings.ToLower(strings.TrimSpace(seasonType))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
