package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	"github.com/MelloMattGit/CFBPyckem/internal/infrastructure/repository/memory"
)

type fakeScheduleSource struct {
	mu    sync.Mutex
	games map[string][]matchup.Matchup
	errs  map[string]error
	calls []string
}

func (f *fakeScheduleSource) FetchGames(_ context.Context, _ int, seasonType string) ([]matchup.Matchup, error) {
	f.mu.Lock()
	f.calls = append(f.calls, seasonType)
	f.mu.Unlock()

	if err := f.errs[seasonType]; err != nil {
		return nil, err
	}
	return f.games[seasonType], nil
}

func seasonGames(seasonType string, ids ...int64) []matchup.Matchup {
	week := 1
	out := make([]matchup.Matchup, 0, len(ids))
	for _, id := range ids {
		out = append(out, matchup.Matchup{
			ID:         id,
			HomeTeam:   "Home",
			AwayTeam:   "Away",
			HomeClass:  "fbs",
			AwayClass:  "fbs",
			Date:       time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC),
			Season:     2025,
			Week:       &week,
			SeasonType: seasonType,
		})
	}
	return out
}

func TestIngestService_SyncSeason_UpsertsAllSeasonTypes(t *testing.T) {
	source := &fakeScheduleSource{games: map[string][]matchup.Matchup{
		matchup.SeasonTypeRegular:    seasonGames(matchup.SeasonTypeRegular, 1, 2, 3),
		matchup.SeasonTypePostseason: seasonGames(matchup.SeasonTypePostseason, 4),
	}}
	repo := memory.NewMatchupRepository(nil)
	svc := NewIngestService(source, repo, 2, nil)

	report, err := svc.SyncSeason(context.Background(), 2025, []string{"regular", "postseason"})
	if err != nil {
		t.Fatalf("sync season: %v", err)
	}

	if report.Upserted != 4 {
		t.Fatalf("unexpected upserted count: %d", report.Upserted)
	}
	if report.Failed != 0 {
		t.Fatalf("unexpected failed count: %d", report.Failed)
	}
	if len(report.SeasonTypes) != 2 {
		t.Fatalf("unexpected season type count: %d", len(report.SeasonTypes))
	}

	items, err := repo.ListByClassification(context.Background(), "fbs")
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 stored matchups, got %d", len(items))
	}
}

func TestIngestService_SyncSeason_OneFailedTypeStillLandsOthers(t *testing.T) {
	source := &fakeScheduleSource{
		games: map[string][]matchup.Matchup{
			matchup.SeasonTypeRegular: seasonGames(matchup.SeasonTypeRegular, 1, 2),
		},
		errs: map[string]error{
			matchup.SeasonTypePostseason: errors.New("upstream timeout"),
		},
	}
	repo := memory.NewMatchupRepository(nil)
	svc := NewIngestService(source, repo, 2, nil)

	report, err := svc.SyncSeason(context.Background(), 2025, []string{"regular", "postseason"})
	if err != nil {
		t.Fatalf("expected partial sync to succeed, got %v", err)
	}

	if report.Upserted != 2 {
		t.Fatalf("unexpected upserted count: %d", report.Upserted)
	}
	if report.Failed != 1 {
		t.Fatalf("unexpected failed count: %d", report.Failed)
	}

	// Reports come back sorted by season type.
	if report.SeasonTypes[0].SeasonType != matchup.SeasonTypePostseason || report.SeasonTypes[0].Err == nil {
		t.Fatalf("expected postseason failure first, got %+v", report.SeasonTypes[0])
	}
}

func TestIngestService_SyncSeason_AllTypesFailed(t *testing.T) {
	source := &fakeScheduleSource{errs: map[string]error{
		matchup.SeasonTypeRegular:    errors.New("upstream timeout"),
		matchup.SeasonTypePostseason: errors.New("upstream timeout"),
	}}
	svc := NewIngestService(source, memory.NewMatchupRepository(nil), 2, nil)

	_, err := svc.SyncSeason(context.Background(), 2025, []string{"regular", "postseason"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestIngestService_SyncSeason_DefaultsSeasonTypes(t *testing.T) {
	source := &fakeScheduleSource{games: map[string][]matchup.Matchup{}}
	svc := NewIngestService(source, memory.NewMatchupRepository(nil), 2, nil)

	if _, err := svc.SyncSeason(context.Background(), 2025, nil); err != nil {
		t.Fatalf("sync season: %v", err)
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	if len(source.calls) != 2 {
		t.Fatalf("expected regular and postseason fetches, got %v", source.calls)
	}
}

func TestIngestService_SyncSeason_InvalidYear(t *testing.T) {
	svc := NewIngestService(&fakeScheduleSource{}, memory.NewMatchupRepository(nil), 2, nil)

	_, err := svc.SyncSeason(context.Background(), 0, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeSeasonTypes_DedupesAndLowercases(t *testing.T) {
	got := normalizeSeasonTypes([]string{" Regular ", "regular", "POSTSEASON", "", "postseason"})
	if len(got) != 2 || got[0] != "regular" || got[1] != "postseason" {
		t.Fatalf("unexpected normalized season types: %v", got)
	}
}
