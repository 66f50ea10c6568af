package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/pick"
	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
	"github.com/MelloMattGit/CFBPyckem/internal/infrastructure/repository/memory"
)

func testProfile() user.Profile {
	return user.Profile{ID: 42, Username: "mello", DisplayName: "Mello"}
}

func newPickFixture(t *testing.T, now time.Time) (*PickService, *memory.PickRepository) {
	t.Helper()

	matchupRepo := memory.NewMatchupRepository(memory.SeedMatchups(now))
	pickRepo := memory.NewPickRepository(matchupRepo)
	svc := NewPickService(pickRepo, nil)
	svc.now = func() time.Time { return now }
	return svc, pickRepo
}

func TestPickService_Submit_PersistsBatch(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, repo := newPickFixture(t, now)

	err := svc.Submit(context.Background(), testProfile(), []PickRequest{
		{MatchID: 101, TeamID: "130", Side: "home"},
		{MatchID: 102, TeamID: "61", Side: "away"},
	})
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}

	stored, err := repo.ListByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("unexpected pick count: %d", len(stored))
	}
	if stored[0].MatchID != 101 || stored[0].TeamID != "130" {
		t.Fatalf("unexpected first pick: %+v", stored[0])
	}

	profile, ok := repo.User(42)
	if !ok {
		t.Fatal("expected profile to be upserted")
	}
	if profile.Username != "mello" {
		t.Fatalf("unexpected stored username: %q", profile.Username)
	}
}

func TestPickService_Submit_ResubmitOverwritesKeepingCreatedAt(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, repo := newPickFixture(t, now)

	if err := svc.Submit(context.Background(), testProfile(), []PickRequest{{MatchID: 101, TeamID: "130", Side: "home"}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	later := now.Add(1 * time.Hour)
	svc.now = func() time.Time { return later }
	if err := svc.Submit(context.Background(), testProfile(), []PickRequest{{MatchID: 101, TeamID: "194", Side: "away"}}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	stored, err := repo.ListByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("unexpected pick count: %d", len(stored))
	}
	if stored[0].TeamID != "194" || stored[0].Side != "away" {
		t.Fatalf("expected resubmit to overwrite, got %+v", stored[0])
	}

	createdAt, ok := repo.CreatedAt(42, 101)
	if !ok {
		t.Fatal("expected stored pick")
	}
	if !createdAt.Equal(now) {
		t.Fatalf("expected created_at preserved at %v, got %v", now, createdAt)
	}
	if !stored[0].UpdatedAt.Equal(later) {
		t.Fatalf("expected updated_at refreshed to %v, got %v", later, stored[0].UpdatedAt)
	}
}

func TestPickService_Submit_LockedMatchRejectsWholeBatch(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, repo := newPickFixture(t, now)

	// 103 kicked off two hours ago; 101 is still open.
	err := svc.Submit(context.Background(), testProfile(), []PickRequest{
		{MatchID: 101, TeamID: "130", Side: "home"},
		{MatchID: 103, TeamID: "251", Side: "home"},
	})
	if !errors.Is(err, pick.ErrMatchLocked) {
		t.Fatalf("expected ErrMatchLocked, got %v", err)
	}

	var locked pick.LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %T", err)
	}
	if locked.MatchID != 103 {
		t.Fatalf("unexpected locked match id: %d", locked.MatchID)
	}

	stored, listErr := repo.ListByUser(context.Background(), 42)
	if listErr != nil {
		t.Fatalf("list picks: %v", listErr)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no picks after rejected batch, got %d", len(stored))
	}
}

func TestPickService_Submit_UnknownMatchStillWritten(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, repo := newPickFixture(t, now)

	err := svc.Submit(context.Background(), testProfile(), []PickRequest{{MatchID: 999999, TeamID: "130", Side: "home"}})
	if err != nil {
		t.Fatalf("submit pick for unknown matchup: %v", err)
	}

	stored, err := repo.ListByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(stored) != 1 || stored[0].MatchID != 999999 {
		t.Fatalf("expected pick for unknown matchup to land, got %+v", stored)
	}
}

func TestPickService_Submit_EmptyBatch(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newPickFixture(t, now)

	err := svc.Submit(context.Background(), testProfile(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPickService_Submit_InvalidElementNamesIndex(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newPickFixture(t, now)

	err := svc.Submit(context.Background(), testProfile(), []PickRequest{
		{MatchID: 101, TeamID: "130"},
		{MatchID: 102, TeamID: "   "},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "picks[1]") {
		t.Fatalf("expected error to name the offending element, got %q", err.Error())
	}
}

func TestPickService_Submit_InvalidProfile(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newPickFixture(t, now)

	err := svc.Submit(context.Background(), user.Profile{}, []PickRequest{{MatchID: 101, TeamID: "130"}})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPickService_ListForUser_KeyedByMatchID(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newPickFixture(t, now)

	if err := svc.Submit(context.Background(), testProfile(), []PickRequest{
		{MatchID: 101, TeamID: "130", Side: "home"},
		{MatchID: 102, TeamID: "61", Side: "away"},
	}); err != nil {
		t.Fatalf("submit picks: %v", err)
	}

	byMatch, err := svc.ListForUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(byMatch) != 2 {
		t.Fatalf("unexpected pick count: %d", len(byMatch))
	}
	if byMatch[102].TeamID != "61" {
		t.Fatalf("unexpected pick for match 102: %+v", byMatch[102])
	}
}

func TestPickService_ListForUser_InvalidUserID(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newPickFixture(t, now)

	_, err := svc.ListForUser(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
