package memory

import (
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
)

// SeedMatchups returns a small FBS slate around the given instant: two
// upcoming regular-season games in different weeks, one already-started
// game, and one upcoming postseason game.
func SeedMatchups(now time.Time) []matchup.Matchup {
	week1, week3 := 1, 3
	upcoming := now.Add(48 * time.Hour).UTC()
	started := now.Add(-2 * time.Hour).UTC()
	bowl := now.Add(30 * 24 * time.Hour).UTC()

	return []matchup.Matchup{
		{
			ID:         101,
			HomeTeam:   "Michigan",
			AwayTeam:   "Ohio State",
			HomeID:     "130",
			AwayID:     "194",
			HomeClass:  "fbs",
			AwayClass:  "fbs",
			Date:       dateOf(upcoming),
			Time:       &upcoming,
			Season:     now.Year(),
			Week:       &week1,
			SeasonType: matchup.SeasonTypeRegular,
		},
		{
			ID:         102,
			HomeTeam:   "Alabama",
			AwayTeam:   "Georgia",
			HomeID:     "333",
			AwayID:     "61",
			HomeClass:  "fbs",
			AwayClass:  "fbs",
			Date:       dateOf(upcoming),
			Time:       &upcoming,
			Season:     now.Year(),
			Week:       &week3,
			SeasonType: matchup.SeasonTypeRegular,
		},
		{
			ID:         103,
			HomeTeam:   "Texas",
			AwayTeam:   "Oklahoma",
			HomeID:     "251",
			AwayID:     "201",
			HomeClass:  "fbs",
			AwayClass:  "fbs",
			Date:       dateOf(started),
			Time:       &started,
			Season:     now.Year(),
			Week:       &week1,
			SeasonType: matchup.SeasonTypeRegular,
		},
		{
			ID:         104,
			HomeTeam:   "Oregon",
			AwayTeam:   "Penn State",
			HomeID:     "2483",
			AwayID:     "213",
			HomeClass:  "fbs",
			AwayClass:  "fbs",
			Date:       dateOf(bowl),
			Time:       &bowl,
			Season:     now.Year(),
			SeasonType: matchup.SeasonTypePostseason,
		},
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
