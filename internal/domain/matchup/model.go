package matchup

import (
	"strings"
	"time"
)

const (
	SeasonTypeRegular    = "regular"
	SeasonTypePostseason = "postseason"
)

// Matchup is one scheduled contest between two teams. Rows are owned by the
// schedule ingester; the web process only reads them.
type Matchup struct {
	ID         int64
	HomeTeam   string
	AwayTeam   string
	HomeID     string
	AwayID     string
	HomeClass  string
	AwayClass  string
	Date       time.Time
	Time       *time.Time
	Season     int
	Week       *int
	SeasonType string
}

// StartsAt combines the scheduled date and time into the start instant. A
// missing time means the matchup is treated as starting at the top of its day.
func (m Matchup) StartsAt() time.Time {
	day := time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, time.UTC)
	if m.Time == nil {
		return day
	}
	return day.Add(timeOfDay(*m.Time))
}

// PhaseRank orders season phases for board listings: postseason first, then
// regular season, then anything unknown.
func PhaseRank(seasonType string) int {
	switch strings.ToLower(strings.TrimSpace(seasonType)) {
	case SeasonTypePostseason:
		return 0
	case SeasonTypeRegular:
		return 1
	default:
		return 2
	}
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
