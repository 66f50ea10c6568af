package postgres

import (
	"database/sql"
	"time"
)

type matchupTableModel struct {
	MatchID    int64         `db:"match_id"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	HomeID     string        `db:"home_id"`
	AwayID     string        `db:"away_id"`
	HomeClass  string        `db:"home_class"`
	AwayClass  string        `db:"away_class"`
	Date       time.Time     `db:"date"`
	Time       sql.NullTime  `db:"time"`
	Season     int           `db:"season"`
	Week       sql.NullInt64 `db:"week"`
	SeasonType string        `db:"season_type"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type matchupInsertModel struct {
	MatchID    int64         `db:"match_id"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	HomeID     string        `db:"home_id"`
	AwayID     string        `db:"away_id"`
	HomeClass  string        `db:"home_class"`
	AwayClass  string        `db:"away_class"`
	Date       time.Time     `db:"date"`
	Time       sql.NullTime  `db:"time"`
	Season     int           `db:"season"`
	Week       sql.NullInt64 `db:"week"`
	SeasonType string        `db:"season_type"`
}
