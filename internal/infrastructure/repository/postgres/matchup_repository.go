package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	qb "github.com/MelloMattGit/CFBPyckem/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

func (r *MatchupRepository) ListByClassification(ctx context.Context, classification string) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(
			qb.Eq("home_class", classification),
			qb.Eq("away_class", classification),
		).
		OrderBy(
			"CASE season_type WHEN 'postseason' THEN 0 WHEN 'regular' THEN 1 ELSE 2 END",
			"week DESC NULLS LAST",
			"date",
			"time",
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchups by classification query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchups by classification: %w", err)
	}

	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupToDomain(row))
	}
	return out, nil
}

func (r *MatchupRepository) Upsert(ctx context.Context, item matchup.Matchup) error {
	insertModel := matchupInsertModel{
		MatchID:    item.ID,
		HomeTeam:   item.HomeTeam,
		AwayTeam:   item.AwayTeam,
		HomeID:     item.HomeID,
		AwayID:     item.AwayID,
		HomeClass:  item.HomeClass,
		AwayClass:  item.AwayClass,
		Date:       item.Date,
		Time:       timePtrToNullTime(item.Time),
		Season:     item.Season,
		Week:       intPtrToNullInt64(item.Week),
		SeasonType: item.SeasonType,
	}
	query, args, err := qb.InsertModel("matchups", insertModel, `ON CONFLICT (match_id)
DO UPDATE SET
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_id = EXCLUDED.home_id,
    away_id = EXCLUDED.away_id,
    home_class = EXCLUDED.home_class,
    away_class = EXCLUDED.away_class,
    date = EXCLUDED.date,
    time = EXCLUDED.time,
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    season_type = EXCLUDED.season_type,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert matchup query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert matchup: %w", err)
	}
	return nil
}

func matchupToDomain(row matchupTableModel) matchup.Matchup {
	return matchup.Matchup{
		ID:         row.MatchID,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		HomeID:     row.HomeID,
		AwayID:     row.AwayID,
		HomeClass:  row.HomeClass,
		AwayClass:  row.AwayClass,
		Date:       row.Date,
		Time:       nullTimeToTimePtr(row.Time),
		Season:     row.Season,
		Week:       nullInt64ToIntPtr(row.Week),
		SeasonType: row.SeasonType,
	}
}

func nullTimeToTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func timePtrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
