package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	"github.com/MelloMattGit/CFBPyckem/internal/domain/pick"
	qb "github.com/MelloMattGit/CFBPyckem/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// SubmitBatch runs the whole submission in one transaction: start-time
// lookup, lock check, user upsert, then one upsert per pick. Any failure
// rolls the entire batch back.
func (r *PickRepository) SubmitBatch(ctx context.Context, submission pick.Submission) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx submit picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	starts, err := matchupStartTimes(ctx, tx, submission.Picks)
	if err != nil {
		return err
	}
	if err := pick.CheckLock(starts, submission.Picks, submission.Now); err != nil {
		return err
	}

	if err := upsertUser(ctx, tx, submission); err != nil {
		return err
	}

	for _, p := range submission.Picks {
		insertModel := pickInsertModel{
			UserID:  submission.User.ID,
			MatchID: p.MatchID,
			TeamID:  p.TeamID,
			Side:    p.Side,
		}
		query, args, err := qb.InsertModel("picks", insertModel, `ON CONFLICT (user_id, match_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    side = EXCLUDED.side,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert pick query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert pick for matchup %d: %w", p.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submit picks: %w", err)
	}
	return nil
}

func (r *PickRepository) ListByUser(ctx context.Context, userID int64) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(qb.Eq("user_id", userID)).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by user query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by user: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.Pick{
			UserID:    row.UserID,
			MatchID:   row.MatchID,
			TeamID:    row.TeamID,
			Side:      row.Side,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func matchupStartTimes(ctx context.Context, tx *sqlx.Tx, picks []pick.Pick) (map[int64]time.Time, error) {
	if len(picks) == 0 {
		return map[int64]time.Time{}, nil
	}

	ids := make([]int64, 0, len(picks))
	for _, p := range picks {
		ids = append(ids, p.MatchID)
	}

	var rows []struct {
		MatchID int64        `db:"match_id"`
		Date    time.Time    `db:"date"`
		Time    sql.NullTime `db:"time"`
	}
	query := `SELECT match_id, date, time FROM matchups WHERE match_id = ANY($1)`
	if err := tx.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("select matchup start times: %w", err)
	}

	starts := make(map[int64]time.Time, len(rows))
	for _, row := range rows {
		item := matchup.Matchup{Date: row.Date, Time: nullTimeToTimePtr(row.Time)}
		starts[row.MatchID] = item.StartsAt()
	}
	return starts, nil
}

func upsertUser(ctx context.Context, tx *sqlx.Tx, submission pick.Submission) error {
	insertModel := userInsertModel{
		ID:          submission.User.ID,
		Username:    submission.User.Username,
		DisplayName: submission.User.DisplayName,
		Avatar:      submission.User.Avatar,
		IsAdmin:     submission.User.Admin,
	}
	// is_admin is deliberately absent from the update list: the flag is set
	// once on insert and never downgraded by a later submission.
	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    username = EXCLUDED.username,
    display_name = EXCLUDED.display_name,
    avatar = EXCLUDED.avatar,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user %d: %w", submission.User.ID, err)
	}
	return nil
}
