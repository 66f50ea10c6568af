package postgres

import "time"

type pickTableModel struct {
	UserID    int64     `db:"user_id"`
	MatchID   int64     `db:"match_id"`
	TeamID    string    `db:"team_id"`
	Side      string    `db:"side"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type pickInsertModel struct {
	UserID  int64  `db:"user_id"`
	MatchID int64  `db:"match_id"`
	TeamID  string `db:"team_id"`
	Side    string `db:"side"`
}

type userInsertModel struct {
	ID          int64  `db:"id"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
	Avatar      string `db:"avatar"`
	IsAdmin     bool   `db:"is_admin"`
}
