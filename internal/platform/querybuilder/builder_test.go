package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("match_id", "home_team").
		From("matchups").
		Where(Eq("home_class", "fbs"), IsNull("week")).
		OrderBy("date", "time").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT match_id, home_team FROM matchups WHERE home_class = $1 AND week IS NULL ORDER BY date, time LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "fbs" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InCondition(t *testing.T) {
	query, args, err := Select("*").
		From("picks").
		Where(In("match_id", []any{int64(101), int64(102)})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM picks WHERE match_id IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("*").
		From("picks").
		Where(In("match_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM picks WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("picks").
		Columns("user_id", "match_id", "team_id").
		Values(int64(42), int64(101), "130").
		Suffix("RETURNING user_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO picks (user_id, match_id, team_id) VALUES ($1, $2, $3) RETURNING user_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowLengthMismatch(t *testing.T) {
	_, _, err := InsertInto("picks").
		Columns("user_id", "match_id").
		Values(int64(42)).
		ToSQL()
	if err == nil {
		t.Fatal("expected error for mismatched row length")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		UserID  int64  `db:"user_id"`
		MatchID int64  `db:"match_id"`
		TeamID  string `db:"team_id"`
		NoTag   string
	}

	query, args, err := InsertModel("picks", row{UserID: 42, MatchID: 101, TeamID: "130"},
		"ON CONFLICT (user_id, match_id) DO UPDATE SET team_id = EXCLUDED.team_id")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO picks (user_id, match_id, team_id) VALUES ($1, $2, $3) " +
		"ON CONFLICT (user_id, match_id) DO UPDATE SET team_id = EXCLUDED.team_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != int64(42) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("picks", 7, ""); err == nil {
		t.Fatal("expected error for non-struct model")
	}
}

func TestExprCondition_RewritesPlaceholders(t *testing.T) {
	query, args, err := Select("*").
		From("matchups").
		Where(Expr("week >= ? AND season = ?", 10, 2025)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM matchups WHERE week >= $1 AND season = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
