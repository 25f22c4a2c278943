package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("teams").
		Where(Eq("category", "men"), IsNull("deleted_at")).
		OrderBy("name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM teams WHERE category = $1 AND deleted_at IS NULL ORDER BY name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "men" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrCondition(t *testing.T) {
	query, args, err := Select("*").
		From("matches").
		Where(
			Or(Eq("home_team_public_id", "t1"), Eq("away_team_public_id", "t1")),
			IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM matches WHERE (home_team_public_id = $1 OR away_team_public_id = $2) AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("public_id", "name").
		Values("t1", "Tigres").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != "Tigres" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Goals    int    `db:"goals"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("players", row{PublicID: "p1", Goals: 3, Ignored: "x", internal: "y"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO players (public_id, goals) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "p1" || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_OmitsZeroOmitEmptyFields(t *testing.T) {
	type row struct {
		PublicID string     `db:"public_id"`
		Goals    int        `db:"goals"`
		PlayedAt *time.Time `db:"played_at,omitempty"`
	}

	query, args, err := InsertModel("matches", row{PublicID: "m1"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if want := "INSERT INTO matches (public_id, goals) VALUES ($1, $2)"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[1] != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("matches", (*row)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestMustColumns(t *testing.T) {
	type row struct {
		ID        int64  `db:"id"`
		PublicID  string `db:"public_id,omitempty"`
		Transient string
	}

	got := MustColumns(row{})
	if len(got) != 2 || got[0] != "id" || got[1] != "public_id" {
		t.Fatalf("unexpected columns: %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a type without db tags")
		}
	}()
	MustColumns(struct{ Name string }{})
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "t1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET name = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_SetModel(t *testing.T) {
	type row struct {
		HomeGoals int `db:"home_goals"`
		AwayGoals int `db:"away_goals"`
	}

	query, args, err := Update("matches").
		SetModel(row{HomeGoals: 3, AwayGoals: 1}).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "m1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET home_goals = $1, away_goals = $2, updated_at = NOW() WHERE public_id = $3 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 3 || args[1] != 1 || args[2] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_SetModelRejectsNonStruct(t *testing.T) {
	if _, _, err := Update("matches").SetModel(42).ToSQL(); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
