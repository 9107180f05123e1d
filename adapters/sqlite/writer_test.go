package fixturesqlite

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-fixtures/fixture"
)

func parseDoc(t *testing.T, doc string) *fixture.Dataset {
	t.Helper()
	ds, err := fixture.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ds
}

func writeTempSQLite(t *testing.T, data []byte) string {
	t.Helper()

	file, err := os.CreateTemp("", "fixtures-test-*.sqlite")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		t.Fatalf("write temp file: %v", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		t.Fatalf("close temp file: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Remove(file.Name())
	})
	return file.Name()
}

func renderToDB(t *testing.T, ds *fixture.Dataset, opts fixture.WriteOptions) (*sql.DB, fixture.WriteStats) {
	t.Helper()

	buf := &bytes.Buffer{}
	stats, err := Writer{}.Write(context.Background(), ds, buf, opts)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if stats.Bytes != int64(buf.Len()) {
		t.Fatalf("expected %d bytes counted, got %d", buf.Len(), stats.Bytes)
	}

	path := writeTempSQLite(t, buf.Bytes())
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, stats
}

func TestWriter_TablePerKeyAllColumnsText(t *testing.T) {
	ds := parseDoc(t, `{
		"People": [{"name": "Ann", "age": 30}, {"name": "Bo", "age": 25}],
		"Empty": []
	}`)

	db, stats := renderToDB(t, ds, fixture.WriteOptions{})
	if stats.Tables != 1 || stats.Rows != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'Empty'`).Scan(&count); err != nil {
		t.Fatalf("master query: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty table must not be created")
	}

	rows, err := db.Query(`PRAGMA table_info(People)`)
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names, types []string
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			dflt       sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &primaryKey); err != nil {
			t.Fatalf("scan table_info: %v", err)
		}
		names = append(names, name)
		types = append(types, colType)
	}
	if len(names) != 2 || names[0] != "name" || names[1] != "age" {
		t.Fatalf("unexpected columns: %v", names)
	}
	for _, colType := range types {
		if !strings.EqualFold(colType, "text") {
			t.Fatalf("expected text columns, got %v", types)
		}
	}
}

func TestWriter_ValuesStoredAsText(t *testing.T) {
	ds := parseDoc(t, `{"People": [{"name": "Ann", "age": 30}, {"name": "Bo", "age": 25}]}`)

	db, _ := renderToDB(t, ds, fixture.WriteOptions{})

	rows, err := db.Query(`SELECT name, age FROM People`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var got [][2]string
	for rows.Next() {
		var name, age string
		if err := rows.Scan(&name, &age); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, [2]string{name, age})
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0] != [2]string{"Ann", "30"} || got[1] != [2]string{"Bo", "25"} {
		t.Fatalf("unexpected rows: %v", got)
	}
}

func TestWriter_ScalarCoercion(t *testing.T) {
	ds := parseDoc(t, `{"T": [{"b": true, "n": 1.5, "s": "it's fine"}]}`)

	db, _ := renderToDB(t, ds, fixture.WriteOptions{})

	var b, n, s string
	if err := db.QueryRow(`SELECT b, n, s FROM T`).Scan(&b, &n, &s); err != nil {
		t.Fatalf("select: %v", err)
	}
	if b != "true" || n != "1.5" || s != "it's fine" {
		t.Fatalf("unexpected values: %q %q %q", b, n, s)
	}
}

// The legacy insert path interpolates values wrapped in double quotes with
// no escaping; a value containing a double quote corrupts the statement.
// This is current behavior, asserted on purpose.
func TestWriter_EmbeddedDoubleQuoteCorruptsInsert(t *testing.T) {
	ds := parseDoc(t, `{"T": [{"name": "A\"B"}]}`)

	_, err := Writer{}.Write(context.Background(), ds, &bytes.Buffer{}, fixture.WriteOptions{})
	if err == nil {
		t.Fatalf("expected the interpolated insert to fail")
	}
	if fixture.KindFromError(err) != fixture.KindInternal {
		t.Fatalf("expected internal kind, got %q", fixture.KindFromError(err))
	}
}

func TestWriter_HardenedEscapesValues(t *testing.T) {
	ds := parseDoc(t, `{"T": [{"name": "A\"B"}]}`)

	opts := fixture.WriteOptions{SQLite: fixture.SQLiteOptions{Hardened: true}}
	db, stats := renderToDB(t, ds, opts)
	if stats.Rows != 1 {
		t.Fatalf("expected 1 row, got %d", stats.Rows)
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM T`).Scan(&name); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != `A"B` {
		t.Fatalf("expected stored quote, got %q", name)
	}
}

func TestWriter_NilDataset(t *testing.T) {
	_, err := Writer{}.Write(context.Background(), nil, &bytes.Buffer{}, fixture.WriteOptions{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if fixture.KindFromError(err) != fixture.KindValidation {
		t.Fatalf("expected validation kind, got %q", fixture.KindFromError(err))
	}
}
