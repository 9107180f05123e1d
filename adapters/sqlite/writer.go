package fixturesqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-fixtures/fixture"
	_ "modernc.org/sqlite"
)

// Writer renders the dataset into a SQLite database file: one table per
// non-empty dataset key, every column declared text.
type Writer struct{}

// Write buffers the dataset into a temp SQLite database and streams it to w.
func (sw Writer) Write(ctx context.Context, ds *fixture.Dataset, w io.Writer, opts fixture.WriteOptions) (fixture.WriteStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ds == nil {
		return fixture.WriteStats{}, fixture.NewError(fixture.KindValidation, "dataset is required", nil)
	}

	tempFile, err := os.CreateTemp("", "go-fixtures-*.sqlite")
	if err != nil {
		return fixture.WriteStats{}, fixture.NewError(fixture.KindInternal, "sqlite temp file create failed", err)
	}
	path := tempFile.Name()
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(path)
		return fixture.WriteStats{}, fixture.NewError(fixture.KindInternal, "sqlite temp file close failed", err)
	}
	defer func() {
		_ = os.Remove(path)
	}()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fixture.WriteStats{}, fixture.NewError(fixture.KindInternal, "sqlite open failed", err)
	}

	stats, err := writeTables(ctx, db, ds, opts.SQLite)
	if err != nil {
		_ = db.Close()
		return stats, err
	}
	if err := db.Close(); err != nil {
		return stats, fixture.NewError(fixture.KindInternal, "sqlite close failed", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return stats, fixture.NewError(fixture.KindInternal, "sqlite temp file open failed", err)
	}
	defer func() {
		_ = file.Close()
	}()

	written, err := io.Copy(w, file)
	stats.Bytes = written
	if err != nil {
		return stats, fixture.NewError(fixture.KindIO, "sqlite copy failed", err)
	}
	return stats, nil
}

func writeTables(ctx context.Context, db *sql.DB, ds *fixture.Dataset, opts fixture.SQLiteOptions) (fixture.WriteStats, error) {
	stats := fixture.WriteStats{}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fixture.NewError(fixture.KindInternal, "sqlite begin transaction failed", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range ds.Tables {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if table.Empty() {
			continue
		}

		if err := createTable(ctx, tx, table, opts); err != nil {
			return stats, err
		}
		for _, row := range table.Rows {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := insertRow(ctx, tx, table.Name, row, opts); err != nil {
				return stats, err
			}
			stats.Rows++
		}
		stats.Tables++
	}

	if err := tx.Commit(); err != nil {
		return stats, fixture.NewError(fixture.KindInternal, "sqlite commit failed", err)
	}
	return stats, nil
}

func createTable(ctx context.Context, tx *sql.Tx, table fixture.Table, opts fixture.SQLiteOptions) error {
	columns := table.Columns()
	if opts.Hardened {
		defs := make([]string, len(columns))
		for i, col := range columns {
			defs[i] = quoteIdentifier(col) + " TEXT"
		}
		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(table.Name), strings.Join(defs, ", "))
		if _, err := tx.ExecContext(ctx, createSQL); err != nil {
			return fixture.NewError(fixture.KindInternal, fmt.Sprintf("sqlite create table %q failed", table.Name), err)
		}
		return nil
	}

	// Legacy form: bare identifiers, lowercase type keyword.
	createSQL := fmt.Sprintf("create table %s (%s text)", table.Name, strings.Join(columns, " text, "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fixture.NewError(fixture.KindInternal, fmt.Sprintf("sqlite create table %q failed", table.Name), err)
	}
	return nil
}

// insertRow is the substitution point between the faithful and hardened
// insert paths. The faithful path interpolates each value wrapped in double
// quotes with no escaping, so embedded double quotes corrupt the statement.
func insertRow(ctx context.Context, tx *sql.Tx, tableName string, row fixture.Row, opts fixture.SQLiteOptions) error {
	if opts.Hardened {
		names := make([]string, len(row))
		placeholders := make([]string, len(row))
		args := make([]any, len(row))
		for i, field := range row {
			names[i] = quoteIdentifier(field.Name)
			placeholders[i] = "?"
			args[i] = sqliteText(field.Value)
		}
		insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quoteIdentifier(tableName), strings.Join(names, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return fixture.NewError(fixture.KindInternal, fmt.Sprintf("sqlite insert into %q failed", tableName), err)
		}
		return nil
	}

	quoted := make([]string, len(row))
	for i, field := range row {
		quoted[i] = `"` + sqliteText(field.Value) + `"`
	}
	insertSQL := fmt.Sprintf("insert into %s values (%s)", tableName, strings.Join(quoted, ", "))
	if _, err := tx.ExecContext(ctx, insertSQL); err != nil {
		return fixture.NewError(fixture.KindInternal, fmt.Sprintf("sqlite insert into %q failed", tableName), err)
	}
	return nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqliteText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(payload)
	}
}
