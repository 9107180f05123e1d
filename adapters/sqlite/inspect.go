package fixturesqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-fixtures/fixture"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ColumnInfo describes one column of a generated table.
type ColumnInfo struct {
	Name    string
	Type    string
	NotNull bool
}

// TableInfo describes one generated table.
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
	Rows    int64
}

// RowSet is the contents of one generated table.
type RowSet struct {
	Columns []string
	Rows    [][]string
}

// Inspector reads back a generated fixture database.
type Inspector struct {
	DB *bun.DB
}

// Open opens the fixture database at path for inspection.
func Open(path string) (*Inspector, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fixture.NewError(fixture.KindInternal, "sqlite open failed", err)
	}
	return &Inspector{DB: bun.NewDB(sqldb, sqlitedialect.New())}, nil
}

// Close releases the underlying connection.
func (i *Inspector) Close() error {
	if i == nil || i.DB == nil {
		return nil
	}
	return i.DB.Close()
}

// Tables lists the generated tables in creation order, with their declared
// columns and row counts.
func (i *Inspector) Tables(ctx context.Context) ([]TableInfo, error) {
	if i == nil || i.DB == nil {
		return nil, fixture.NewError(fixture.KindInternal, "inspector database not configured", nil)
	}

	var names []string
	if err := i.DB.NewRaw(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'",
	).Scan(ctx, &names); err != nil {
		return nil, fixture.NewError(fixture.KindInternal, "sqlite master query failed", err)
	}

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		info := TableInfo{Name: name}

		columns, err := i.columns(ctx, name)
		if err != nil {
			return nil, err
		}
		info.Columns = columns

		if err := i.DB.NewRaw(
			fmt.Sprintf("SELECT count(*) FROM %s", quoteIdentifier(name)),
		).Scan(ctx, &info.Rows); err != nil {
			return nil, fixture.NewError(fixture.KindInternal, fmt.Sprintf("sqlite count for %q failed", name), err)
		}

		tables = append(tables, info)
	}
	return tables, nil
}

// Table returns the full contents of one generated table.
func (i *Inspector) Table(ctx context.Context, name string) (RowSet, error) {
	if i == nil || i.DB == nil {
		return RowSet{}, fixture.NewError(fixture.KindInternal, "inspector database not configured", nil)
	}

	rows, err := i.DB.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(name)))
	if err != nil {
		return RowSet{}, fixture.NewError(fixture.KindNotFound, fmt.Sprintf("table %q not found", name), err)
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return RowSet{}, fixture.NewError(fixture.KindInternal, "sqlite columns failed", err)
	}

	set := RowSet{Columns: columns}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		targets := make([]any, len(columns))
		for idx := range values {
			targets[idx] = &values[idx]
		}
		if err := rows.Scan(targets...); err != nil {
			return RowSet{}, fixture.NewError(fixture.KindInternal, "sqlite scan failed", err)
		}

		record := make([]string, len(columns))
		for idx, value := range values {
			record[idx] = value.String
		}
		set.Rows = append(set.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return RowSet{}, fixture.NewError(fixture.KindInternal, "sqlite rows failed", err)
	}
	return set, nil
}

func (i *Inspector) columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := i.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdentifier(table)))
	if err != nil {
		return nil, fixture.NewError(fixture.KindInternal, fmt.Sprintf("sqlite table_info for %q failed", table), err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var columns []ColumnInfo
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
			return nil, fixture.NewError(fixture.KindInternal, "sqlite table_info scan failed", err)
		}
		columns = append(columns, ColumnInfo{Name: name, Type: colType, NotNull: notNull != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, fixture.NewError(fixture.KindInternal, "sqlite table_info rows failed", err)
	}
	return columns, nil
}
