package query

import (
	"context"

	fixturesqlite "github.com/goliatone/go-fixtures/adapters/sqlite"
	"github.com/goliatone/go-fixtures/fixture"
)

// DatabaseSchemaHandler returns the tables of a generated fixture database.
type DatabaseSchemaHandler struct{}

func NewDatabaseSchemaHandler() *DatabaseSchemaHandler {
	return &DatabaseSchemaHandler{}
}

func (h *DatabaseSchemaHandler) Query(ctx context.Context, msg DatabaseSchema) ([]fixturesqlite.TableInfo, error) {
	inspector, err := fixturesqlite.Open(msg.Path)
	if err != nil {
		return nil, fixture.AsGoError(err)
	}
	defer func() {
		_ = inspector.Close()
	}()

	tables, err := inspector.Tables(ctx)
	if err != nil {
		return nil, fixture.AsGoError(err)
	}
	return tables, nil
}

// TableRowsHandler returns the contents of one generated table.
type TableRowsHandler struct{}

func NewTableRowsHandler() *TableRowsHandler {
	return &TableRowsHandler{}
}

func (h *TableRowsHandler) Query(ctx context.Context, msg TableRows) (fixturesqlite.RowSet, error) {
	inspector, err := fixturesqlite.Open(msg.Path)
	if err != nil {
		return fixturesqlite.RowSet{}, fixture.AsGoError(err)
	}
	defer func() {
		_ = inspector.Close()
	}()

	set, err := inspector.Table(ctx, msg.Table)
	if err != nil {
		return fixturesqlite.RowSet{}, fixture.AsGoError(err)
	}
	return set, nil
}
