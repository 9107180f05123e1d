package fixture

import (
	"context"
	"io"
)

// Format is the fixture output format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
	FormatXLSX   Format = "xlsx"
)

// Field is one named value inside a row.
type Field struct {
	Name  string
	Value any
}

// Row is an ordered sequence of fields. Order is the key order of the
// source JSON object, not a canonical column order.
type Row []Field

// Values returns the row's values positionally.
func (r Row) Values() []any {
	out := make([]any, len(r))
	for i, f := range r {
		out[i] = f.Value
	}
	return out
}

// Names returns the row's field names positionally.
func (r Row) Names() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Name
	}
	return out
}

// Table is a named row-set.
type Table struct {
	Name string
	Rows []Row
}

// Columns returns the schema derived from the first row. Later rows with
// divergent keys are the caller's responsibility; writers emit positionally.
func (t Table) Columns() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0].Names()
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Dataset is an ordered collection of tables, in source-document order.
type Dataset struct {
	Tables []Table
}

// Table finds a table by name.
func (d *Dataset) Table(name string) (Table, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// WriteStats capture writer output.
type WriteStats struct {
	Tables int64
	Rows   int64
	Bytes  int64
}

// CSVOptions configures CSV output.
type CSVOptions struct {
	Delimiter rune
	Quote     rune
}

// XLSXOptions configures XLSX output.
type XLSXOptions struct{}

// SQLiteOptions configures SQLite output.
type SQLiteOptions struct {
	Hardened bool
}

// WriteOptions configures writer behavior.
type WriteOptions struct {
	CSV    CSVOptions
	XLSX   XLSXOptions
	SQLite SQLiteOptions
}

// Writer serializes a dataset to the destination.
type Writer interface {
	Write(ctx context.Context, ds *Dataset, w io.Writer, opts WriteOptions) (WriteStats, error)
}

// ConvertRequest captures one conversion.
type ConvertRequest struct {
	Source  string
	Format  Format
	Output  string
	Options WriteOptions
}

// ConvertResult captures a completed conversion.
type ConvertResult struct {
	Format Format
	Output string
	Tables int64
	Rows   int64
	Bytes  int64
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
