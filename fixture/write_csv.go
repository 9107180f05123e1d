package fixture

import (
	"bufio"
	"context"
	"io"
	"strings"
)

const (
	defaultDelimiter = ','
	defaultQuote     = '|'
)

// CSVWriter renders the dataset as CSV. Tables are concatenated into the
// same stream with no separator between blocks: each non-empty table emits
// one header line derived from its first row, then one line per row with
// values taken positionally from that row's own fields.
type CSVWriter struct{}

// Write streams the dataset as CSV.
func (cw CSVWriter) Write(ctx context.Context, ds *Dataset, w io.Writer, opts WriteOptions) (WriteStats, error) {
	if ds == nil {
		return WriteStats{}, NewError(KindValidation, "dataset is required", nil)
	}

	delimiter := opts.CSV.Delimiter
	if delimiter == 0 {
		delimiter = defaultDelimiter
	}
	quote := opts.CSV.Quote
	if quote == 0 {
		quote = defaultQuote
	}

	counter := &countingWriter{w: w}
	buf := bufio.NewWriter(counter)
	stats := WriteStats{}

	for _, table := range ds.Tables {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if table.Empty() {
			continue
		}

		if err := writeRecord(buf, table.Columns(), delimiter, quote); err != nil {
			return stats, NewError(KindIO, "csv header write failed", err)
		}
		for _, row := range table.Rows {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			record := make([]string, len(row))
			for i, field := range row {
				record[i] = textValue(field.Value)
			}
			if err := writeRecord(buf, record, delimiter, quote); err != nil {
				return stats, NewError(KindIO, "csv row write failed", err)
			}
			stats.Rows++
		}
		stats.Tables++
	}

	if err := buf.Flush(); err != nil {
		return stats, NewError(KindIO, "csv flush failed", err)
	}
	stats.Bytes = counter.count
	return stats, nil
}

// writeRecord emits one minimally quoted record terminated by \n. A field is
// quoted only when it contains the delimiter, the quote rune, or a line
// break; embedded quote runes are doubled.
func writeRecord(w io.Writer, record []string, delimiter, quote rune) error {
	var b strings.Builder
	for i, field := range record {
		if i > 0 {
			b.WriteRune(delimiter)
		}
		if needsQuoting(field, delimiter, quote) {
			b.WriteRune(quote)
			for _, r := range field {
				if r == quote {
					b.WriteRune(quote)
				}
				b.WriteRune(r)
			}
			b.WriteRune(quote)
		} else {
			b.WriteString(field)
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func needsQuoting(field string, delimiter, quote rune) bool {
	return strings.ContainsRune(field, delimiter) ||
		strings.ContainsRune(field, quote) ||
		strings.ContainsAny(field, "\n\r")
}
