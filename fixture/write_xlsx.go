package fixture

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter renders the dataset as an XLSX workbook with one worksheet per
// non-empty table, named after the table.
type XLSXWriter struct{}

// Write streams the dataset into an XLSX workbook.
func (xw XLSXWriter) Write(ctx context.Context, ds *Dataset, w io.Writer, opts WriteOptions) (WriteStats, error) {
	_ = opts
	if ds == nil {
		return WriteStats{}, NewError(KindValidation, "dataset is required", nil)
	}

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	stats := WriteStats{}
	defaultSheet := file.GetSheetName(0)
	first := true

	for _, table := range ds.Tables {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if table.Empty() {
			continue
		}

		sheetName := table.Name
		if first {
			if defaultSheet != sheetName {
				if err := file.SetSheetName(defaultSheet, sheetName); err != nil {
					return stats, NewError(KindInternal, "xlsx sheet rename failed", err)
				}
			}
			first = false
		} else {
			if _, err := file.NewSheet(sheetName); err != nil {
				return stats, NewError(KindInternal, "xlsx sheet create failed", err)
			}
		}

		stream, err := file.NewStreamWriter(sheetName)
		if err != nil {
			return stats, NewError(KindInternal, "xlsx stream writer failed", err)
		}

		header := make([]any, 0, len(table.Columns()))
		for _, col := range table.Columns() {
			header = append(header, col)
		}
		cell, err := excelize.CoordinatesToCellName(1, 1)
		if err != nil {
			return stats, NewError(KindInternal, "xlsx cell name failed", err)
		}
		if err := stream.SetRow(cell, header); err != nil {
			return stats, NewError(KindInternal, "xlsx header write failed", err)
		}

		for i, row := range table.Rows {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			cells := make([]any, len(row))
			for j, field := range row {
				cells[j] = textValue(field.Value)
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return stats, NewError(KindInternal, "xlsx cell name failed", err)
			}
			if err := stream.SetRow(cell, cells); err != nil {
				return stats, NewError(KindInternal, "xlsx row write failed", err)
			}
			stats.Rows++
		}

		if err := stream.Flush(); err != nil {
			return stats, NewError(KindInternal, "xlsx stream flush failed", err)
		}
		stats.Tables++
	}

	counter := &countingWriter{w: w}
	if _, err := file.WriteTo(counter); err != nil {
		return stats, NewError(KindIO, "xlsx write failed", err)
	}
	stats.Bytes = counter.count
	return stats, nil
}
