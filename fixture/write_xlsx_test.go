package fixture

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter_SheetPerTable(t *testing.T) {
	ds := parseDoc(t, `{
		"People": [{"name": "Ann", "age": 30}, {"name": "Bo", "age": 25}],
		"Pets": [{"species": "cat"}],
		"Empty": []
	}`)

	buf := &bytes.Buffer{}
	stats, err := XLSXWriter{}.Write(context.Background(), ds, buf, WriteOptions{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if stats.Tables != 2 || stats.Rows != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Bytes == 0 {
		t.Fatalf("expected non-zero bytes")
	}

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}

	sheets := file.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "People" || sheets[1] != "Pets" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := file.GetRows("People")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 data rows, got %d", len(rows))
	}
	if rows[0][0] != "name" || rows[0][1] != "age" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Ann" || rows[1][1] != "30" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "Bo" || rows[2][1] != "25" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestXLSXWriter_AllValuesAreText(t *testing.T) {
	ds := parseDoc(t, `{"T": [{"b": true, "z": null, "n": 1.5}]}`)

	buf := &bytes.Buffer{}
	if _, err := (XLSXWriter{}).Write(context.Background(), ds, buf, WriteOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}

	rows, err := file.GetRows("T")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if rows[1][0] != "true" {
		t.Fatalf("expected bool as text, got %v", rows[1])
	}
	if rows[1][2] != "1.5" {
		t.Fatalf("expected number literal, got %v", rows[1])
	}
}
