package fixture

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads and parses the fixture source document at path.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewError(KindNotFound, fmt.Sprintf("fixture source %q not found", path), err)
		}
		return nil, NewError(KindIO, "fixture source open failed", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Parse(file)
}

// Parse decodes a fixture document from r. The document is an object mapping
// table names to arrays of flat row objects. Decoding is token-level so both
// the table order and each row's key order survive; numbers are kept as
// json.Number so writers emit their literal form.
func Parse(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, NewError(KindParse, "fixture document must be a JSON object", err)
	}

	ds := &Dataset{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, NewError(KindParse, "fixture document parse failed", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, NewError(KindParse, "table name must be a string", nil)
		}

		rows, err := parseRows(dec)
		if err != nil {
			return nil, NewError(KindParse, fmt.Sprintf("table %q parse failed", name), err)
		}
		ds.Tables = append(ds.Tables, Table{Name: name, Rows: rows})
	}

	if _, err := dec.Token(); err != nil {
		return nil, NewError(KindParse, "fixture document parse failed", err)
	}
	return ds, nil
}

func parseRows(dec *json.Decoder) ([]Row, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("rows must be a JSON array: %w", err)
	}

	var rows []Row
	for dec.More() {
		row, err := parseRow(dec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseRow(dec *json.Decoder) (Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("row must be a JSON object: %w", err)
	}

	var row Row
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("row key must be a string, got %T", tok)
		}

		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		row = append(row, Field{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return row, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := make(map[string]any)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be a string, got %T", keyTok)
			}
			value, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj[key] = value
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		var arr []any
		for dec.More() {
			value, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
