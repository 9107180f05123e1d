package query

import (
	"github.com/goliatone/go-errors"
)

// DatabaseSchema requests the schema of a generated fixture database.
type DatabaseSchema struct {
	Path string
}

func (DatabaseSchema) Type() string { return "fixture:schema" }

func (msg DatabaseSchema) Validate() error {
	if msg.Path == "" {
		return errors.New("database path is required", errors.CategoryValidation).
			WithTextCode("PATH_REQUIRED")
	}
	return nil
}

// TableRows requests the contents of one generated table.
type TableRows struct {
	Path  string
	Table string
}

func (TableRows) Type() string { return "fixture:rows" }

func (msg TableRows) Validate() error {
	if msg.Path == "" {
		return errors.New("database path is required", errors.CategoryValidation).
			WithTextCode("PATH_REQUIRED")
	}
	if msg.Table == "" {
		return errors.New("table name is required", errors.CategoryValidation).
			WithTextCode("TABLE_REQUIRED")
	}
	return nil
}
