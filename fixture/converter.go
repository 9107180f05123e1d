package fixture

import (
	"context"
	"os"
)

// Converter loads a fixture source document and writes it out in a
// registered format, overwriting any pre-existing file at the output path.
type Converter struct {
	Writers *WriterRegistry
	Logger  Logger
}

// NewConverter creates a converter with the built-in writers registered.
// The SQLite writer lives in adapters/sqlite and is registered by the caller.
func NewConverter() *Converter {
	writers := NewWriterRegistry()
	_ = writers.Register(FormatCSV, CSVWriter{})
	_ = writers.Register(FormatXLSX, XLSXWriter{})

	return &Converter{
		Writers: writers,
		Logger:  NopLogger{},
	}
}

// Convert executes one conversion. A stale file at the output path is
// removed before the format is dispatched, so an unknown format still
// clears the previous artifact and returns without error.
func (c *Converter) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	if c == nil {
		return ConvertResult{}, NewError(KindInternal, "converter is nil", nil)
	}
	if c.Writers == nil {
		return ConvertResult{}, NewError(KindInternal, "converter writers are not configured", nil)
	}
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if req.Source == "" {
		return ConvertResult{}, NewError(KindValidation, "source path is required", nil)
	}
	if req.Output == "" {
		return ConvertResult{}, NewError(KindValidation, "output path is required", nil)
	}

	ds, err := Load(req.Source)
	if err != nil {
		return ConvertResult{}, err
	}

	if err := removeIfExists(req.Output); err != nil {
		return ConvertResult{}, err
	}

	format := NormalizeFormat(req.Format)
	writer, ok := c.Writers.Resolve(format)
	if !ok {
		c.Logger.Errorf("unknown file type %q", req.Format)
		return ConvertResult{}, nil
	}

	c.Logger.Debugf("converting %s to %s (%s)", req.Source, req.Output, format)

	file, err := os.Create(req.Output)
	if err != nil {
		return ConvertResult{}, NewError(KindIO, "output create failed", err)
	}

	stats, err := writer.Write(ctx, ds, file, req.Options)
	if err != nil {
		_ = file.Close()
		return ConvertResult{}, err
	}
	if err := file.Close(); err != nil {
		return ConvertResult{}, NewError(KindIO, "output close failed", err)
	}

	c.Logger.Infof("wrote %s: %d tables, %d rows, %d bytes", req.Output, stats.Tables, stats.Rows, stats.Bytes)

	return ConvertResult{
		Format: format,
		Output: req.Output,
		Tables: stats.Tables,
		Rows:   stats.Rows,
		Bytes:  stats.Bytes,
	}, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return NewError(KindIO, "output remove failed", err)
	}
	return nil
}
