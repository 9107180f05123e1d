package command

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-fixtures/fixture"
)

// ConvertFixture requests one fixture conversion.
type ConvertFixture struct {
	Request fixture.ConvertRequest
	Result  *fixture.ConvertResult
}

func (ConvertFixture) Type() string { return "fixture:convert" }

func (msg ConvertFixture) Validate() error {
	if msg.Request.Source == "" {
		return errors.New("source path is required", errors.CategoryValidation).
			WithTextCode("SOURCE_REQUIRED")
	}
	if msg.Request.Output == "" {
		return errors.New("output path is required", errors.CategoryValidation).
			WithTextCode("OUTPUT_REQUIRED")
	}
	return nil
}

// ConvertBatch runs several conversions, either inline or loaded from a
// JSON manifest of convert requests.
type ConvertBatch struct {
	Manifest string
	Requests []fixture.ConvertRequest
	Result   *[]fixture.ConvertResult
}

func (ConvertBatch) Type() string { return "fixture:convert-batch" }

func (msg ConvertBatch) Validate() error {
	if msg.Manifest == "" && len(msg.Requests) == 0 {
		return errors.New("manifest path or inline requests are required", errors.CategoryValidation).
			WithTextCode("REQUESTS_REQUIRED")
	}
	return nil
}
