package command

import (
	"context"
	"encoding/json"
	"os"

	gcmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-fixtures/fixture"
)

// ConvertFixtureHandler handles fixture conversion requests.
type ConvertFixtureHandler struct {
	Converter *fixture.Converter
}

func NewConvertFixtureHandler(conv *fixture.Converter) *ConvertFixtureHandler {
	return &ConvertFixtureHandler{Converter: conv}
}

func (h *ConvertFixtureHandler) Execute(ctx context.Context, msg ConvertFixture) error {
	if h == nil || h.Converter == nil {
		return errors.New("fixture converter is required", errors.CategoryInternal).
			WithTextCode("CONVERTER_REQUIRED")
	}
	result, err := h.Converter.Convert(ctx, msg.Request)
	if err != nil {
		return fixture.AsGoError(err)
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	if res := gcmd.ResultFromContext[fixture.ConvertResult](ctx); res != nil {
		res.Store(result)
	}
	return nil
}

// ConvertBatchHandler runs batch conversions.
type ConvertBatchHandler struct {
	Converter *fixture.Converter
}

func NewConvertBatchHandler(conv *fixture.Converter) *ConvertBatchHandler {
	return &ConvertBatchHandler{Converter: conv}
}

func (h *ConvertBatchHandler) Execute(ctx context.Context, msg ConvertBatch) error {
	if h == nil || h.Converter == nil {
		return errors.New("fixture converter is required", errors.CategoryInternal).
			WithTextCode("CONVERTER_REQUIRED")
	}

	requests := msg.Requests
	if msg.Manifest != "" {
		loaded, err := loadManifest(msg.Manifest)
		if err != nil {
			return err
		}
		requests = append(requests, loaded...)
	}

	results := make([]fixture.ConvertResult, 0, len(requests))
	for _, req := range requests {
		result, err := h.Converter.Convert(ctx, req)
		if err != nil {
			return fixture.AsGoError(err)
		}
		results = append(results, result)
	}

	if msg.Result != nil {
		*msg.Result = results
	}
	if res := gcmd.ResultFromContext[[]fixture.ConvertResult](ctx); res != nil {
		res.Store(results)
	}
	return nil
}

func loadManifest(path string) ([]fixture.ConvertRequest, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "manifest read failed").
			WithTextCode("MANIFEST_READ_FAILED")
	}
	var requests []fixture.ConvertRequest
	if err := json.Unmarshal(payload, &requests); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "manifest parse failed").
			WithTextCode("MANIFEST_PARSE_FAILED")
	}
	return requests, nil
}
