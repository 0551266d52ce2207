package summarizer

import (
	"context"
)

const (
	// DefaultModelID is the model used when the caller does not name one.
	DefaultModelID = "facebook/bart-large-cnn"

	// DefaultMaxLength is the summary ceiling in words when a request leaves it unset.
	DefaultMaxLength = 130
	// DefaultMinLength is the advisory summary floor in words when a request leaves it unset.
	DefaultMinLength = 30
)

// Device selects where a model executes.
type Device string

// DeviceCPU is the only device models are loaded on.
const DeviceCPU Device = "cpu"

// Request describes a single summarization call.
type Request struct {
	// Text is the original free-form text. Surrounding whitespace is ignored.
	Text string
	// MaxLength is the upper bound on the generated summary length. Zero means DefaultMaxLength.
	MaxLength int
	// MinLength is the requested lower bound. Models treat it as best effort. Zero means DefaultMinLength.
	MinLength int
	// Sampling switches the model from deterministic to stochastic generation.
	Sampling bool
}

// Result is the summary of one request together with its quality metrics.
type Result struct {
	Summary          string  `json:"summary"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// Summarizer produces a summary with metrics for a given request.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (*Result, error)
}

// GenerateParams are the generation constraints forwarded to a Model.
type GenerateParams struct {
	MaxLength     int
	MinLength     int
	DoSample      bool
	EarlyStopping bool
}

// Candidate is one generated output.
type Candidate struct {
	SummaryText string
}

// Model is an acquired text generator.
type Model interface {
	Generate(ctx context.Context, text string, params GenerateParams) ([]Candidate, error)
}

// Loader acquires a Model by its identifier.
type Loader interface {
	Load(ctx context.Context, modelID string, device Device) (Model, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, modelID string, device Device) (Model, error)

func (f LoaderFunc) Load(ctx context.Context, modelID string, device Device) (Model, error) {
	return f(ctx, modelID, device)
}
