package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of an Engine.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Engine turns text into a summary with metrics. The model is acquired on the
// first Summarize call and kept for the lifetime of the Engine.
type Engine struct {
	modelID       string
	loader        Loader
	maxInputWords int
	observer      Observer
	log           *slog.Logger

	mu    sync.Mutex
	model Model
}

type Option func(*Engine)

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithMaxInputWords rejects input longer than n words. Zero disables the check.
func WithMaxInputWords(n int) Option {
	return func(e *Engine) {
		e.maxInputWords = max(n, 0)
	}
}

// New stores the model identifier and loader. The model is not acquired here.
func New(modelID string, loader Loader, opts ...Option) *Engine {
	e := &Engine{
		modelID:  strings.TrimSpace(modelID),
		loader:   loader,
		observer: nopObserver{},
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) ModelID() string {
	return e.modelID
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model == nil {
		return StateUninitialized
	}
	return StateReady
}

// Summarize generates a summary of req.Text and derives its metrics.
func (e *Engine) Summarize(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	requestID := uuid.NewString()

	result, err := e.summarize(ctx, requestID, req)

	outcome := outcomeOf(err)
	e.observer.ObserveSummarize(e.modelID, outcome, time.Since(start), result)

	if err != nil {
		e.log.ErrorContext(ctx, "Summarization failed",
			"error", err,
			"requestID", requestID,
			"modelID", e.modelID,
			"outcome", string(outcome))

		return nil, err
	}

	e.log.InfoContext(ctx, "Summary is generated",
		"requestID", requestID,
		"modelID", e.modelID,
		"originalLength", result.OriginalLength,
		"summaryLength", result.SummaryLength,
		"compressionRatio", result.CompressionRatio,
		"elapsedSeconds", time.Since(start).Seconds())

	return result, nil
}

func (e *Engine) summarize(ctx context.Context, requestID string, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &InvalidInputError{Reason: "input text cannot be empty"}
	}

	maxLength, minLength, err := lengthBounds(req)
	if err != nil {
		return nil, err
	}

	originalLength := countWords(text)
	if e.maxInputWords > 0 && originalLength > e.maxInputWords {
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("input text is too long (%d words, limit is %d)", originalLength, e.maxInputWords),
		}
	}

	model, err := e.acquire(ctx, requestID)
	if err != nil {
		return nil, err
	}

	candidates, err := model.Generate(ctx, text, GenerateParams{
		MaxLength:     maxLength,
		MinLength:     minLength,
		DoSample:      req.Sampling,
		EarlyStopping: true,
	})
	if err != nil {
		return nil, &GenerationError{ModelID: e.modelID, Err: err}
	}

	if len(candidates) == 0 {
		return nil, &GenerationError{ModelID: e.modelID, Err: errors.New("model returned no candidates")}
	}

	summary := strings.TrimSpace(candidates[0].SummaryText)
	if summary == "" {
		return nil, &GenerationError{ModelID: e.modelID, Err: errors.New("summary text is missing")}
	}

	summaryLength := countWords(summary)

	return &Result{
		Summary:          summary,
		OriginalLength:   originalLength,
		SummaryLength:    summaryLength,
		CompressionRatio: float64(summaryLength) / float64(originalLength),
	}, nil
}

func (e *Engine) acquire(ctx context.Context, requestID string) (Model, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model != nil {
		return e.model, nil
	}

	if e.loader == nil {
		return nil, &ModelUnavailableError{ModelID: e.modelID, Err: errors.New("loader is not configured")}
	}

	start := time.Now()

	model, err := e.loader.Load(ctx, e.modelID, DeviceCPU)
	if err == nil && model == nil {
		err = errors.New("loader returned no model")
	}
	if err != nil {
		e.observer.ObserveLoad(e.modelID, OutcomeModelUnavailable, time.Since(start))
		e.log.ErrorContext(ctx, "Failed to load model",
			"error", err,
			"requestID", requestID,
			"modelID", e.modelID,
			"device", string(DeviceCPU))

		return nil, &ModelUnavailableError{ModelID: e.modelID, Err: err}
	}

	e.observer.ObserveLoad(e.modelID, OutcomeSuccess, time.Since(start))
	e.log.InfoContext(ctx, "Model is loaded",
		"requestID", requestID,
		"modelID", e.modelID,
		"device", string(DeviceCPU),
		"elapsedSeconds", time.Since(start).Seconds())

	e.model = model

	return model, nil
}

// GenerateSummary summarizes text with a fresh Engine for DefaultModelID and
// returns only the summary. Nothing is reused between calls.
func GenerateSummary(
	ctx context.Context,
	loader Loader,
	text string,
	maxLength int,
	minLength int,
) (string, error) {
	result, err := New(DefaultModelID, loader).Summarize(ctx, Request{
		Text:      text,
		MaxLength: maxLength,
		MinLength: minLength,
	})
	if err != nil {
		return "", err
	}

	return result.Summary, nil
}

func lengthBounds(req Request) (int, int, error) {
	if req.MaxLength < 0 {
		return 0, 0, &InvalidInputError{Reason: fmt.Sprintf("max length must be positive, got %d", req.MaxLength)}
	}
	if req.MinLength < 0 {
		return 0, 0, &InvalidInputError{Reason: fmt.Sprintf("min length must be positive, got %d", req.MinLength)}
	}

	maxLength := req.MaxLength
	if maxLength == 0 {
		maxLength = DefaultMaxLength
	}

	minLength := req.MinLength
	if minLength == 0 {
		minLength = DefaultMinLength
	}

	return maxLength, minLength, nil
}

func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case IsInvalidInput(err):
		return OutcomeInvalidInput
	case IsModelUnavailable(err):
		return OutcomeModelUnavailable
	default:
		return OutcomeGenerationFailed
	}
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
