package summarizer

import "time"

// Outcome labels the result of an engine operation for observers.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeInvalidInput     Outcome = "invalid_input"
	OutcomeModelUnavailable Outcome = "model_unavailable"
	OutcomeGenerationFailed Outcome = "generation_failed"
)

// Observer receives diagnostics from an Engine. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveLoad(modelID string, outcome Outcome, elapsed time.Duration)
	ObserveSummarize(modelID string, outcome Outcome, elapsed time.Duration, result *Result)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(string, Outcome, time.Duration) {}

func (nopObserver) ObserveSummarize(string, Outcome, time.Duration, *Result) {}
