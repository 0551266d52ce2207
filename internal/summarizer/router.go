package summarizer

import (
	"context"
	"fmt"
	"strings"
)

// Backend names the family of models a model identifier resolves to.
type Backend string

const (
	BackendHuggingFace Backend = "huggingface"
	BackendOpenAI      Backend = "openai"
	BackendExtractive  Backend = "extractive"

	ExtractiveModelID = "extractive"

	openAIPrefix      = "openai:"
	huggingFacePrefix = "hf:"
	localPrefix       = "local:"
)

// ParseModelID splits an identifier such as "openai:gpt-4o-mini" into its
// backend and the backend-specific model name. Unprefixed identifiers are
// Hugging Face model IDs.
func ParseModelID(modelID string) (Backend, string) {
	modelID = strings.TrimSpace(modelID)

	switch {
	case modelID == ExtractiveModelID:
		return BackendExtractive, ExtractiveModelID
	case strings.HasPrefix(modelID, localPrefix):
		return BackendExtractive, strings.TrimPrefix(modelID, localPrefix)
	case strings.HasPrefix(modelID, openAIPrefix):
		return BackendOpenAI, strings.TrimPrefix(modelID, openAIPrefix)
	case strings.HasPrefix(modelID, huggingFacePrefix):
		return BackendHuggingFace, strings.TrimPrefix(modelID, huggingFacePrefix)
	default:
		return BackendHuggingFace, modelID
	}
}

// Router dispatches Load calls to the loader of the backend named by the model identifier.
type Router struct {
	huggingFace Loader
	openAI      Loader
}

// NewRouter builds a Router. A nil loader makes its backend unavailable.
func NewRouter(huggingFace Loader, openAI Loader) *Router {
	return &Router{huggingFace: huggingFace, openAI: openAI}
}

func (r *Router) Load(ctx context.Context, modelID string, device Device) (Model, error) {
	if device != DeviceCPU {
		return nil, fmt.Errorf("unsupported device %q", device)
	}

	backend, name := ParseModelID(modelID)

	var loader Loader
	switch backend {
	case BackendExtractive:
		return NewExtractiveModel(), nil
	case BackendOpenAI:
		loader = r.openAI
	case BackendHuggingFace:
		loader = r.huggingFace
	}

	if loader == nil {
		return nil, fmt.Errorf("%s backend is not configured", backend)
	}

	return loader.Load(ctx, name, device)
}
