package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultHuggingFaceInferenceURL = "https://router.huggingface.co/hf-inference"
	DefaultHuggingFaceHubURL       = "https://huggingface.co"

	huggingFaceClientTimeout = 2 * time.Minute
	summarizationPipelineTag = "summarization"
	maxErrorBodyBytes        = 4096
)

// HuggingFaceLoader acquires summarization models hosted on the Hugging Face Inference API.
type HuggingFaceLoader struct {
	token        string
	inferenceURL string
	hubURL       string
	client       *http.Client
}

type HuggingFaceOption func(*HuggingFaceLoader)

func WithHuggingFaceURLs(inferenceURL string, hubURL string) HuggingFaceOption {
	return func(l *HuggingFaceLoader) {
		if inferenceURL = strings.TrimSpace(inferenceURL); inferenceURL != "" {
			l.inferenceURL = strings.TrimRight(inferenceURL, "/")
		}
		if hubURL = strings.TrimSpace(hubURL); hubURL != "" {
			l.hubURL = strings.TrimRight(hubURL, "/")
		}
	}
}

func WithHuggingFaceHTTPClient(client *http.Client) HuggingFaceOption {
	return func(l *HuggingFaceLoader) {
		if client != nil {
			l.client = client
		}
	}
}

func NewHuggingFaceLoader(token string, opts ...HuggingFaceOption) *HuggingFaceLoader {
	l := &HuggingFaceLoader{
		token:        strings.TrimSpace(token),
		inferenceURL: DefaultHuggingFaceInferenceURL,
		hubURL:       DefaultHuggingFaceHubURL,
		client:       &http.Client{Timeout: huggingFaceClientTimeout},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type hubModelInfo struct {
	ID          string `json:"id"`
	PipelineTag string `json:"pipeline_tag"`
}

// Load fetches the model card and refuses models that are not summarizers.
func (l *HuggingFaceLoader) Load(ctx context.Context, modelID string, _ Device) (Model, error) {
	modelID = strings.Trim(strings.TrimSpace(modelID), "/")
	if modelID == "" {
		return nil, errors.New("model ID is empty")
	}

	var info hubModelInfo
	if err := l.do(ctx, http.MethodGet, l.hubURL+"/api/models/"+escapeModelID(modelID), nil, &info); err != nil {
		return nil, fmt.Errorf("fetch model card: %w", err)
	}

	if info.PipelineTag != "" && info.PipelineTag != summarizationPipelineTag {
		return nil, fmt.Errorf("model pipeline is %q, not %q", info.PipelineTag, summarizationPipelineTag)
	}

	return &HuggingFaceModel{loader: l, modelID: modelID}, nil
}

// HuggingFaceModel invokes one hosted summarization model.
type HuggingFaceModel struct {
	loader  *HuggingFaceLoader
	modelID string
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
	Options    huggingFaceOptions    `json:"options"`
}

type huggingFaceParameters struct {
	MaxLength     int  `json:"max_length"`
	MinLength     int  `json:"min_length"`
	DoSample      bool `json:"do_sample"`
	EarlyStopping bool `json:"early_stopping"`
}

type huggingFaceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type huggingFaceCandidate struct {
	SummaryText string `json:"summary_text"`
}

func (m *HuggingFaceModel) Generate(
	ctx context.Context,
	text string,
	params GenerateParams,
) ([]Candidate, error) {
	body := huggingFaceRequest{
		Inputs: text,
		Parameters: huggingFaceParameters{
			MaxLength:     params.MaxLength,
			MinLength:     params.MinLength,
			DoSample:      params.DoSample,
			EarlyStopping: params.EarlyStopping,
		},
		Options: huggingFaceOptions{WaitForModel: true},
	}

	var out []huggingFaceCandidate
	endpoint := m.loader.inferenceURL + "/models/" + escapeModelID(m.modelID)
	if err := m.loader.do(ctx, http.MethodPost, endpoint, body, &out); err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}

	candidates := make([]Candidate, 0, len(out))
	for _, c := range out {
		candidates = append(candidates, Candidate{SummaryText: c.SummaryText})
	}

	return candidates, nil
}

func (l *HuggingFaceLoader) do(ctx context.Context, method string, endpoint string, in any, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("do request: unexpected status: %d: %s", resp.StatusCode, errorMessage(resp.Body))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}

	return strings.TrimSpace(string(raw))
}

func escapeModelID(modelID string) string {
	parts := strings.Split(modelID, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
