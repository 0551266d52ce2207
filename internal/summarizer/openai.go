package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	DefaultOpenAIModel = openai.ChatModelGPT4oMini

	baseMaxOutputTokens  int64 = 512
	limitMaxOutputTokens int64 = 4096
	outputTokensPerWord  int64 = 3

	samplingTemperature      = 1.0
	deterministicTemperature = 0.0
)

// OpenAILoader acquires models served by the OpenAI Responses API.
type OpenAILoader struct {
	opts []option.RequestOption
}

// NewOpenAILoader builds a loader. An empty baseURL keeps the client default.
func NewOpenAILoader(apiKey string, baseURL string, opts ...option.RequestOption) *OpenAILoader {
	all := []option.RequestOption{option.WithAPIKey(strings.TrimSpace(apiKey))}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		all = append(all, option.WithBaseURL(baseURL))
	}

	return &OpenAILoader{opts: append(all, opts...)}
}

// Load checks that the model exists before handing it out.
func (l *OpenAILoader) Load(ctx context.Context, modelID string, _ Device) (Model, error) {
	modelID = strings.TrimSpace(modelID)
	if modelID == "" {
		modelID = DefaultOpenAIModel
	}

	client := openai.NewClient(l.opts...)

	m, err := client.Models.Get(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("get model: %w", err)
	}

	return &OpenAIModel{client: client, model: m.ID}, nil
}

// OpenAIModel generates summaries with one OpenAI model.
type OpenAIModel struct {
	client openai.Client
	model  string
}

func (m *OpenAIModel) Generate(
	ctx context.Context,
	text string,
	params GenerateParams,
) ([]Candidate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("input is empty")
	}

	temperature := deterministicTemperature
	if params.DoSample {
		temperature = samplingTemperature
	}

	maxOutputTokens := min(max(baseMaxOutputTokens, int64(params.MaxLength)*outputTokensPerWord), limitMaxOutputTokens)
	for {
		resp, err := m.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:           m.model,
			MaxOutputTokens: openai.Int(maxOutputTokens),
			Temperature:     openai.Float(temperature),
			Instructions:    openai.String(instructions(params)),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(text),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < limitMaxOutputTokens {
				maxOutputTokens = min(maxOutputTokens*2, limitMaxOutputTokens)
				continue
			}
			return nil, fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)
		}

		summary := strings.TrimSpace(resp.OutputText())
		if summary == "" {
			return nil, fmt.Errorf("output text is missing (status = %s)", resp.Status)
		}

		return []Candidate{{SummaryText: clampWords(summary, params.MaxLength)}}, nil
	}
}

func instructions(params GenerateParams) string {
	var b strings.Builder

	b.WriteString("Summarize the text provided by the user.\n\nRules:\n")
	if params.MinLength > 0 && params.MinLength <= params.MaxLength {
		fmt.Fprintf(&b, "- Between %d and %d words.\n", params.MinLength, params.MaxLength)
	} else {
		fmt.Fprintf(&b, "- At most %d words.\n", params.MaxLength)
	}
	b.WriteString("- Keep the core facts: names, dates, numbers and short quotes.\n")
	b.WriteString("- Neutral tone, same language as the input.\n")
	b.WriteString("- Output only the summary as plain prose.")
	if params.EarlyStopping {
		b.WriteString("\n- Stop as soon as the summary is complete.")
	}

	return b.String()
}

func clampWords(s string, limit int) string {
	if limit <= 0 {
		return s
	}

	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}

	return strings.Join(words[:limit], " ")
}
