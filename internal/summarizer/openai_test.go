package summarizer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"textsummarizer/internal/summarizer"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openAIServer struct {
	mu         sync.Mutex
	outputs    []string
	incomplete int
	requests   []map[string]any
}

func (s *openAIServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/models/gpt-4o-mini":
			_, _ = w.Write([]byte(`{"id":"gpt-4o-mini","object":"model","created":1,"owned_by":"openai"}`))

		case r.Method == http.MethodPost && r.URL.Path == "/responses":
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode responses body: %v", err)
			}

			s.mu.Lock()
			s.requests = append(s.requests, body)
			incomplete := s.incomplete > 0
			if incomplete {
				s.incomplete--
			}
			output := ""
			if len(s.outputs) > 0 {
				output = s.outputs[0]
				s.outputs = s.outputs[1:]
			}
			s.mu.Unlock()

			if incomplete {
				_, _ = w.Write([]byte(`{"id":"resp_1","object":"response","created_at":1,` +
					`"model":"gpt-4o-mini","status":"incomplete",` +
					`"incomplete_details":{"reason":"max_output_tokens"},"output":[]}`))
				return
			}

			text, _ := json.Marshal(output)
			_, _ = fmt.Fprintf(w, `{"id":"resp_2","object":"response","created_at":1,`+
				`"model":"gpt-4o-mini","status":"completed","output":[{"type":"message","id":"msg_1",`+
				`"role":"assistant","status":"completed","content":[{"type":"output_text","text":%s,`+
				`"annotations":[]}]}]}`, text)

		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"The model does not exist","type":"invalid_request_error"}}`))
		}
	})
}

func (s *openAIServer) lastRequests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests
}

func newOpenAILoader(srv *httptest.Server) *summarizer.OpenAILoader {
	return summarizer.NewOpenAILoader("sk-test", srv.URL+"/", option.WithMaxRetries(0))
}

func TestOpenAIGeneratesSummary(t *testing.T) {
	api := &openAIServer{outputs: []string{"Plants turn sunlight into chemical energy."}}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	router := summarizer.NewRouter(nil, newOpenAILoader(srv))
	engine := summarizer.New("openai:gpt-4o-mini", router)

	result, err := engine.Summarize(context.Background(), summarizer.Request{
		Text:      "Photosynthesis is the process by which plants convert sunlight into energy.",
		MaxLength: 50,
		MinLength: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Plants turn sunlight into chemical energy.", result.Summary)
	assert.Equal(t, 6, result.SummaryLength)

	requests := api.lastRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, "gpt-4o-mini", requests[0]["model"])
	assert.InDelta(t, 0.0, requests[0]["temperature"], 1e-9)
	assert.InDelta(t, 512.0, requests[0]["max_output_tokens"], 1e-9)
	assert.Contains(t, requests[0]["instructions"], "Between 5 and 50 words")
}

func TestOpenAIRetriesIncompleteResponseWithMoreTokens(t *testing.T) {
	api := &openAIServer{incomplete: 1, outputs: []string{"Short summary."}}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	engine := summarizer.New("openai:gpt-4o-mini", summarizer.NewRouter(nil, newOpenAILoader(srv)))

	result, err := engine.Summarize(context.Background(), summarizer.Request{Text: "Some text.", Sampling: true})
	require.NoError(t, err)
	assert.Equal(t, "Short summary.", result.Summary)

	requests := api.lastRequests()
	require.Len(t, requests, 2)
	assert.InDelta(t, 512.0, requests[0]["max_output_tokens"], 1e-9)
	assert.InDelta(t, 1024.0, requests[1]["max_output_tokens"], 1e-9)
	assert.InDelta(t, 1.0, requests[1]["temperature"], 1e-9)
}

func TestOpenAIClampsSummaryToMaxLength(t *testing.T) {
	api := &openAIServer{outputs: []string{"one two three four five"}}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	engine := summarizer.New("openai:gpt-4o-mini", summarizer.NewRouter(nil, newOpenAILoader(srv)))

	result, err := engine.Summarize(context.Background(), summarizer.Request{
		Text:      "a b c d e f g h",
		MaxLength: 3,
		MinLength: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "one two three", result.Summary)
	assert.Equal(t, 3, result.SummaryLength)
}

func TestOpenAIUnknownModelIsUnavailable(t *testing.T) {
	api := &openAIServer{}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	engine := summarizer.New("openai:gpt-missing", summarizer.NewRouter(nil, newOpenAILoader(srv)))

	_, err := engine.Summarize(context.Background(), summarizer.Request{Text: "Some text."})
	require.Error(t, err)
	assert.True(t, summarizer.IsModelUnavailable(err))
	assert.Empty(t, api.lastRequests())
}
