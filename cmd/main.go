package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"textsummarizer/internal/config"
	"textsummarizer/internal/metrics"
	"textsummarizer/internal/summarizer"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3/option"
	"github.com/spf13/cobra"
)

const metricsShutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "textsummarizer",
		Short: "Abstractive text summarization from the command line or Telegram",
		Long: `textsummarizer condenses long passages into short summaries and reports
how much shorter they got.

The model is chosen with MODEL_ID:
  facebook/bart-large-cnn   Hugging Face Inference API (default, hf: prefix optional)
  openai:gpt-4o-mini        OpenAI Responses API
  extractive                local frequency-based sentence extraction

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.AddCommand(newSummarizeCmd(a), newSamplesCmd(a), newBotCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(a.log)
	a.metrics = metrics.New()

	return nil
}

func (a *app) newEngine() *summarizer.Engine {
	hf := summarizer.NewHuggingFaceLoader(
		a.cfg.HFToken,
		summarizer.WithHuggingFaceURLs(a.cfg.HFInferenceURL, a.cfg.HFHubURL),
		summarizer.WithHuggingFaceHTTPClient(&http.Client{Timeout: a.cfg.RequestTimeout}),
	)

	var openAI summarizer.Loader
	if a.cfg.OpenAIAPIKey != "" {
		openAI = summarizer.NewOpenAILoader(
			a.cfg.OpenAIAPIKey,
			a.cfg.OpenAIBaseURL,
			option.WithRequestTimeout(a.cfg.RequestTimeout),
		)
	}

	return summarizer.New(
		a.cfg.ModelID,
		summarizer.NewRouter(hf, openAI),
		summarizer.WithLogger(a.log),
		summarizer.WithObserver(a.metrics),
		summarizer.WithMaxInputWords(a.cfg.MaxInputWords),
	)
}

// serveMetrics exposes the registry on METRICS_ADDR until ctx is done.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.ErrorContext(ctx, "Failed to shutdown metrics server",
				"error", err,
				"addr", a.cfg.MetricsAddr)
		}
	}()

	go func() {
		a.log.InfoContext(ctx, "Metrics server is started",
			"addr", a.cfg.MetricsAddr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.ErrorContext(ctx, "Metrics server failed",
				"error", err,
				"addr", a.cfg.MetricsAddr)
		}
	}()
}
