package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"textsummarizer/internal/summarizer"
	"textsummarizer/internal/webpage"

	"github.com/spf13/cobra"
)

type summarizeOptions struct {
	file      string
	url       string
	maxLength int
	minLength int
	sample    bool
	json      bool
}

func newSummarizeCmd(a *app) *cobra.Command {
	opts := &summarizeOptions{}

	cmd := &cobra.Command{
		Use:   "summarize [text]",
		Short: "Summarize text, a file, a web page or stdin",
		Long: `Summarize text passed as an argument, read from a file, fetched from a web page
or piped through stdin.

Examples:
  # Summarize an argument
  textsummarizer summarize "Photosynthesis is the process by which plants..."

  # Summarize a file with a tighter limit
  textsummarizer summarize --file article.txt --max-length 60

  # Summarize a web page and print JSON
  textsummarizer summarize --url https://example.com/post --json

  # Summarize stdin with the local extractive model
  cat notes.txt | MODEL_ID=extractive textsummarizer summarize`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSummarize(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read text from file (- for stdin)")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "fetch text from web page or feed")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", 0, "maximum summary length in words (default MAX_LENGTH)")
	cmd.Flags().IntVar(&opts.minLength, "min-length", 0, "minimum summary length in words (default MIN_LENGTH)")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "use random sampling")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print result as JSON")
	cmd.MarkFlagsMutuallyExclusive("file", "url")

	return cmd
}

func (a *app) runSummarize(cmd *cobra.Command, args []string, opts *summarizeOptions) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
	defer cancel()

	text, err := a.readInput(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	maxLength := opts.maxLength
	if maxLength == 0 {
		maxLength = a.cfg.MaxLength
	}
	minLength := opts.minLength
	if minLength == 0 {
		minLength = a.cfg.MinLength
	}

	result, err := a.newEngine().Summarize(ctx, summarizer.Request{
		Text:      text,
		MaxLength: maxLength,
		MinLength: minLength,
		Sampling:  opts.sample,
	})
	if err != nil {
		return err
	}

	if result.SummaryLength < minLength {
		a.log.WarnContext(ctx, "Summary is shorter than min length",
			"summaryLength", result.SummaryLength,
			"minLength", minLength)
	}

	out := cmd.OutOrStdout()

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(out, result)
	return nil
}

func (a *app) readInput(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	opts *summarizeOptions,
) (string, error) {
	if len(args) > 0 && (opts.file != "" || opts.url != "") {
		return "", errors.New("pass text as an argument or with --file/--url, not both")
	}

	switch {
	case len(args) == 1:
		return args[0], nil

	case opts.url != "":
		doc, err := webpage.NewFetcher(&http.Client{Timeout: a.cfg.RequestTimeout}, a.log).Fetch(ctx, opts.url)
		if err != nil {
			return "", fmt.Errorf("fetch page: %w", err)
		}

		text, truncated := doc.TruncatedText(a.cfg.MaxInputWords)
		if truncated {
			a.log.InfoContext(ctx, "Page text is truncated",
				"url", doc.URL,
				"maxInputWords", a.cfg.MaxInputWords)
		}
		return text, nil

	case opts.file != "" && opts.file != "-":
		b, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(b), nil

	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}

func printResult(w io.Writer, result *summarizer.Result) {
	_, _ = fmt.Fprintf(w, "Original length: %d words\n", result.OriginalLength)
	_, _ = fmt.Fprintf(w, "Summary length: %d words\n", result.SummaryLength)
	_, _ = fmt.Fprintf(w, "Compression ratio: %.2f%%\n", result.CompressionRatio*100)
	_, _ = fmt.Fprintf(w, "\nSummary:\n%s\n", strings.TrimSpace(result.Summary))
}
