package main

import (
	"fmt"
	"strings"

	"textsummarizer/internal/samples"
	"textsummarizer/internal/summarizer"

	"github.com/spf13/cobra"
)

func newSamplesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Summarize the built-in sample texts",
		Long: `Run every built-in sample text through the configured model and report
lengths and compression ratios. A failing sample is reported and the run goes on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine := a.newEngine()
			out := cmd.OutOrStdout()
			failed := 0

			for _, s := range samples.All() {
				_, _ = fmt.Fprintf(out, "\nTesting %s:\n%s\n", s.Name, strings.Repeat("-", 50))

				result, err := engine.Summarize(cmd.Context(), summarizer.Request{
					Text:      s.Text,
					MaxLength: s.MaxLength,
					MinLength: s.MinLength,
				})
				if err != nil {
					failed++
					_, _ = fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}

				printResult(out, result)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d samples failed", failed, len(samples.All()))
			}
			return nil
		},
	}
}
