package bot

import (
	"fmt"
	"math"
	"strings"

	"textsummarizer/internal/markdown"
	"textsummarizer/internal/summarizer"
)

const summaryText = `%s

📏 %d → %d words \(%s of original\)`

func formatSummary(result *summarizer.Result, title string) string {
	var message strings.Builder

	if title = strings.TrimSpace(title); title != "" {
		message.WriteString("📰 *")
		message.WriteString(markdown.EscapeV2(title))
		message.WriteString("*\n\n")
	}

	message.WriteString(fmt.Sprintf(summaryText,
		markdown.EscapeV2(result.Summary),
		result.OriginalLength,
		result.SummaryLength,
		markdown.EscapeV2(formatRatio(result.CompressionRatio)),
	))

	return message.String()
}

func formatRatio(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}

func escapeSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return markdown.EscapeV2(strings.ToUpper(s[:1]) + s[1:])
}
