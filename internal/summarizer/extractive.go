package summarizer

import (
	"context"
	"math"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"
)

const samplingJitter = 0.25

var (
	extractiveTokenRe    = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	extractiveSentenceRe = regexp.MustCompile(`[^.!?]+(?:[.!?]+["'”’)]*|$)`)
)

// ExtractiveModel ranks sentences by normalized word frequency and keeps the
// best ones in their original order. It runs locally and needs no network.
type ExtractiveModel struct {
	stopwords map[string]struct{}
	jitter    func() float64
}

func NewExtractiveModel() *ExtractiveModel {
	return &ExtractiveModel{
		stopwords: defaultStopwords(),
		jitter:    rand.Float64,
	}
}

type rankedSentence struct {
	idx   int
	words []string
	score float64
}

// Generate never exceeds params.MaxLength words. It adds sentences until
// params.MinLength is reached when early stopping is on, otherwise until no
// more sentences fit.
func (m *ExtractiveModel) Generate(
	ctx context.Context,
	text string,
	params GenerateParams,
) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxLength := params.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	split := splitSentences(text)
	if len(split) == 0 {
		split = []string{strings.TrimSpace(text)}
	}

	sentences := m.rank(split, params.DoSample)
	if len(sentences) == 0 {
		return nil, nil
	}

	var selected []rankedSentence
	total := 0

	for _, s := range sentences {
		if total+len(s.words) > maxLength {
			continue
		}

		selected = append(selected, s)
		total += len(s.words)

		if params.EarlyStopping && total >= params.MinLength {
			break
		}
	}

	if len(selected) == 0 {
		best := sentences[0]
		best.words = best.words[:maxLength]
		selected = append(selected, best)
	}

	slices.SortFunc(selected, func(a, b rankedSentence) int {
		return a.idx - b.idx
	})

	parts := make([]string, 0, len(selected))
	for _, s := range selected {
		parts = append(parts, strings.Join(s.words, " "))
	}

	return []Candidate{{SummaryText: strings.Join(parts, " ")}}, nil
}

func (m *ExtractiveModel) rank(sentences []string, sample bool) []rankedSentence {
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range tokens(sent) {
			if _, ok := m.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}

	maxF := 0.0
	for _, v := range freq {
		maxF = max(maxF, v)
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	ranked := make([]rankedSentence, 0, len(sentences))
	for i, sent := range sentences {
		words := strings.Fields(sent)
		if len(words) == 0 {
			continue
		}

		toks := tokens(sent)
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
		}
		if len(toks) > 0 {
			score /= math.Sqrt(float64(len(toks)))
		}

		if sample {
			score *= 1 + samplingJitter*m.jitter()
		}

		ranked = append(ranked, rankedSentence{idx: i, words: words, score: score})
	}

	slices.SortStableFunc(ranked, func(a, b rankedSentence) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range extractiveSentenceRe.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func tokens(text string) []string {
	return extractiveTokenRe.FindAllString(strings.ToLower(text), -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at",
		"by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so",
		"such", "into", "about", "between", "through", "during", "before", "after", "above", "below",
		"out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
