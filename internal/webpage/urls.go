package webpage

import (
	"fmt"
	"strings"

	"mvdan.cc/xurls/v2"
)

// FindURLs returns the distinct http(s) URLs mentioned in text, in order of appearance.
func FindURLs(text string) ([]string, error) {
	re, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	var urls []string
	seen := make(map[string]struct{})

	for _, u := range re.FindAllString(text, -1) {
		u = strings.TrimSpace(u)
		if _, ok := seen[u]; ok {
			continue
		}

		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return urls, nil
}

// SingleURL reports whether text consists of exactly one URL and nothing else.
func SingleURL(text string) (string, bool) {
	text = strings.TrimSpace(text)

	urls, err := FindURLs(text)
	if err != nil || len(urls) != 1 || urls[0] != text {
		return "", false
	}

	return urls[0], true
}
