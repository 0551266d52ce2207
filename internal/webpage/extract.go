package webpage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const boilerplateSelector = "script, style, noscript, template, nav, header, footer, aside, form, iframe, svg"

func parseHTML(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find(boilerplateSelector).Remove()

	title := normalizeSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if title == "" {
		title = normalizeSpace(doc.Find("title").First().Text())
	}

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	return &Document{
		Title: title,
		Text:  paragraphsText(root),
	}, nil
}

func paragraphsText(root *goquery.Selection) string {
	var paragraphs []string

	root.Find("p, li, blockquote, h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("p, li, blockquote").Length() > 0 {
			return
		}

		if text := normalizeSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		return normalizeSpace(root.Text())
	}

	return strings.Join(paragraphs, "\n\n")
}

func htmlFragmentText(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse HTML fragment: %w", err)
	}

	doc.Find(boilerplateSelector).Remove()

	return paragraphsText(doc.Selection), nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
