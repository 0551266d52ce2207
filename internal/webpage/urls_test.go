package webpage_test

import (
	"testing"

	"textsummarizer/internal/webpage"
)

func TestFindURLs(t *testing.T) {
	urls, err := webpage.FindURLs("read https://example.com/a and http://example.org/b, then https://example.com/a again")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://example.com/a", "http://example.org/b"}
	if len(urls) != len(want) {
		t.Fatalf("unexpected URLs: %v", urls)
	}

	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("URL %d mismatch: got %q want %q", i, urls[i], want[i])
		}
	}
}

func TestSingleURL(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"  https://example.com/article  ", "https://example.com/article", true},
		{"see https://example.com/article", "", false},
		{"https://a.example https://b.example", "", false},
		{"no links here", "", false},
	}

	for _, test := range tests {
		got, ok := webpage.SingleURL(test.text)
		if ok != test.wantOK || got != test.want {
			t.Fatalf("SingleURL(%q) = %q, %v; want %q, %v", test.text, got, ok, test.want, test.wantOK)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	got, err := webpage.CanonicalURL(" https://example.com/post?id=1#comments ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "https://example.com/post?id=1" {
		t.Fatalf("unexpected canonical URL: %q", got)
	}
}
