package textprep

import (
	"strings"
	"testing"

	"github.com/evelynxu/marksearch/internal/bookmarks"
)

func newTestNormalizer(t *testing.T, maxTokens int) *Normalizer {
	t.Helper()
	norm, err := NewNormalizer("cl100k_base", maxTokens)
	if err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}
	return norm
}

func TestNormalizeFieldOrder(t *testing.T) {
	norm := newTestNormalizer(t, 7500)

	tests := []struct {
		name   string
		record bookmarks.Record
		want   string
	}{
		{
			name: "base fields only",
			record: bookmarks.Record{
				URL:        "https://a.com",
				Name:       "A",
				FolderPath: "bar",
			},
			want: "https://a.com;A;bar",
		},
		{
			name: "title equal to name is not duplicated",
			record: bookmarks.Record{
				URL:        "https://a.com",
				Name:       "A",
				FolderPath: "bar",
				Title:      "A",
				Content:    "hi",
			},
			want: "https://a.com;A;bar;hi",
		},
		{
			name: "user-renamed bookmark keeps page title",
			record: bookmarks.Record{
				URL:        "https://a.com",
				Name:       "My link",
				FolderPath: "bar",
				Title:      "A",
				Content:    "hi",
			},
			want: "https://a.com;My link;bar;A;hi",
		},
		{
			name: "empty title treated as absent",
			record: bookmarks.Record{
				URL:        "https://a.com",
				Name:       "A",
				FolderPath: "bar",
				Title:      "",
				Content:    "hi",
			},
			want: "https://a.com;A;bar;hi",
		},
		{
			name: "content absent",
			record: bookmarks.Record{
				URL:        "https://a.com",
				Name:       "My link",
				FolderPath: "bar/baz",
				Title:      "A",
			},
			want: "https://a.com;My link;bar/baz;A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := norm.Normalize(tt.record); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	norm := newTestNormalizer(t, 7500)
	record := bookmarks.Record{
		URL:        "https://example.com/article",
		Name:       "Article",
		FolderPath: "reading/tech",
		Title:      "An Article",
		Content:    strings.Repeat("word ", 500),
	}

	first := norm.Normalize(record)
	for i := 0; i < 5; i++ {
		if got := norm.Normalize(record); got != first {
			t.Fatal("Normalize should be deterministic for identical input")
		}
	}

	if Fingerprint(first) != Fingerprint(norm.Normalize(record)) {
		t.Error("fingerprint(normalize(record)) should be identical across calls")
	}
}

func TestNormalizeTruncation(t *testing.T) {
	const maxTokens = 50
	norm := newTestNormalizer(t, maxTokens)

	record := bookmarks.Record{
		URL:        "https://a.com",
		Name:       "A",
		FolderPath: "bar",
		Content:    strings.Repeat("lengthy scraped paragraph text ", 200),
	}

	got := norm.Normalize(record)

	if count := norm.TokenCount(got); count > maxTokens {
		t.Errorf("Truncated text has %d tokens, budget is %d", count, maxTokens)
	}

	// Truncation only trims trailing content; the url/name/path prefix survives
	if !strings.HasPrefix(got, "https://a.com;A;bar;") {
		t.Errorf("Truncated text lost its prefix: %q", got[:min(len(got), 40)])
	}
}

func TestNormalizeShortTextUntouched(t *testing.T) {
	norm := newTestNormalizer(t, 7500)
	record := bookmarks.Record{
		URL:        "https://a.com",
		Name:       "A",
		FolderPath: "bar",
		Content:    "hi",
	}

	if got := norm.Normalize(record); got != "https://a.com;A;bar;hi" {
		t.Errorf("Short text should not be modified, got %q", got)
	}
}
