package textprep

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/evelynxu/marksearch/internal/bookmarks"
)

// Normalizer builds the bounded-length text blob that gets fingerprinted and
// embedded for a bookmark. The tokenizer is loaded once and reused for the
// lifetime of the process; loading it per call is expensive.
type Normalizer struct {
	encoder   *tiktoken.Tiktoken
	maxTokens int
}

func NewNormalizer(encoding string, maxTokens int) (*Normalizer, error) {
	encoder, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer encoding %q: %w", encoding, err)
	}
	return &Normalizer{encoder: encoder, maxTokens: maxTokens}, nil
}

// Normalize joins the record's fields with semicolons and truncates the
// result at the token budget. The page title is included only when it adds
// information: names default to the title on import, so an identical title
// would just duplicate the name. Truncation happens on token boundaries and
// only ever trims trailing content, so the url/name/path prefix survives.
func (n *Normalizer) Normalize(record bookmarks.Record) string {
	fields := []string{record.URL, record.Name, record.FolderPath}
	if record.Title != "" && record.Title != record.Name {
		fields = append(fields, record.Title)
	}
	if record.Content != "" {
		fields = append(fields, record.Content)
	}

	joined := strings.Join(fields, ";")

	tokens := n.encoder.Encode(joined, nil, nil)
	if len(tokens) <= n.maxTokens {
		return joined
	}
	return n.encoder.Decode(tokens[:n.maxTokens])
}

// MaxTokens returns the configured token budget.
func (n *Normalizer) MaxTokens() int {
	return n.maxTokens
}

// TokenCount reports how many tokens a text occupies under this normalizer's
// encoding.
func (n *Normalizer) TokenCount(text string) int {
	return len(n.encoder.Encode(text, nil, nil))
}
