package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/evelynxu/marksearch/internal/embeddings"
	interrors "github.com/evelynxu/marksearch/internal/errors"
	"github.com/evelynxu/marksearch/internal/logger"
	"github.com/evelynxu/marksearch/internal/models"
)

// Result is one ranked bookmark.
type Result struct {
	URL   string  `json:"url"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Engine ranks all stored bookmark vectors against a query embedding by
// cosine similarity. Linear scan: the corpus is hundreds to low thousands of
// bookmarks, not enough to justify an ANN index.
type Engine struct {
	repo     *models.BookmarkRepository
	embedder embeddings.Provider
}

func NewEngine(repo *models.BookmarkRepository, embedder embeddings.Provider) *Engine {
	return &Engine{repo: repo, embedder: embedder}
}

// Search returns up to topK bookmarks ordered by descending similarity, ties
// broken by URL so identical scores rank deterministically. A query that
// cannot be embedded yields no results rather than an error; a store failure
// aborts the search.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if query == "" {
		return nil, interrors.ErrEmptyQuery
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: %d", interrors.ErrInvalidTopK, topK)
	}

	queryEmbedding, err := e.embedder.Embed(ctx, query)
	if err != nil || len(queryEmbedding) == 0 {
		logger.Error("Query embedding unavailable: %v", err)
		return []Result{}, nil
	}

	stored, err := e.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	if len(stored) == 0 {
		logger.Debug("No bookmarks indexed yet")
		return []Result{}, nil
	}

	results := make([]Result, 0, len(stored))
	for _, bookmark := range stored {
		if len(bookmark.Embedding) != len(queryEmbedding) {
			// A stale vector from an older embedding model; exclude it
			logger.Warn("Dimension mismatch for %s: stored %d, query %d",
				bookmark.URL, len(bookmark.Embedding), len(queryEmbedding))
			continue
		}
		results = append(results, Result{
			URL:   bookmark.URL,
			Name:  bookmark.Name,
			Score: embeddings.CosineSimilarity(queryEmbedding, bookmark.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].URL < results[j].URL
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
