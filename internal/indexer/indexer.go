package indexer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/evelynxu/marksearch/internal/bookmarks"
	"github.com/evelynxu/marksearch/internal/embeddings"
	"github.com/evelynxu/marksearch/internal/logger"
	"github.com/evelynxu/marksearch/internal/models"
	"github.com/evelynxu/marksearch/internal/scrape"
	"github.com/evelynxu/marksearch/internal/textprep"
)

// Stats summarizes one reindex run.
type Stats struct {
	Indexed int // embedded and written
	Skipped int // fingerprint unchanged, no embedding call made
	Failed  int // embedding failed, prior state left untouched
}

// Indexer decides per bookmark whether re-embedding is needed. Unchanged
// content never triggers an embedding call.
type Indexer struct {
	repo       *models.BookmarkRepository
	fetcher    scrape.Fetcher
	embedder   embeddings.Provider
	normalizer *textprep.Normalizer
	workers    int
}

func New(repo *models.BookmarkRepository, fetcher scrape.Fetcher, embedder embeddings.Provider, normalizer *textprep.Normalizer, workers int) *Indexer {
	if workers < 1 {
		workers = 1
	}
	return &Indexer{
		repo:       repo,
		fetcher:    fetcher,
		embedder:   embedder,
		normalizer: normalizer,
		workers:    workers,
	}
}

// Reindex processes the records with bounded concurrency. Records sharing a
// URL are collapsed first (last occurrence wins) so no two workers ever
// write the same key. Scrape and embedding failures are per-record and never
// abort the batch; a store failure does.
func (ix *Indexer) Reindex(ctx context.Context, records []bookmarks.Record) (Stats, error) {
	records = dedupeByURL(records)

	var (
		mu    sync.Mutex
		stats Stats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for _, record := range records {
		record := record
		g.Go(func() error {
			outcome, err := ix.processRecord(ctx, record)
			if err != nil {
				return err
			}

			mu.Lock()
			switch outcome {
			case outcomeIndexed:
				stats.Indexed++
			case outcomeSkipped:
				stats.Skipped++
			case outcomeFailed:
				stats.Failed++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}

type outcome int

const (
	outcomeIndexed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// processRecord runs the scrape/normalize/fingerprint/embed pipeline for one
// bookmark. The returned error is reserved for store failures; everything
// else degrades or skips.
func (ix *Indexer) processRecord(ctx context.Context, record bookmarks.Record) (outcome, error) {
	page, err := ix.fetcher.FetchPage(ctx, record.URL)
	if err != nil {
		// Scrape failures degrade the record to url/name/path text only
		record.ScrapeErr = err
		logger.Debug("Scrape failed for %s: %v", record.URL, err)
	} else {
		record.Title = page.Title
		record.Content = page.Content
	}

	text := ix.normalizer.Normalize(record)
	fingerprint := textprep.Fingerprint(text)

	stored, err := ix.repo.GetFingerprint(record.URL)
	if err != nil {
		return outcomeFailed, err
	}

	if stored == fingerprint {
		logger.Debug("Content unchanged for %s, skipping", record.URL)
		return outcomeSkipped, nil
	}

	embedding, err := ix.embedder.Embed(ctx, text)
	if err != nil || len(embedding) == 0 {
		// Leave any previously stored vector intact rather than half-updating
		logger.Error("Embedding failed for %s: %v", record.URL, err)
		return outcomeFailed, nil
	}

	if err := ix.repo.Upsert(record.URL, record.Name, embedding, fingerprint); err != nil {
		return outcomeFailed, err
	}

	logger.Debug("Indexed %s (%d dimensions)", record.URL, len(embedding))
	return outcomeIndexed, nil
}

func dedupeByURL(records []bookmarks.Record) []bookmarks.Record {
	seen := make(map[string]int, len(records))
	deduped := make([]bookmarks.Record, 0, len(records))

	for _, record := range records {
		if idx, ok := seen[record.URL]; ok {
			deduped[idx] = record
			continue
		}
		seen[record.URL] = len(deduped)
		deduped = append(deduped, record)
	}
	return deduped
}
