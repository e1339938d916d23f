package search

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/evelynxu/marksearch/internal/config"
	"github.com/evelynxu/marksearch/internal/database"
	interrors "github.com/evelynxu/marksearch/internal/errors"
	"github.com/evelynxu/marksearch/internal/models"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func setupTestRepo(t *testing.T) *models.BookmarkRepository {
	t.Helper()
	tempDir := t.TempDir()

	cfg := &config.Config{
		DataDirectory: tempDir,
		DatabasePath:  filepath.Join(tempDir, "test.db"),
	}
	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return models.NewBookmarkRepository(db.Conn())
}

func TestSearchRanking(t *testing.T) {
	repo := setupTestRepo(t)
	seed := []struct {
		url       string
		embedding []float32
	}{
		{"https://x.com", []float32{1, 0}},
		{"https://y.com", []float32{0, 1}},
		{"https://z.com", []float32{0.7, 0.7}},
	}
	for _, s := range seed {
		if err := repo.Upsert(s.url, "name", s.embedding, "fp"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	engine := NewEngine(repo, &fakeEmbedder{vector: []float32{1, 0}})
	results, err := engine.Search(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://x.com" {
		t.Errorf("Best match should be https://x.com, got %s", results[0].URL)
	}
	if math.Abs(results[0].Score-1.0) > 1e-6 {
		t.Errorf("Expected score 1.0, got %f", results[0].Score)
	}
	if results[1].URL != "https://z.com" {
		t.Errorf("Second match should be https://z.com, got %s", results[1].URL)
	}
	if math.Abs(results[1].Score-0.7071) > 1e-4 {
		t.Errorf("Expected score ~0.7071, got %f", results[1].Score)
	}
}

func TestSearchReturnsWholeCorpusWhenSmall(t *testing.T) {
	repo := setupTestRepo(t)
	if err := repo.Upsert("https://a.com", "A", []float32{1, 0}, "fp"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	engine := NewEngine(repo, &fakeEmbedder{vector: []float32{1, 0}})
	results, err := engine.Search(context.Background(), "query", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected min(topK, corpus) = 1 result, got %d", len(results))
	}
}

func TestSearchEmptyCorpus(t *testing.T) {
	repo := setupTestRepo(t)
	engine := NewEngine(repo, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := engine.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Empty corpus should not be an error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestSearchEmbeddingFailureYieldsEmpty(t *testing.T) {
	repo := setupTestRepo(t)
	if err := repo.Upsert("https://a.com", "A", []float32{1, 0}, "fp"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	engine := NewEngine(repo, &fakeEmbedder{err: errors.New("quota exceeded")})
	results, err := engine.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Query embedding failure should not be an error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results))
	}
}

func TestSearchSkipsDimensionMismatch(t *testing.T) {
	repo := setupTestRepo(t)
	// One vector from an older model with a different dimensionality
	if err := repo.Upsert("https://old.com", "Old", []float32{1, 0, 0}, "fp"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := repo.Upsert("https://new.com", "New", []float32{1, 0}, "fp"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	engine := NewEngine(repo, &fakeEmbedder{vector: []float32{1, 0}})
	results, err := engine.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Mismatched vector should be excluded, got %d results", len(results))
	}
	if results[0].URL != "https://new.com" {
		t.Errorf("Expected https://new.com, got %s", results[0].URL)
	}
}

func TestSearchTieBreakByURL(t *testing.T) {
	repo := setupTestRepo(t)
	// Identical vectors, identical scores
	for _, url := range []string{"https://b.com", "https://a.com", "https://c.com"} {
		if err := repo.Upsert(url, "same", []float32{1, 0}, "fp"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	engine := NewEngine(repo, &fakeEmbedder{vector: []float32{1, 0}})
	results, err := engine.Search(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{"https://a.com", "https://b.com", "https://c.com"}
	for i, url := range want {
		if results[i].URL != url {
			t.Errorf("Position %d: got %s, want %s (ties must break by URL)", i, results[i].URL, url)
		}
	}
}

func TestSearchValidation(t *testing.T) {
	repo := setupTestRepo(t)
	engine := NewEngine(repo, &fakeEmbedder{vector: []float32{1, 0}})

	if _, err := engine.Search(context.Background(), "", 5); !errors.Is(err, interrors.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
	if _, err := engine.Search(context.Background(), "query", 0); !errors.Is(err, interrors.ErrInvalidTopK) {
		t.Errorf("Expected ErrInvalidTopK, got %v", err)
	}
}
