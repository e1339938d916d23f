package embeddings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evelynxu/marksearch/internal/config"
	interrors "github.com/evelynxu/marksearch/internal/errors"
)

func TestOllamaEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"embedding": [0.1, 0.2, 0.3]}`))
	}))
	defer server.Close()

	cfg := &config.Config{OllamaEndpoint: server.URL, EmbeddingModel: "nomic-embed-text"}
	provider := NewOllamaProvider(cfg)

	embedding, err := provider.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(embedding) != 3 {
		t.Fatalf("Expected 3 dimensions, got %d", len(embedding))
	}
}

func TestOllamaEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{OllamaEndpoint: server.URL, EmbeddingModel: "nomic-embed-text"}
	provider := NewOllamaProvider(cfg)

	if _, err := provider.Embed(context.Background(), "some text"); err == nil {
		t.Error("Expected error for server failure")
	}
}

func TestOllamaEmbedEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"embedding": []}`))
	}))
	defer server.Close()

	cfg := &config.Config{OllamaEndpoint: server.URL, EmbeddingModel: "nomic-embed-text"}
	provider := NewOllamaProvider(cfg)

	if _, err := provider.Embed(context.Background(), "some text"); !errors.Is(err, interrors.ErrEmptyEmbedding) {
		t.Errorf("Expected ErrEmptyEmbedding, got %v", err)
	}
}

func TestOpenAIEmbedParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); !strings.HasPrefix(got, "Bearer ") {
			t.Errorf("Missing bearer token, got %q", got)
		}
		w.Write([]byte(`{"data": [{"embedding": [0.5, 0.5]}]}`))
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	cfg := &config.Config{OpenAIEndpoint: server.URL, EmbeddingModel: "text-embedding-ada-002"}

	provider, err := NewOpenAIProvider(cfg)
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	embedding, err := provider.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(embedding) != 2 {
		t.Fatalf("Expected 2 dimensions, got %d", len(embedding))
	}
}

func TestNewProviderUnknown(t *testing.T) {
	cfg := &config.Config{EmbeddingProvider: "nonsense"}
	if _, err := NewProvider(cfg); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
