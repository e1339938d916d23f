package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evelynxu/marksearch/internal/embeddings"
	interrors "github.com/evelynxu/marksearch/internal/errors"
)

// StoredBookmark is the queryable unit: one embedding per URL.
type StoredBookmark struct {
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Embedding   []float32 `json:"-"`
	LastUpdated time.Time `json:"last_updated"`
}

type BookmarkRepository struct {
	db *sql.DB
}

func NewBookmarkRepository(db *sql.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// GetFingerprint returns the stored content hash for a URL, or "" if the URL
// has never been indexed.
func (r *BookmarkRepository) GetFingerprint(url string) (string, error) {
	var hash string
	err := r.db.QueryRow(
		"SELECT content_hash FROM bookmark_hashes WHERE url = ?",
		url,
	).Scan(&hash)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get fingerprint: %w", err)
	}

	return hash, nil
}

func (r *BookmarkRepository) SetFingerprint(url, hash string) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO bookmark_hashes (url, content_hash, last_updated) VALUES (?, ?, CURRENT_TIMESTAMP)",
		url, hash,
	)
	if err != nil {
		return fmt.Errorf("failed to store fingerprint: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) GetBookmark(url string) (*StoredBookmark, error) {
	var bookmark StoredBookmark
	var blob []byte
	err := r.db.QueryRow(
		"SELECT url, name, embedding, last_updated FROM bookmarks WHERE url = ?",
		url,
	).Scan(&bookmark.URL, &bookmark.Name, &blob, &bookmark.LastUpdated)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, interrors.ErrBookmarkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	bookmark.Embedding, err = embeddings.BytesToEmbedding(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedding for %s: %w", url, err)
	}

	return &bookmark, nil
}

func (r *BookmarkRepository) SetBookmark(url, name string, embedding []float32) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO bookmarks (url, name, embedding, last_updated) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		url, name, embeddings.EmbeddingToBytes(embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to store bookmark: %w", err)
	}
	return nil
}

// Upsert writes the embedding and its fingerprint in a single transaction so
// a URL never ends up with a vector from one indexing cycle and a hash from
// another.
func (r *BookmarkRepository) Upsert(url, name string, embedding []float32, fingerprint string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO bookmarks (url, name, embedding, last_updated) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		url, name, embeddings.EmbeddingToBytes(embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to store bookmark: %w", err)
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO bookmark_hashes (url, content_hash, last_updated) VALUES (?, ?, CURRENT_TIMESTAMP)",
		url, fingerprint,
	)
	if err != nil {
		return fmt.Errorf("failed to store fingerprint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bookmark update: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) GetAll() ([]*StoredBookmark, error) {
	rows, err := r.db.Query("SELECT url, name, embedding, last_updated FROM bookmarks ORDER BY url")
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*StoredBookmark
	for rows.Next() {
		var bookmark StoredBookmark
		var blob []byte
		if err := rows.Scan(&bookmark.URL, &bookmark.Name, &blob, &bookmark.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}

		bookmark.Embedding, err = embeddings.BytesToEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedding for %s: %w", bookmark.URL, err)
		}
		bookmarks = append(bookmarks, &bookmark)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bookmarks, nil
}

// Delete removes both the embedding and the fingerprint for a URL.
func (r *BookmarkRepository) Delete(url string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM bookmarks WHERE url = ?", url)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bookmark_hashes WHERE url = ?", url); err != nil {
		return fmt.Errorf("failed to delete fingerprint: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	if rowsAffected == 0 {
		return interrors.ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM bookmarks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}
