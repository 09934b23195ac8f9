package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores model answers and uploaded files between requests.
type Cache interface {
	// GetAnswer retrieves a cached answer by key.
	// Returns nil if not found
	GetAnswer(ctx context.Context, key string) (*Answer, error)

	// SetAnswer stores an answer with TTL
	SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error

	// GetUpload retrieves an uploaded file by dataset id.
	// Returns nil if not found
	GetUpload(ctx context.Context, id string) (*Upload, error)

	// SetUpload stores an uploaded file with TTL
	SetUpload(ctx context.Context, id string, upload *Upload, ttl time.Duration) error

	// Close releases the underlying connection
	Close() error
}

// Answer is a cached model response.
type Answer struct {
	Text      string    `json:"text"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// Upload is a file a session uploaded earlier.
type Upload struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// GenerateCacheKey hashes its parts into a fixed-size key.
func GenerateCacheKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
