package docnorm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

// Embedding model parameters.
const (
	embeddingModel      = openai.LargeEmbedding3
	embeddingDimensions = 3072

	// MaxEmbeddingTokens is the largest document the embedding model
	// accepts; longer documents are skipped by callers.
	MaxEmbeddingTokens = 8000
)

// Embedder abstracts the embedding API so tests can stub it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder implements Embedder against the OpenAI API.
type OpenAIEmbedder struct {
	client *openai.Client
}

// NewOpenAIEmbedder creates an embedder with the given API key.
func NewOpenAIEmbedder(apiKey string) *OpenAIEmbedder {
	return &OpenAIEmbedder{client: openai.NewClient(apiKey)}
}

// Embed returns the embedding vector for one text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          embeddingModel,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		Dimensions:     embeddingDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrEmbedding)
	}
	return resp.Data[0].Embedding, nil
}

// Checksum returns the hex SHA-256 of the content, used as the embedding
// cache key so unchanged documents are never re-embedded.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// EmbeddingCache is a checksum-keyed store of embedding vectors persisted
// as a JSON file.
type EmbeddingCache struct {
	path    string
	entries map[string][]float32
}

// LoadEmbeddingCache reads the cache file at path. A missing file yields an
// empty cache; a corrupt file is an error.
func LoadEmbeddingCache(path string) (*EmbeddingCache, error) {
	cache := &EmbeddingCache{path: path, entries: make(map[string][]float32)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}
	if err := json.Unmarshal(data, &cache.entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}
	return cache, nil
}

// Get looks up the embedding for a checksum.
func (c *EmbeddingCache) Get(checksum string) ([]float32, bool) {
	embedding, ok := c.entries[checksum]
	return embedding, ok
}

// Put stores the embedding for a checksum.
func (c *EmbeddingCache) Put(checksum string, embedding []float32) {
	c.entries[checksum] = embedding
}

// Len returns the number of cached embeddings.
func (c *EmbeddingCache) Len() int {
	return len(c.entries)
}

// Save writes the cache back to its file.
func (c *EmbeddingCache) Save() error {
	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}
