package docnorm

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidInput    = errors.New("input is not valid UTF-8 text")
	ErrEmptyDocument   = errors.New("document content cannot be empty")
	ErrMissingCompany  = errors.New("company name is required for release notes")
	ErrInvalidCompany  = errors.New("invalid company name")
	ErrHTMLConversion  = errors.New("HTML conversion failed")
	ErrTokenCount      = errors.New("token counting failed")
	ErrDocumentTooLong = errors.New("document exceeds token limit")

	// Content type validation errors.
	ErrInvalidContentType = errors.New("invalid content type")

	// Bucket threshold validation errors.
	ErrInvalidThresholds = errors.New("invalid bucket thresholds")

	// Upstream API errors.
	ErrChat      = errors.New("chat completion failed")
	ErrEmbedding = errors.New("embedding request failed")

	// Embedding cache errors.
	ErrCacheRead  = errors.New("failed to read embedding cache")
	ErrCacheWrite = errors.New("failed to write embedding cache")
)
