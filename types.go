package docnorm

import "fmt"

// Content type constants.
const (
	ContentTypeDocumentation = "documentation"
	ContentTypeReleaseNotes  = "release_notes"
)

// Token bucket constants for routing cleaned documents to model tiers.
const (
	BucketShort  = "short"
	BucketMedium = "medium"
	BucketLong   = "long"
)

// Default bucket boundaries in tokens.
const (
	DefaultShortLimit  = 3500
	DefaultMediumLimit = 15000
)

// Model tiers per bucket. Long documents have no tier; callers skip them.
const (
	ModelShortDocuments  = "gpt-3.5-turbo-1106"
	ModelMediumDocuments = "gpt-3.5-turbo-16k"
)

// BucketThresholds configures the token boundaries between buckets.
type BucketThresholds struct {
	Short  int // inclusive upper bound for "short"
	Medium int // exclusive upper bound for "medium"
}

// DefaultBucketThresholds returns the standard boundaries.
func DefaultBucketThresholds() BucketThresholds {
	return BucketThresholds{Short: DefaultShortLimit, Medium: DefaultMediumLimit}
}

// Validate checks that the boundaries are positive and ordered.
func (t BucketThresholds) Validate() error {
	if t.Short <= 0 || t.Medium <= t.Short {
		return fmt.Errorf("%w: short=%d medium=%d", ErrInvalidThresholds, t.Short, t.Medium)
	}
	return nil
}

// Bucket routes a token count to its bucket.
func (t BucketThresholds) Bucket(tokens int) string {
	switch {
	case tokens <= t.Short:
		return BucketShort
	case tokens < t.Medium:
		return BucketMedium
	default:
		return BucketLong
	}
}

// Model returns the chat model tier for a token count, or "" when the
// document is too long for any tier.
func (t BucketThresholds) Model(tokens int) string {
	switch t.Bucket(tokens) {
	case BucketShort:
		return ModelShortDocuments
	case BucketMedium:
		return ModelMediumDocuments
	default:
		return ""
	}
}

// Input contains normalization parameters for one document.
type Input struct {
	HTML        string // raw HTML (optional; converted to Markdown when set)
	Markdown    string // raw Markdown (used when HTML is empty)
	ContentType string // "documentation" (default) or "release_notes"
}

// contentType resolves the effective content type.
func (in Input) contentType() string {
	if in.ContentType == "" {
		return ContentTypeDocumentation
	}
	return in.ContentType
}

// Result is the outcome of processing one document.
type Result struct {
	Markdown string // cleaned (and possibly normalized) Markdown
	Title    string // first level-1 heading, "" if none
	Tokens   int    // token count of the cleaned Markdown
	Bucket   string // "short", "medium", or "long"
	Model    string // chat model tier for the bucket, "" for long
}

// isValidContentType checks the content type against the known set.
func isValidContentType(contentType string) bool {
	switch contentType {
	case ContentTypeDocumentation, ContentTypeReleaseNotes:
		return true
	}
	return false
}
