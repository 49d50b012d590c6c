package docnorm

import (
	"context"
	"fmt"
)

// serviceConfig holds construction-time settings for a Service.
type serviceConfig struct {
	company    string
	thresholds BucketThresholds
}

// Option customizes a Service.
type Option func(*Service)

// WithCompany sets the issue-tracker company name used to build canonical
// browse URLs. Required for release-note inputs.
func WithCompany(company string) Option {
	return func(s *Service) { s.cfg.company = company }
}

// WithBucketThresholds overrides the token bucket boundaries.
func WithBucketThresholds(t BucketThresholds) Option {
	return func(s *Service) { s.cfg.thresholds = t }
}

// WithHTMLConverter injects an HTML converter (e.g., by tests).
func WithHTMLConverter(c htmlConverter) Option {
	return func(s *Service) { s.converter = c }
}

// WithTokenCounter injects a token counter (e.g., by tests).
func WithTokenCounter(t TokenCounter) Option {
	return func(s *Service) { s.tokens = t }
}

// Service orchestrates the per-document pipeline: optional HTML conversion,
// structural cleaning, optional release-note normalization, then token
// counting and bucket routing.
type Service struct {
	cfg        serviceConfig
	cleaner    *Cleaner
	normalizer *Normalizer
	converter  htmlConverter
	tokens     TokenCounter
}

// New creates a Service with default collaborators. Use options to
// customize behavior (e.g., WithCompany for release notes).
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg:     serviceConfig{thresholds: DefaultBucketThresholds()},
		cleaner: NewCleaner(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.thresholds.Validate(); err != nil {
		return nil, err
	}

	if s.cfg.company != "" {
		normalizer, err := NewNormalizer(s.cfg.company)
		if err != nil {
			return nil, err
		}
		s.normalizer = normalizer
	}

	// Create collaborators if not injected (e.g., by tests)
	if s.converter == nil {
		s.converter = NewHTMLConverter()
	}
	if s.tokens == nil {
		s.tokens = NewTiktokenCounter()
	}

	return s, nil
}

// Cleaner exposes the service's structural cleaner for direct use.
func (s *Service) Cleaner() *Cleaner {
	return s.cleaner
}

// Process runs the full pipeline on one document and returns the cleaned
// Markdown with its routing metadata.
func (s *Service) Process(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	markdown := input.Markdown
	if input.HTML != "" {
		converted, err := s.converter.ConvertHTML(ctx, input.HTML)
		if err != nil {
			return nil, fmt.Errorf("converting HTML: %w", err)
		}
		markdown = converted
	}

	cleaned, err := s.cleaner.Clean(markdown)
	if err != nil {
		return nil, err
	}

	if input.contentType() == ContentTypeReleaseNotes {
		if s.normalizer == nil {
			return nil, ErrMissingCompany
		}
		cleaned, err = s.normalizer.Normalize(cleaned)
		if err != nil {
			return nil, err
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	count, err := s.tokens.CountTokens(cleaned)
	if err != nil {
		return nil, fmt.Errorf("counting tokens: %w", err)
	}

	return &Result{
		Markdown: cleaned,
		Title:    ExtractTitle(cleaned),
		Tokens:   count,
		Bucket:   s.cfg.thresholds.Bucket(count),
		Model:    s.cfg.thresholds.Model(count),
	}, nil
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.HTML == "" && input.Markdown == "" {
		return ErrEmptyDocument
	}
	if !isValidContentType(input.contentType()) {
		return fmt.Errorf("%w: %q", ErrInvalidContentType, input.ContentType)
	}
	return nil
}
