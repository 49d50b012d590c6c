package docnorm

import (
	"context"
	"errors"
	"testing"
)

// fakeTokenCounter returns a fixed count, or the byte length when count is
// negative. Keeps tests off the real tokenizer, which fetches its encoding.
type fakeTokenCounter struct {
	count int
	err   error
}

func (f *fakeTokenCounter) CountTokens(text string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.count < 0 {
		return len(text), nil
	}
	return f.count, nil
}

type fakeHTMLConverter struct {
	markdown string
	err      error
}

func (f *fakeHTMLConverter) ConvertHTML(_ context.Context, _ string) (string, error) {
	return f.markdown, f.err
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithTokenCounter(&fakeTokenCounter{count: 10})}, opts...)
	svc, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(WithBucketThresholds(BucketThresholds{Short: 10, Medium: 5})); !errors.Is(err, ErrInvalidThresholds) {
		t.Errorf("New() error = %v, want ErrInvalidThresholds", err)
	}
	if _, err := New(WithCompany("not a subdomain!")); !errors.Is(err, ErrInvalidCompany) {
		t.Errorf("New() error = %v, want ErrInvalidCompany", err)
	}
}

func TestService_Process_Documentation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	result, err := svc.Process(context.Background(), Input{
		Markdown: "export junk\n# Guide\n\nBody \n\n## Attachments:\n![](attachments/a.png)",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Markdown != "# Guide\n\nBody" {
		t.Errorf("Markdown = %q, want %q", result.Markdown, "# Guide\n\nBody")
	}
	if result.Title != "Guide" {
		t.Errorf("Title = %q, want %q", result.Title, "Guide")
	}
	if result.Tokens != 10 {
		t.Errorf("Tokens = %d, want 10", result.Tokens)
	}
	if result.Bucket != BucketShort {
		t.Errorf("Bucket = %q, want %q", result.Bucket, BucketShort)
	}
	if result.Model != ModelShortDocuments {
		t.Errorf("Model = %q, want %q", result.Model, ModelShortDocuments)
	}
}

func TestService_Process_HTML(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, WithHTMLConverter(&fakeHTMLConverter{
		markdown: "# Converted\n\ntext",
	}))

	result, err := svc.Process(context.Background(), Input{HTML: "<h1>Converted</h1><p>text</p>"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Markdown != "# Converted\n\ntext" {
		t.Errorf("Markdown = %q, want %q", result.Markdown, "# Converted\n\ntext")
	}
	if result.Title != "Converted" {
		t.Errorf("Title = %q, want %q", result.Title, "Converted")
	}
}

func TestService_Process_HTMLConversionError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, WithHTMLConverter(&fakeHTMLConverter{err: ErrHTMLConversion}))

	if _, err := svc.Process(context.Background(), Input{HTML: "<p>x</p>"}); !errors.Is(err, ErrHTMLConversion) {
		t.Errorf("Process() error = %v, want ErrHTMLConversion", err)
	}
}

func TestService_Process_ReleaseNotes(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, WithCompany("acme"))

	result, err := svc.Process(context.Background(), Input{
		Markdown:    "# Release Notes\n\n## Sprint 1\n[EW-1] thing |\nFixed",
		ContentType: ContentTypeReleaseNotes,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := "# Release Notes\n## Sprint 1\n[EW-1](https://acme.atlassian.net/browse/EW-1) thing | Fixed"
	if result.Markdown != want {
		t.Errorf("Markdown = %q, want %q", result.Markdown, want)
	}
	if result.Title != "Release Notes" {
		t.Errorf("Title = %q, want %q", result.Title, "Release Notes")
	}
}

func TestService_Process_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		input   Input
		wantErr error
	}{
		{
			name:    "empty input",
			input:   Input{},
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "unknown content type",
			input:   Input{Markdown: "# x", ContentType: "notes"},
			wantErr: ErrInvalidContentType,
		},
		{
			name:    "release notes without company",
			input:   Input{Markdown: "# x", ContentType: ContentTypeReleaseNotes},
			wantErr: ErrMissingCompany,
		},
		{
			name:    "invalid utf8",
			input:   Input{Markdown: "\xff"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, tt.opts...)
			if _, err := svc.Process(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Process() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Process_ContextCanceled(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Process(ctx, Input{Markdown: "# x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Process() error = %v, want context.Canceled", err)
	}
}

func TestService_Cleaner(t *testing.T) {
	t.Parallel()

	if newTestService(t).Cleaner() == nil {
		t.Error("Cleaner() = nil")
	}
}
