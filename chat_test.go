package docnorm

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeChatClient struct {
	message   string
	err       error
	lastModel string
	lastUser  string
}

func (f *fakeChatClient) Complete(_ context.Context, model, _, user string, _ float32) (string, error) {
	f.lastModel = model
	f.lastUser = user
	return f.message, f.err
}

func TestParseCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "triple-quoted block",
			message: `The document covers routing. """Categories: Networking, BGP, Firmware"""`,
			want:    []string{"Categories: Networking, BGP, Firmware"},
		},
		{
			name:    "fenced block fallback",
			message: "Summary here.\n```Categories: Storage, NVMe```",
			want:    []string{"Categories: Storage, NVMe"},
		},
		{
			name:    "multiple blocks",
			message: `"""Categories: A""" and """Categories: B"""`,
			want:    []string{"Categories: A", "Categories: B"},
		},
		{
			name:    "no blocks",
			message: "just a summary without categories",
			want:    nil,
		},
		{
			name:    "empty block skipped",
			message: `""""""`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseCategories(tt.message); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCategories() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	chat := &fakeChatClient{message: `Summary text. """Categories: Networking, Storage"""`}
	summarizer := NewSummarizer(chat, &fakeTokenCounter{count: 1200}, BucketThresholds{})

	summary, err := summarizer.Summarize(context.Background(), "# Doc\n\ncontent")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if summary.Model != ModelShortDocuments {
		t.Errorf("Model = %q, want %q", summary.Model, ModelShortDocuments)
	}
	if summary.Tokens != 1200 {
		t.Errorf("Tokens = %d, want 1200", summary.Tokens)
	}
	if summary.Message != chat.message {
		t.Errorf("Message = %q, want %q", summary.Message, chat.message)
	}
	want := []string{"Categories: Networking, Storage"}
	if !reflect.DeepEqual(summary.Categories, want) {
		t.Errorf("Categories = %v, want %v", summary.Categories, want)
	}
	if chat.lastModel != ModelShortDocuments {
		t.Errorf("requested model = %q, want %q", chat.lastModel, ModelShortDocuments)
	}
	if !strings.Contains(chat.lastUser, "# Doc\n\ncontent") {
		t.Error("user prompt does not embed the document")
	}
}

func TestSummarizer_Summarize_MediumTier(t *testing.T) {
	t.Parallel()

	chat := &fakeChatClient{message: "ok"}
	summarizer := NewSummarizer(chat, &fakeTokenCounter{count: 8000}, BucketThresholds{})

	summary, err := summarizer.Summarize(context.Background(), "content")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Model != ModelMediumDocuments {
		t.Errorf("Model = %q, want %q", summary.Model, ModelMediumDocuments)
	}
}

func TestSummarizer_Summarize_TooLong(t *testing.T) {
	t.Parallel()

	summarizer := NewSummarizer(&fakeChatClient{}, &fakeTokenCounter{count: 20000}, BucketThresholds{})

	if _, err := summarizer.Summarize(context.Background(), "huge"); !errors.Is(err, ErrDocumentTooLong) {
		t.Errorf("Summarize() error = %v, want ErrDocumentTooLong", err)
	}
}

func TestSummarizer_Summarize_ChatError(t *testing.T) {
	t.Parallel()

	summarizer := NewSummarizer(&fakeChatClient{err: ErrChat}, &fakeTokenCounter{count: 100}, BucketThresholds{})

	if _, err := summarizer.Summarize(context.Background(), "doc"); !errors.Is(err, ErrChat) {
		t.Errorf("Summarize() error = %v, want ErrChat", err)
	}
}

func TestSummarizer_Summarize_InvalidUTF8(t *testing.T) {
	t.Parallel()

	summarizer := NewSummarizer(&fakeChatClient{}, &fakeTokenCounter{count: 1}, BucketThresholds{})

	if _, err := summarizer.Summarize(context.Background(), "\xff"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Summarize() error = %v, want ErrInvalidInput", err)
	}
}
