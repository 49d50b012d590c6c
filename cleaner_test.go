package docnorm

import (
	"errors"
	"testing"
)

func TestTruncateToFirstHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "preamble before header",
			content: "Exported by tool\n# Title\nbody",
			want:    "# Title\nbody",
		},
		{
			name:    "header on first line",
			content: "# Title\nbody",
			want:    "# Title\nbody",
		},
		{
			name:    "indented header",
			content: "noise\n   ## Section\nbody",
			want:    "   ## Section\nbody",
		},
		{
			name:    "no header",
			content: "just text\nmore text",
			want:    "just text\nmore text",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCleaner().TruncateToFirstHeader(tt.content)
			if err != nil {
				t.Fatalf("TruncateToFirstHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TruncateToFirstHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveAttachmentsSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "section at end",
			content: "# Title\nbody\n## Attachments:\nfile list",
			want:    "# Title\nbody",
		},
		{
			name:    "everything after first marker goes",
			content: "body\n## Attachments:\none\n## Attachments:\ntwo",
			want:    "body",
		},
		{
			name:    "no section",
			content: "# Title\nbody",
			want:    "# Title\nbody",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCleaner().RemoveAttachmentsSection(tt.content)
			if err != nil {
				t.Fatalf("RemoveAttachmentsSection() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RemoveAttachmentsSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveInlineAttachments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare image reference",
			content: "See ![diagram](attachments/diagram.png) for details",
			want:    "See  for details",
		},
		{
			name:    "link-wrapped image reference",
			content: "Before [![thumb](attachments/t.png)](attachments/full.png) after",
			want:    "Before  after",
		},
		{
			name:    "non-attachment image kept",
			content: "Logo ![logo](https://example.com/logo.png) stays",
			want:    "Logo ![logo](https://example.com/logo.png) stays",
		},
		{
			name:    "multiple references on one line",
			content: "![a](attachments/a.png) and ![b](attachments/b.png)",
			want:    " and ",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCleaner().RemoveInlineAttachments(tt.content)
			if err != nil {
				t.Fatalf("RemoveInlineAttachments() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RemoveInlineAttachments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanUpLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "trailing whitespace stripped",
			content: "text \t\n   \n",
			want:    "text\n",
		},
		{
			name:    "empty lines kept",
			content: "para one\n\npara two",
			want:    "para one\n\npara two",
		},
		{
			name:    "whitespace-only line dropped entirely",
			content: "a\n \t \nb",
			want:    "a\nb",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCleaner().CleanUpLines(tt.content)
			if err != nil {
				t.Fatalf("CleanUpLines() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CleanUpLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertIndentedBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "single run fenced",
			content: "para\n    code one\n    code two\nafter",
			want:    "para\n```\n    code one\n    code two\n```\nafter",
		},
		{
			name:    "blank separator kept inside run",
			content: "    first\n\n    second\nplain",
			want:    "```\n    first\n\n    second\n```\nplain",
		},
		{
			name:    "trailing blank lines excluded",
			content: "    code\n\nplain",
			want:    "```\n    code\n```\n\nplain",
		},
		{
			name:    "existing fence untouched",
			content: "```\n    already fenced\n```",
			want:    "```\n    already fenced\n```",
		},
		{
			name:    "tilde fence untouched",
			content: "~~~\n    fenced\n~~~",
			want:    "~~~\n    fenced\n~~~",
		},
		{
			name:    "no indented lines",
			content: "a\nb\nc",
			want:    "a\nb\nc",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cleaner := NewCleaner()
			got, err := cleaner.ConvertIndentedBlocks(tt.content)
			if err != nil {
				t.Fatalf("ConvertIndentedBlocks() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ConvertIndentedBlocks() = %q, want %q", got, tt.want)
			}

			again, err := cleaner.ConvertIndentedBlocks(got)
			if err != nil {
				t.Fatalf("second ConvertIndentedBlocks() error = %v", err)
			}
			if again != got {
				t.Errorf("not idempotent: second pass = %q, first pass %q", again, got)
			}
		})
	}
}

func TestReduceLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "triple break collapsed",
			content: "a\n\n\nb",
			want:    "a\n\nb",
		},
		{
			name:    "long run collapsed",
			content: "a\n\n\n\n\n\nb",
			want:    "a\n\nb",
		},
		{
			name:    "breaks with stray whitespace",
			content: "a\n  \n\t\n\nb",
			want:    "a\n\nb",
		},
		{
			name:    "double break kept",
			content: "a\n\nb",
			want:    "a\n\nb",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCleaner().ReduceLineBreaks(tt.content)
			if err != nil {
				t.Fatalf("ReduceLineBreaks() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReduceLineBreaks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "full export cleanup",
			content: "Garbage preamble\n# Title\n\nBody \n\n" +
				"## Attachments:\n![](attachments/img.png)\n",
			want: "# Title\n\nBody",
		},
		{
			name:    "inline attachment removed mid-line",
			content: "# Doc\n\nSee ![shot](attachments/shot.png) here",
			want:    "# Doc\n\nSee  here",
		},
		{
			name:    "indented block promoted",
			content: "# Doc\n\n    $ make test\n\ndone",
			want:    "# Doc\n\n```\n    $ make test\n```\n\ndone",
		},
		{
			name:    "excess blank lines collapsed",
			content: "# Doc\n\n\n\n\nBody",
			want:    "# Doc\n\nBody",
		},
		{
			name: "attachments section cut reaches end of document",
			content: "Text before\n# Header\nBody ![img](attachments/x.jpg)\n" +
				"## Attachments:\nfoo\n    indented\nmore\n\n\n\nend",
			want: "# Header\nBody",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cleaner := NewCleaner()
			got, err := cleaner.Clean(tt.content)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}

			again, err := cleaner.Clean(got)
			if err != nil {
				t.Fatalf("second Clean() error = %v", err)
			}
			if again != got {
				t.Errorf("not idempotent: second pass = %q, first pass %q", again, got)
			}
		})
	}
}

func TestClean_InvalidUTF8(t *testing.T) {
	t.Parallel()

	cleaner := NewCleaner()
	invalid := "# Title\n\xff\xfe"

	checks := map[string]func(string) (string, error){
		"Clean":                    cleaner.Clean,
		"TruncateToFirstHeader":    cleaner.TruncateToFirstHeader,
		"RemoveAttachmentsSection": cleaner.RemoveAttachmentsSection,
		"RemoveInlineAttachments":  cleaner.RemoveInlineAttachments,
		"RemoveAttachments":        cleaner.RemoveAttachments,
		"CleanUpLines":             cleaner.CleanUpLines,
		"ConvertIndentedBlocks":    cleaner.ConvertIndentedBlocks,
		"ReduceLineBreaks":         cleaner.ReduceLineBreaks,
	}

	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			if _, err := fn(invalid); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("%s(invalid UTF-8) error = %v, want ErrInvalidInput", name, err)
			}
		})
	}
}
