package docnorm

import "testing"

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "atx heading",
			markdown: "# Release Notes\n\nbody",
			want:     "Release Notes",
		},
		{
			name:     "setext heading",
			markdown: "Main Title\n==========\n\nbody",
			want:     "Main Title",
		},
		{
			name:     "level-2 heading skipped",
			markdown: "## Section\n\n# Actual Title",
			want:     "Actual Title",
		},
		{
			name:     "inline formatting flattened",
			markdown: "# The *Styled* Title",
			want:     "The Styled Title",
		},
		{
			name:     "no heading",
			markdown: "plain paragraph only",
			want:     "",
		},
		{
			name:     "empty document",
			markdown: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExtractTitle(tt.markdown); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
