package docnorm

import "regexp"

// cleanerPatterns holds the compiled expressions used by the structural
// cleaner. They are built once per Cleaner instead of living as package
// globals, so each pipeline component owns its own compiled state.
type cleanerPatterns struct {
	// First Markdown header: a line whose first non-whitespace char is '#'.
	firstHeader *regexp.Regexp

	// The '## Attachments:' section marker and everything after it.
	attachmentsSection *regexp.Regexp

	// Inline attachment references, link-wrapped and bare.
	wrappedAttachment *regexp.Regexp
	bareAttachment    *regexp.Regexp

	// Fenced code block delimiter (backticks or tildes).
	fenceDelimiter *regexp.Regexp

	// Three or more line breaks, each optionally trailed by spaces/tabs.
	excessiveBreaks *regexp.Regexp
}

func newCleanerPatterns() *cleanerPatterns {
	return &cleanerPatterns{
		firstHeader:        regexp.MustCompile(`(?m)^\s*#`),
		attachmentsSection: regexp.MustCompile(`(?s)\n## Attachments:.*`),
		wrappedAttachment:  regexp.MustCompile(`\[!\[.*?\]\(attachments/.*?\)\]\(attachments/.*?\)`),
		bareAttachment:     regexp.MustCompile(`!\[.*?\]\(attachments/.*?\)`),
		fenceDelimiter:     regexp.MustCompile("^(```|~~~)"),
		excessiveBreaks:    regexp.MustCompile(`(?:\n[ \t]*){3,}`),
	}
}
