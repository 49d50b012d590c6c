package docnorm

import (
	"strings"
	"unicode/utf8"
)

// Cleaner applies the structural cleanup pipeline to Markdown exported from
// HTML sources. All patterns are compiled once at construction so the
// component carries no package-global state.
type Cleaner struct {
	patterns *cleanerPatterns
}

// NewCleaner creates a Cleaner with its pattern set compiled.
func NewCleaner() *Cleaner {
	return &Cleaner{patterns: newCleanerPatterns()}
}

// Clean applies all structural transformations in order and trims the result.
// The sequence is fixed: truncate to the first header, drop attachments,
// clean up lines, promote indented blocks to code fences, then collapse
// excessive line breaks. The full pipeline is idempotent.
func (c *Cleaner) Clean(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}

	content = c.truncateToFirstHeader(content)
	content = c.removeAttachments(content)
	content = c.cleanUpLines(content)
	content = c.convertIndentedBlocks(content)
	content = c.reduceLineBreaks(content)
	return strings.TrimSpace(content), nil
}

// TruncateToFirstHeader removes everything above the first Markdown header.
// A header is any line whose first non-whitespace character is '#'. Content
// without headers is returned unchanged.
func (c *Cleaner) TruncateToFirstHeader(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.truncateToFirstHeader(content), nil
}

func (c *Cleaner) truncateToFirstHeader(content string) string {
	loc := c.patterns.firstHeader.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[loc[0]:]
}

// RemoveAttachmentsSection cuts from the first '## Attachments:' line to the
// end of the content. A single cut: later occurrences sit inside the removed
// suffix and disappear with it.
func (c *Cleaner) RemoveAttachmentsSection(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.patterns.attachmentsSection.ReplaceAllString(content, ""), nil
}

// RemoveInlineAttachments strips attachment image references from the
// content, in both the bare ![alt](attachments/...) form and the
// link-wrapped [![alt](attachments/...)](attachments/...) form. The
// surrounding line text is preserved.
func (c *Cleaner) RemoveInlineAttachments(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.removeInlineAttachments(content), nil
}

func (c *Cleaner) removeInlineAttachments(content string) string {
	// Wrapped form first, otherwise the bare pattern leaves the outer link.
	content = c.patterns.wrappedAttachment.ReplaceAllString(content, "")
	return c.patterns.bareAttachment.ReplaceAllString(content, "")
}

// RemoveAttachments is the combined production transform: the attachments
// section cut followed by inline reference removal.
func (c *Cleaner) RemoveAttachments(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.removeAttachments(content), nil
}

func (c *Cleaner) removeAttachments(content string) string {
	content = c.patterns.attachmentsSection.ReplaceAllString(content, "")
	return c.removeInlineAttachments(content)
}

// CleanUpLines strips trailing spaces and tabs from every line and deletes
// lines that consist entirely of horizontal whitespace, including their line
// break. Truly empty lines are kept so paragraph separation survives.
func (c *Cleaner) CleanUpLines(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.cleanUpLines(content), nil
}

func (c *Cleaner) cleanUpLines(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" && line != "" {
			// Whitespace-only line: drop it entirely.
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

// ConvertIndentedBlocks wraps maximal runs of four-space-indented lines in
// fenced code blocks. Blank lines inside a run are kept as long as indented
// lines resume after them; a single non-indented line terminates the run.
// Content already inside a fence is left untouched, which keeps the
// transform (and the whole pipeline) idempotent.
func (c *Cleaner) ConvertIndentedBlocks(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.convertIndentedBlocks(content), nil
}

func (c *Cleaner) convertIndentedBlocks(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+2)

	inFence := false
	i := 0
	for i < len(lines) {
		line := lines[i]

		if c.patterns.fenceDelimiter.MatchString(line) {
			inFence = !inFence
			out = append(out, line)
			i++
			continue
		}

		if inFence || !isIndentedLine(line) {
			out = append(out, line)
			i++
			continue
		}

		// Start of an indented run; extend through blank separators as long
		// as indented lines resume afterwards.
		end := i
		j := i
		for j < len(lines) {
			if isIndentedLine(lines[j]) {
				j++
				end = j
				continue
			}
			if isBlankLine(lines[j]) {
				k := j
				for k < len(lines) && isBlankLine(lines[k]) {
					k++
				}
				if k < len(lines) && isIndentedLine(lines[k]) {
					j = k
					continue
				}
			}
			break
		}

		out = append(out, "```")
		out = append(out, lines[i:end]...)
		out = append(out, "```")
		i = end
	}

	return strings.Join(out, "\n")
}

// ReduceLineBreaks collapses runs of three or more line breaks, each
// optionally trailed by horizontal whitespace, to exactly one blank line.
func (c *Cleaner) ReduceLineBreaks(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", ErrInvalidInput
	}
	return c.reduceLineBreaks(content), nil
}

func (c *Cleaner) reduceLineBreaks(content string) string {
	return c.patterns.excessiveBreaks.ReplaceAllString(content, "\n\n")
}

// isIndentedLine reports whether the line opens an indented code line
// (at least four leading spaces).
func isIndentedLine(line string) bool {
	return strings.HasPrefix(line, "    ")
}

// isBlankLine reports whether the line is empty or whitespace-only.
func isBlankLine(line string) bool {
	return strings.TrimRight(line, " \t") == ""
}
