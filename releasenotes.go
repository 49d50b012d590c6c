package docnorm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Literal markers that bound logical entries in release-note exports.
const (
	tableHeaderMarker = "Key | Summary | T |"
	bareImageMarker   = "![]("
	sectionMarker     = "## "
)

// companyNamePattern restricts the configured company name to characters
// legal in an atlassian.net subdomain.
var companyNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Normalizer rewrites issue-tracker release-note Markdown into one
// normalized line per logical entry. Issue rows arrive hard-wrapped across
// physical lines by the upstream HTML conversion, with task type and
// priority encoded as icon images; the normalizer reconstructs each row,
// substitutes literal text for the icons, and restores a canonical browse
// URL for every issue key.
type Normalizer struct {
	company string

	// Icon alt-text extraction, simple and link-wrapped forms.
	taskTypeSimple  *regexp.Regexp
	taskTypeWrapped *regexp.Regexp

	// Generic task-type image placeholder to be replaced with literal text.
	taskTypeTarget *regexp.Regexp

	// Priority icon URL and the bare priority image placeholder.
	priorityIcon   *regexp.Regexp
	priorityTarget *regexp.Regexp

	// Markdown link with an https target; visible text is unwrapped unless
	// it is an issue key.
	summaryLink *regexp.Regexp

	// Issue key token, anywhere and anchored at line start.
	keyToken       *regexp.Regexp
	keyAtLineStart *regexp.Regexp

	// A whole logical row spanning physical lines, and the verbose issue
	// counter link.
	rowSpan      *regexp.Regexp
	issueCounter *regexp.Regexp

	// An existing key link on any atlassian.net domain, rewritten to the
	// configured company domain.
	keyLink *regexp.Regexp

	// Runs of two or more whitespace characters.
	multiSpace *regexp.Regexp
}

// NewNormalizer creates a Normalizer for the given issue-tracker company
// name, which forms the canonical browse URL
// https://<company>.atlassian.net/browse/<key>. All patterns are compiled
// here; a malformed pattern is impossible at runtime.
func NewNormalizer(company string) (*Normalizer, error) {
	if company == "" {
		return nil, ErrMissingCompany
	}
	if !companyNamePattern.MatchString(company) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCompany, company)
	}

	return &Normalizer{
		company:         company,
		taskTypeSimple:  regexp.MustCompile(`!\[(.*?)\]`),
		taskTypeWrapped: regexp.MustCompile(`\[!\[(.*?)\]\(.*?\)\]`),
		taskTypeTarget:  regexp.MustCompile(`\[!\[.*?\]\(.*?\)\]\(.*?\)`),
		priorityIcon:    regexp.MustCompile(`icons/priorities/(.*?)\.svg`),
		priorityTarget:  regexp.MustCompile(`!\[.*?\]\(.*?icons/priorities/.*?\.svg\)`),
		summaryLink:     regexp.MustCompile(`\[\s?(.*?)\s?\]\(https://.*?\)`),
		keyToken:        regexp.MustCompile(`\[EW-\d+\]`),
		keyAtLineStart:  regexp.MustCompile(`^\[EW-\d+\]`),
		rowSpan:         regexp.MustCompile(`(?s)\[EW-\d+\].*?Fixed`),
		issueCounter:    regexp.MustCompile(`\[\s*(\d+\s*issue[s]?)\s*\]\(https://[^)]+\)`),
		keyLink:         regexp.MustCompile(`\[(EW-\d+)\]\(https://[a-zA-Z0-9-]+\.atlassian\.net/browse/EW-\d+\)`),
		multiSpace:      regexp.MustCompile(`\s{2,}`),
	}, nil
}

// Company returns the configured issue-tracker company name.
func (n *Normalizer) Company() string {
	return n.company
}

// Normalize runs the full release-note pipeline: the line-buffering entry
// transform, the whole-document row join for entries the state machine
// missed, issue counter simplification, and a final key-URL sweep. Every
// pass is idempotent, so composing them never damages already-normalized
// text.
func (n *Normalizer) Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}

	text = n.transformEntries(text)
	text = n.joinEntries(text)
	text = n.simplifyIssueCounters(text)
	return n.finalizeEntries(text), nil
}

// TransformEntries scans the text line by line, accumulating the physical
// lines of each logical entry and flushing the buffer at every structural
// boundary. Boundary lines are emitted as independently processed single
// lines; an empty buffer flushes to nothing.
func (n *Normalizer) TransformEntries(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}
	return n.transformEntries(text), nil
}

func (n *Normalizer) transformEntries(text string) string {
	lines := strings.Split(text, "\n")
	entries := make([]string, 0, len(lines))

	var buffer []string
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		entries = append(entries, n.processEntry(strings.Join(buffer, " ")))
		buffer = buffer[:0]
	}

	for _, line := range lines {
		if n.isBoundary(line, len(buffer) > 0) {
			flush()
			entries = append(entries, n.processLine(line))
			continue
		}
		buffer = append(buffer, line)
	}
	flush()

	return strings.Join(entries, "\n")
}

// isBoundary reports whether the line terminates the current entry: either a
// non-data marker (section header, bare image, table header row) or the
// start of the next data entry while one is already accumulating.
func (n *Normalizer) isBoundary(line string, accumulating bool) bool {
	if strings.HasPrefix(line, sectionMarker) ||
		strings.Contains(line, bareImageMarker) ||
		strings.Contains(line, tableHeaderMarker) {
		return true
	}
	return accumulating && n.keyAtLineStart.MatchString(line)
}

// processLine normalizes a boundary line: stripped, and with the canonical
// key URL restored when the line carries an issue key.
func (n *Normalizer) processLine(line string) string {
	line = strings.TrimSpace(line)
	if n.keyToken.MatchString(line) {
		return n.restoreKeyURL(line)
	}
	return line
}

// processEntry applies the replacement sequence to one joined entry:
// task-type substitution, priority substitution, summary unwrapping,
// key-URL normalization, then spacing normalization.
func (n *Normalizer) processEntry(entry string) string {
	entry = strings.TrimSpace(entry)
	entry = n.substituteTaskType(entry)
	entry = n.substitutePriority(entry)
	entry = n.unwrapSummaries(entry)
	entry = n.normalizeKeyLinks(entry)
	return n.normalizeSpacing(entry)
}

// ExtractTaskType extracts the task type from an icon reference, preferring
// the simple ![type] form over the link-wrapped [![type](url)] form.
// Returns "" when the entry carries no icon reference.
func (n *Normalizer) ExtractTaskType(entry string) string {
	if m := n.taskTypeSimple.FindStringSubmatch(entry); m != nil {
		return m[1]
	}
	if m := n.taskTypeWrapped.FindStringSubmatch(entry); m != nil {
		return m[1]
	}
	return ""
}

// ExtractPriority extracts the priority name from an icon URL of the form
// .../icons/priorities/<name>.svg and title-cases it. Returns "" when the
// entry carries no priority icon.
func (n *Normalizer) ExtractPriority(entry string) string {
	m := n.priorityIcon.FindStringSubmatch(entry)
	if m == nil {
		return ""
	}
	return capitalize(m[1])
}

// substituteTaskType replaces the first generic task-type image placeholder
// with the literal task type extracted from the entry.
func (n *Normalizer) substituteTaskType(entry string) string {
	taskType := n.ExtractTaskType(entry)
	if taskType == "" {
		return entry
	}
	loc := n.taskTypeTarget.FindStringIndex(entry)
	if loc == nil {
		return entry
	}
	return entry[:loc[0]] + taskType + entry[loc[1]:]
}

// substitutePriority replaces priority image placeholders with the literal
// priority extracted from the entry.
func (n *Normalizer) substitutePriority(entry string) string {
	priority := n.ExtractPriority(entry)
	if priority == "" {
		return entry
	}
	return n.priorityTarget.ReplaceAllLiteralString(entry, priority)
}

// unwrapSummaries replaces every https link whose visible text is not an
// issue key with the visible text alone. RE2 has no lookahead, so the
// issue-key guard is applied per match instead of inside the pattern.
func (n *Normalizer) unwrapSummaries(entry string) string {
	return n.summaryLink.ReplaceAllStringFunc(entry, func(match string) string {
		sub := n.summaryLink.FindStringSubmatch(match)
		if sub == nil || strings.HasPrefix(sub[1], "EW-") {
			return match
		}
		return sub[1]
	})
}

// normalizeKeyLinks rewrites key links on any atlassian.net domain to the
// canonical link on the configured company domain. Idempotent by
// construction, and it repairs domain drift in the source data.
func (n *Normalizer) normalizeKeyLinks(entry string) string {
	return n.keyLink.ReplaceAllString(entry, "[${1}](https://"+n.company+".atlassian.net/browse/${1})")
}

// normalizeSpacing collapses runs of two or more whitespace characters to a
// single space.
func (n *Normalizer) normalizeSpacing(entry string) string {
	return n.multiSpace.ReplaceAllString(entry, " ")
}

// restoreKeyURL ensures the first issue key in the entry carries its
// canonical browse link. When the canonical link is already present the
// entry is returned unchanged.
func (n *Normalizer) restoreKeyURL(entry string) string {
	token := n.keyToken.FindString(entry)
	if token == "" {
		return entry
	}
	key := strings.Trim(token, "[]")
	canonical := n.canonicalKeyLink(key)
	if strings.Contains(entry, canonical) {
		return entry
	}
	return strings.ReplaceAll(entry, "["+key+"]", canonical)
}

func (n *Normalizer) canonicalKeyLink(key string) string {
	return fmt.Sprintf("[%s](https://%s.atlassian.net/browse/%s)", key, n.company, key)
}

// JoinEntries collapses logical rows that span physical lines (every
// [EW-n] ... Fixed span) to one normalized line each, substituting the
// processed row back into the text (first textual match per span). This
// catches malformed rows the line-based state machine cannot bound.
func (n *Normalizer) JoinEntries(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}
	return n.joinEntries(text), nil
}

func (n *Normalizer) joinEntries(text string) string {
	for _, row := range n.rowSpan.FindAllString(text, -1) {
		processed := n.processEntry(strings.ReplaceAll(row, "\n", " "))
		text = strings.Replace(text, row, processed, 1)
	}
	return text
}

// SimplifyIssueCounters replaces verbose counter links of the form
// [<n> issue(s)](https://...) with the bare counter text.
func (n *Normalizer) SimplifyIssueCounters(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}
	return n.simplifyIssueCounters(text), nil
}

func (n *Normalizer) simplifyIssueCounters(text string) string {
	return n.issueCounter.ReplaceAllString(text, "${1}")
}

// FinalizeEntries re-applies key-URL restoration to every line carrying an
// issue key, so no key escapes the pipeline without its canonical link.
func (n *Normalizer) FinalizeEntries(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}
	return n.finalizeEntries(text), nil
}

func (n *Normalizer) finalizeEntries(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if n.keyToken.MatchString(line) {
			lines[i] = n.restoreKeyURL(line)
		}
	}
	return strings.Join(lines, "\n")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r[0:1]) + strings.ToLower(string(r[1:]))
}
