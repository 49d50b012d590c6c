package docnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// categoryListing matches one "| Categories: ..." segment in a summarizer
// results listing.
var categoryListing = regexp.MustCompile(`\| Categories: (.+?)\n`)

// ExtractCategories collects the unique categories from a summarizer
// results listing (one "Filename: x | Categories: a, b, c" line per
// document). Order of first appearance is preserved.
func ExtractCategories(listing string) ([]string, error) {
	if !utf8.ValidString(listing) {
		return nil, ErrInvalidInput
	}

	seen := make(map[string]bool)
	var unique []string
	for _, match := range categoryListing.FindAllStringSubmatch(listing, -1) {
		for _, category := range strings.Split(match[1], ", ") {
			category = strings.TrimSpace(category)
			if category == "" || seen[category] {
				continue
			}
			seen[category] = true
			unique = append(unique, category)
		}
	}
	return unique, nil
}
