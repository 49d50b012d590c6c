package docnorm

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// titleMarkdown is the parser used for title extraction. Parsing only;
// nothing is rendered.
var titleMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ExtractTitle returns the text of the first level-1 heading in the
// Markdown, or "" when the document has none. The document is parsed rather
// than pattern-matched so setext headings and inline formatting inside the
// heading are handled correctly.
func ExtractTitle(markdown string) string {
	source := []byte(markdown)
	doc := titleMarkdown.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(string(heading.Text(source)))
		return ast.WalkStop, nil
	})

	return title
}
