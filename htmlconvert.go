package docnorm

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// htmlConverter abstracts HTML to Markdown conversion.
type htmlConverter interface {
	ConvertHTML(ctx context.Context, content string) (string, error)
}

// HTMLConverter converts exported HTML pages to Markdown. The wiki export
// footer (div#footer[role=contentinfo]) is stripped before conversion so
// boilerplate never reaches the cleaning pipeline.
type HTMLConverter struct {
	converter *md.Converter
}

// NewHTMLConverter creates an HTMLConverter with GitHub-flavored Markdown
// output.
func NewHTMLConverter() *HTMLConverter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &HTMLConverter{converter: converter}
}

// ConvertHTML converts one HTML document to Markdown.
func (c *HTMLConverter) ConvertHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	markdown, err := c.converter.ConvertString(removeExportFooter(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return markdown, nil
}

// removeExportFooter drops the export footer node from the HTML. Content
// that fails to parse is returned unchanged; the converter gets to decide
// what to do with it.
func removeExportFooter(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	footer := findFooter(doc)
	if footer == nil {
		return content
	}
	footer.Parent.RemoveChild(footer)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return content
	}
	return sb.String()
}

// findFooter locates the div with id "footer" and role "contentinfo".
func findFooter(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" && hasAttr(n, "id", "footer") && hasAttr(n, "role", "contentinfo") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFooter(c); found != nil {
			return found
		}
	}
	return nil
}

func hasAttr(n *html.Node, key, value string) bool {
	for _, a := range n.Attr {
		if a.Key == key && a.Val == value {
			return true
		}
	}
	return false
}
