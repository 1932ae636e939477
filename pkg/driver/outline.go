package driver

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// PageOutline is a cleaned, truncated view of a page's DOM, kept small
// enough to embed in step results and logs.
type PageOutline struct {
	Title       string
	Description string
	HTML        string
	Truncated   bool
}

// DefaultOutlineLength caps outline size when callers pass zero.
const DefaultOutlineLength = 4000

// Outline parses raw HTML and produces a cleaned outline: scripts, styles,
// and embeds removed, semantic structure and targeting attributes kept.
func Outline(rawHTML string, maxLength int) (*PageOutline, error) {
	if maxLength <= 0 {
		maxLength = DefaultOutlineLength
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	w := &outlineWalker{maxLength: maxLength}
	w.walk(doc, 0)

	return &PageOutline{
		Title:       findMetaTitle(doc),
		Description: findMetaDescription(doc),
		HTML:        w.out.String(),
		Truncated:   w.truncated,
	}, nil
}

type outlineWalker struct {
	out       strings.Builder
	length    int
	maxLength int
	truncated bool
}

func (w *outlineWalker) walk(n *html.Node, depth int) {
	if w.truncated {
		return
	}

	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		w.writeText(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedTag(tag) {
			return
		}
		w.writeElement(n, tag, depth)
		return
	}

	// Document and fragment nodes: descend
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth)
	}
}

func (w *outlineWalker) writeText(data string) {
	text := strings.TrimSpace(data)
	if text == "" {
		return
	}

	if w.length+len(text) > w.maxLength {
		remaining := w.maxLength - w.length
		if remaining > 0 {
			w.out.WriteString(text[:remaining])
		}
		w.out.WriteString("...")
		w.length = w.maxLength
		w.truncated = true
		return
	}

	w.out.WriteString(text)
	w.length += len(text)
}

func (w *outlineWalker) writeElement(n *html.Node, tag string, depth int) {
	if depth > 0 && blockTag(tag) {
		w.out.WriteString("\n")
		w.out.WriteString(strings.Repeat("  ", depth))
	}

	w.out.WriteString("<")
	w.out.WriteString(tag)
	for _, attr := range n.Attr {
		if keepAttribute(tag, attr.Key) {
			fmt.Fprintf(&w.out, " %s=%q", strings.ToLower(attr.Key), attr.Val)
		}
	}
	w.out.WriteString(">")
	w.length += len(tag) + 2

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth+1)
		if w.truncated {
			break
		}
	}

	if !voidTag(tag) {
		if blockTag(tag) {
			w.out.WriteString("\n")
			w.out.WriteString(strings.Repeat("  ", depth))
		}
		fmt.Fprintf(&w.out, "</%s>", tag)
		w.length += len(tag) + 3
	}
}

// skippedTag reports elements removed entirely from the outline.
func skippedTag(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "iframe", "embed", "object", "svg":
		return true
	}
	return false
}

// blockTag reports block-level elements, used for indentation.
func blockTag(tag string) bool {
	switch tag {
	case "div", "p", "section", "article", "header", "footer", "nav", "main",
		"aside", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"table", "tr", "td", "th", "form", "fieldset", "blockquote", "pre":
		return true
	}
	return false
}

// voidTag reports self-closing elements.
func voidTag(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// keepAttribute reports attributes useful for selector targeting.
func keepAttribute(tag, name string) bool {
	name = strings.ToLower(name)

	switch name {
	case "id", "class", "role", "aria-label", "aria-describedby":
		return true
	}

	if strings.HasPrefix(name, "data-") {
		return true
	}

	switch tag {
	case "a":
		return name == "href"
	case "input", "textarea", "select":
		return name == "name" || name == "type" || name == "placeholder" || name == "value"
	case "button":
		return name == "type"
	case "form":
		return name == "action" || name == "method"
	case "img":
		return name == "src" || name == "alt"
	}

	return false
}

// findMetaTitle extracts the document title.
func findMetaTitle(doc *html.Node) string {
	var title string
	var visit func(*html.Node) bool
	visit = func(n *html.Node) bool {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if visit(c) {
				return true
			}
		}
		return false
	}
	visit(doc)
	return title
}

// findMetaDescription extracts the meta description content.
func findMetaDescription(doc *html.Node) string {
	var desc string
	var visit func(*html.Node) bool
	visit = func(n *html.Node) bool {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "meta" {
			var isDesc bool
			var content string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "name":
					if strings.ToLower(attr.Val) == "description" {
						isDesc = true
					}
				case "content":
					content = attr.Val
				}
			}
			if isDesc {
				desc = strings.TrimSpace(content)
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if visit(c) {
				return true
			}
		}
		return false
	}
	visit(doc)
	return desc
}
