package feed

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML parses an HTML document.
func ParseHTML(data []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ExtractText collects all text content under a node.
func ExtractText(n *html.Node) string {
	var extract func(*html.Node) string

	extract = func(n *html.Node) string {
		if n.Type == html.TextNode {
			return n.Data
		}
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sb.WriteString(extract(c))
		}
		return sb.String()
	}

	return strings.TrimSpace(extract(n))
}

// FindAll returns all element nodes with the given tag, in document order.
func FindAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var f func(*html.Node)

	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)

	return found
}

// FindAllWithClass returns element nodes with the given tag whose class
// attribute contains the given class.
func FindAllWithClass(n *html.Node, tag, class string) []*html.Node {
	var found []*html.Node
	for _, node := range FindAll(n, tag) {
		if strings.Contains(Attr(node, "class"), class) {
			found = append(found, node)
		}
	}
	return found
}

// Attr returns the value of an attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
