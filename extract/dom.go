package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// selector is the minimal CSS-ish matcher the cascade needs: exactly one of
// tag, class or id.
type selector struct {
	tag   string
	class string
	id    string
}

func (s selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch {
	case s.tag != "":
		return n.Data == s.tag
	case s.id != "":
		return attr(n, "id") == s.id
	case s.class != "":
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == s.class {
				return true
			}
		}
	}
	return false
}

func findBySelector(n *html.Node, s selector) *html.Node {
	if s.matches(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBySelector(c, s); found != nil {
			return found
		}
	}
	return nil
}

// stripBoilerplate removes navigation, header, footer and similar regions
// from the tree in place.
func stripBoilerplate(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && boilerplateTags[c.Data] {
			n.RemoveChild(c)
			continue
		}
		stripBoilerplate(c)
	}
}

func documentTitle(doc *html.Node) string {
	node := findBySelector(doc, selector{tag: "title"})
	if node == nil || node.FirstChild == nil {
		return ""
	}
	return strings.TrimSpace(node.FirstChild.Data)
}

func renderNode(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
