package testutil

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// PageItem is what a browser sees of one task <li> on the task page.
type PageItem struct {
	Text    string
	Style   string
	Checked bool
	Buttons []string
	Toggle  string // action of the checkbox form
	Delete  string // action of the delete form
}

// ParseHTML parses a rendered page.
func ParseHTML(t *testing.T, body io.Reader) *html.Node {
	t.Helper()
	doc, err := html.Parse(body)
	require.NoError(t, err)
	return doc
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Walk calls fn for n and every descendant, depth first.
func Walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// ElementByID returns the first element with the given id, or nil.
func ElementByID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(doc, func(n *html.Node) {
		if v, ok := Attr(n, "id"); ok && v == id && found == nil {
			found = n
		}
	})
	return found
}

// TextOf returns the trimmed text content of n.
func TextOf(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(b.String())
}

// HasSubmitButton reports whether doc contains a button[type=submit].
func HasSubmitButton(doc *html.Node) bool {
	var found bool
	Walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "button" {
			if typ, _ := Attr(n, "type"); typ == "submit" {
				found = true
			}
		}
	})
	return found
}

// PageItems returns the entries of #task-list in document order.
func PageItems(t *testing.T, doc *html.Node) []PageItem {
	t.Helper()
	list := ElementByID(doc, "task-list")
	require.NotNil(t, list, "task list container missing")

	var out []PageItem
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		var it PageItem
		it.Style, _ = Attr(li, "style")
		var own strings.Builder
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				own.WriteString(c.Data)
			}
		}
		it.Text = strings.TrimSpace(own.String())
		Walk(li, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			switch n.Data {
			case "input":
				if typ, _ := Attr(n, "type"); typ == "checkbox" {
					_, it.Checked = Attr(n, "checked")
				}
			case "button":
				it.Buttons = append(it.Buttons, TextOf(n))
			case "form":
				action, _ := Attr(n, "action")
				if strings.HasSuffix(action, "/toggle") {
					it.Toggle = action
				} else if strings.HasSuffix(action, "/delete") {
					it.Delete = action
				}
			}
		})
		out = append(out, it)
	}
	return out
}

// FindItem returns the item whose text equals text.
func FindItem(items []PageItem, text string) (PageItem, bool) {
	for _, it := range items {
		if it.Text == text {
			return it, true
		}
	}
	return PageItem{}, false
}
