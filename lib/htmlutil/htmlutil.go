package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates all the text nodes under a node. Unlike
// goquery.Selection.Text it works on a single *html.Node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FindById returns the first element with the given id, the selection is
// empty if there is none.
func FindById(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
}

// FindByText returns the first element matching `selector` whose text
// matches `pattern`, the selection is empty if there is none.
func FindByText(doc *goquery.Document, selector string, pattern *regexp.Regexp) *goquery.Selection {
	return doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, n := range s.Nodes {
			if pattern.MatchString(GetText(n)) {
				return true
			}
		}
		return false
	}).First()
}

// ResolveAttr reads a url valued attribute (href, action, src, ...) and
// resolves it against the url of the page it came from.
func ResolveAttr(sel *goquery.Selection, attr string, base *url.URL) (*url.URL, bool, error) {
	value, ok := sel.Attr(attr)
	if !ok {
		return nil, false, nil
	}
	ref, err := url.Parse(value)
	if err != nil {
		return nil, true, err
	}
	if base == nil {
		return ref, true, nil
	}
	return base.ResolveReference(ref), true, nil
}
