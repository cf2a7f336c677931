// Package markup provides the region document a headless trimmer renders
// into. It uses golang.org/x/net/html as the underlying parser and
// serializer, and exposes just enough of the DOM to address regions by id
// and write their style, class and text.
package markup

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document with an id index.
type Document struct {
	root *html.Node
	body *html.Node
	byID map[string]*html.Node
}

// Parse parses an HTML document from a string.
func Parse(content string) (*Document, error) {
	return ParseReader(strings.NewReader(content))
}

// ParseReader parses an HTML document from an io.Reader.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	d := &Document{root: root, byID: make(map[string]*html.Node)}
	d.index(root)
	return d, nil
}

func (d *Document) index(n *html.Node) {
	if n.Type == html.ElementNode {
		if n.DataAtom == atom.Body && d.body == nil {
			d.body = n
		}
		if id := getAttr(n, "id"); id != "" {
			if _, dup := d.byID[id]; !dup {
				d.byID[id] = n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.index(c)
	}
}

// Element returns the element with the given id.
func (d *Document) Element(id string) (*Element, bool) {
	n, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &Element{node: n}, true
}

// Body returns the document's body element.
func (d *Document) Body() *Element {
	return &Element{node: d.body}
}

// Require returns an error naming every id that is missing from the document.
func (d *Document) Require(ids ...string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := d.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &MissingRegionError{IDs: missing}
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the rendered document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// MissingRegionError reports region ids a template does not declare.
type MissingRegionError struct {
	IDs []string
}

func (e *MissingRegionError) Error() string {
	return "markup: missing regions: " + strings.Join(e.IDs, ", ")
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
