package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Element wraps a single element node.
type Element struct {
	node *html.Node
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return getAttr(e.node, "id")
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing any existing value.
func (e *Element) SetAttr(key, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// FloatAttr parses a numeric attribute, returning fallback when it is
// absent or malformed.
func (e *Element) FloatAttr(key string, fallback float64) float64 {
	v, ok := e.Attr(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

// Value returns the element's value attribute.
func (e *Element) Value() string {
	v, _ := e.Attr("value")
	return v
}

// SetValue sets the element's value attribute.
func (e *Element) SetValue(v string) {
	e.SetAttr("value", v)
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(s string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// ClassName returns the raw class attribute.
func (e *Element) ClassName() string {
	v, _ := e.Attr("class")
	return v
}

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(v string) {
	e.SetAttr("class", v)
}

func (e *Element) classes() []string {
	return strings.Fields(e.ClassName())
}

// HasClass reports whether the element carries the class token.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds a class token if it is not already present.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetClassName(strings.Join(append(e.classes(), name), " "))
}

// RemoveClass removes every occurrence of a class token.
func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	var kept []string
	for _, c := range e.classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetClassName(strings.Join(kept, " "))
}

// Style returns the value of an inline style property.
func (e *Element) Style(prop string) string {
	for _, d := range parseStyle(e.styleAttr()) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets an inline style property, keeping declaration order. An
// empty value removes the property.
func (e *Element) SetStyle(prop, value string) {
	decls := parseStyle(e.styleAttr())
	found := false
	out := decls[:0]
	for _, d := range decls {
		if d.prop == prop {
			found = true
			if value == "" {
				continue
			}
			d.value = value
		}
		out = append(out, d)
	}
	if !found && value != "" {
		out = append(out, declaration{prop: prop, value: value})
	}
	if len(out) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", serializeStyle(out))
}

func (e *Element) styleAttr() string {
	v, _ := e.Attr("style")
	return v
}

type declaration struct {
	prop  string
	value string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: value})
	}
	return decls
}

func serializeStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ") + ";"
}
