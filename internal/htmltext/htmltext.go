// Package htmltext converts message markup into plain text and inspects
// anchors and attributes without building a full DOM.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// FromHTML strips markup from s, decoding entities and turning <br> into a
// line break. Text inside custom elements such as mention tags is kept.
func FromHTML(s string) string {
	if s == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; keep what was read.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}
}

// LineBreaksToSpaces replaces every line terminator with a single space.
func LineBreaksToSpaces(s string) string {
	return lineBreaks.Replace(s)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\u2028", " ", "\u2029", " ")

// Links returns the href of every anchor in s, in document order.
func Links(s string) []string {
	var links []string
	forEachTag(s, func(name string, attrs map[string]string) {
		if name != "a" {
			return
		}
		if href, ok := attrs["href"]; ok {
			links = append(links, href)
		}
	})
	return links
}

// HasAttribute reports whether any element in s carries attr.
func HasAttribute(s, attr string) bool {
	found := false
	forEachTag(s, func(_ string, attrs map[string]string) {
		if _, ok := attrs[attr]; ok {
			found = true
		}
	})
	return found
}

func forEachTag(s string, fn func(name string, attrs map[string]string)) {
	if s == "" {
		return
	}
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		attrs := map[string]string{}
		for hasAttr {
			var k, v []byte
			k, v, hasAttr = z.TagAttr()
			attrs[string(k)] = string(v)
		}
		fn(string(name), attrs)
	}
}
