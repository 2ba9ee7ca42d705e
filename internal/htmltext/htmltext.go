// Package htmltext extracts readable text from HTML documents so they
// can be annotated like plain text.
package htmltext

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements never contribute text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

// block elements end the current text block.
var block = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Td: true, atom.Th: true, atom.Tr: true,
	atom.Article: true, atom.Section: true, atom.Header: true, atom.Footer: true,
	atom.Title: true, atom.Dt: true, atom.Dd: true, atom.Figcaption: true,
}

// Blocks parses r and returns the text of each block element with
// whitespace collapsed. Empty blocks are dropped.
func Blocks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if text := strings.Join(strings.Fields(cur.String()), " "); text != "" {
			out = append(out, text)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipped[n.DataAtom] {
				return
			}
			if block[n.DataAtom] {
				flush()
				defer flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	flush()
	return out, nil
}

// Text returns the blocks of r separated by blank lines.
func Text(r io.Reader) (string, error) {
	blocks, err := Blocks(r)
	if err != nil {
		return "", err
	}
	return strings.Join(blocks, "\n\n"), nil
}

// String is Text for an in-memory document.
func String(s string) (string, error) {
	return Text(strings.NewReader(s))
}
