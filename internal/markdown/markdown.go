// Package markdown inspects generated Markdown with Goldmark so report output
// can be verified structurally (headings and GFM tables) rather than by string
// matching.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is an ATX or setext heading.
type Heading struct {
	Level int
	Text  string
}

// Table describes a parsed GFM table.
type Table struct {
	Columns      int
	Rows         int // body rows, excluding the header
	RightAligned []int
}

// Outline is the structural summary of a document.
type Outline struct {
	Headings []Heading
	Tables   []Table
}

func newParser() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Table))
}

// Inspect parses src and returns its headings and tables in document order.
func Inspect(src []byte) (Outline, error) {
	root := newParser().Parser().Parse(text.NewReader(src))

	var out Outline
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			out.Headings = append(out.Headings, Heading{Level: node.Level, Text: nodeText(node, src)})
			return gmast.WalkSkipChildren, nil
		case *east.Table:
			out.Tables = append(out.Tables, describeTable(node))
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return out, err
}

// CountTables returns the number of GFM tables in src.
func CountTables(src []byte) (int, error) {
	outline, err := Inspect(src)
	if err != nil {
		return 0, err
	}
	return len(outline.Tables), nil
}

func describeTable(node *east.Table) Table {
	t := Table{Columns: len(node.Alignments)}
	for i, a := range node.Alignments {
		if a == east.AlignRight {
			t.RightAligned = append(t.RightAligned, i)
		}
	}
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.TableRow); ok {
			t.Rows++
		}
	}
	return t
}

func nodeText(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	var collect func(gmast.Node)
	collect = func(node gmast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *gmast.Text:
				buf.Write(t.Segment.Value(src))
			case *gmast.String:
				buf.Write(t.Value)
			default:
				collect(c)
			}
		}
	}
	collect(n)
	return buf.String()
}
