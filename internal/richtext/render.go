// Package richtext renders server-supplied markdown (the AI summary) for the
// terminal through an allow-listed token stream. The text is untrusted, so
// rendering walks a parsed AST and emits only known node kinds; raw HTML is
// dropped entirely, never passed through.
package richtext

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	h1Style     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("81"))
	h2Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	h3Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	italicStyle = lipgloss.NewStyle().Italic(true)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const minWrapWidth = 20

// Render converts markdown to styled terminal text wrapped to width.
func Render(markdown string, width int) string {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	source := []byte(markdown)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []string
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if rendered := renderBlock(child, source, width, 0); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(node ast.Node, source []byte, width, depth int) string {
	switch n := node.(type) {
	case *ast.Heading:
		return headingStyle(n.Level).Render(inlineText(n, source))
	case *ast.Paragraph, *ast.TextBlock:
		return wordwrap.String(inlineText(node, source), width)
	case *ast.List:
		return renderList(n, source, width, depth)
	case *ast.Blockquote:
		var inner []string
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if rendered := renderBlock(child, source, width-2, depth); rendered != "" {
				inner = append(inner, rendered)
			}
		}
		return indentLines(strings.Join(inner, "\n"), "│ ")
	case *ast.FencedCodeBlock:
		return indentLines(literalLines(n, source), "    ")
	case *ast.CodeBlock:
		return indentLines(literalLines(n, source), "    ")
	case *ast.ThematicBreak:
		return ruleStyle.Render(strings.Repeat("─", width))
	case *ast.HTMLBlock:
		// Untrusted markup is dropped, not echoed.
		return ""
	default:
		return ""
	}
}

func renderList(list *ast.List, source []byte, width, depth int) string {
	indent := strings.Repeat("  ", depth)
	itemWidth := width - len(indent) - 3
	if itemWidth < minWrapWidth {
		itemWidth = minWrapWidth
	}

	var lines []string
	index := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := indent + "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%s%d. ", indent, index)
			index++
		}
		pad := strings.Repeat(" ", lipgloss.Width(marker))

		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				// Nested lists carry their own indentation.
				if rendered := renderList(nested, source, width, depth+1); rendered != "" {
					lines = append(lines, strings.Split(rendered, "\n")...)
					first = false
				}
				continue
			}
			rendered := renderBlock(child, source, itemWidth, depth)
			if rendered == "" {
				continue
			}
			for _, line := range strings.Split(rendered, "\n") {
				if first {
					lines = append(lines, marker+line)
					first = false
					continue
				}
				lines = append(lines, pad+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// inlineText flattens a block node's inline children into a styled string.
// Only emphasis, strong, code spans, links (label only) and breaks are
// honored; raw HTML spans vanish.
func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		writeInline(&b, child, source)
	}
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, node ast.Node, source []byte) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		inner := inlineChildren(n, source)
		if n.Level >= 2 {
			b.WriteString(boldStyle.Render(inner))
		} else {
			b.WriteString(italicStyle.Render(inner))
		}
	case *ast.CodeSpan:
		b.WriteString(inlineChildren(n, source))
	case *ast.Link:
		b.WriteString(inlineChildren(n, source))
	case *ast.AutoLink:
		b.Write(n.Label(source))
	case *ast.RawHTML:
		// dropped
	default:
		b.WriteString(inlineChildren(node, source))
	}
}

func inlineChildren(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		writeInline(&b, child, source)
	}
	return b.String()
}

func headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return h1Style
	case 2:
		return h2Style
	default:
		return h3Style
	}
}

func literalLines(node ast.Node, source []byte) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
