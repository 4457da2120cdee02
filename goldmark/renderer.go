package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// doc renders one parsed document. Every method returns the text of the
// node it was given, without a trailing newline.
type doc struct {
	*styles
	src []byte
}

// blocks renders the block children of parent separated by blank lines.
func (d *doc) blocks(parent ast.Node, width int) string {
	var parts []string
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if s := d.block(c, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (d *doc) block(node ast.Node, width int) string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(d.inline(n), width)
	case *ast.Heading:
		style := d.subheading
		if n.Level <= 2 {
			style = d.heading
		}
		return wrap(style.Render(d.inline(n)), width)
	case *ast.FencedCodeBlock:
		// Only reachable for fences nested in lists or quotes.
		code := d.code(n)
		if lang := string(n.Language(d.src)); lang != "" {
			code = d.muted.Render(lang) + "\n" + code
		}
		return code
	case *ast.CodeBlock:
		return d.code(n)
	case *ast.List:
		return d.list(n, width, 0)
	case *ast.Blockquote:
		return d.quote(n, width)
	case *extast.Table:
		return d.table(n)
	case *ast.ThematicBreak:
		return d.muted.Render(strings.Repeat("─", min(width, 40)))
	case *ast.HTMLBlock:
		return strings.Join(d.lines(n), "\n")
	default:
		return d.blocks(node, width)
	}
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// lines returns the raw source lines of a block node.
func (d *doc) lines(n ast.Node) []string {
	segs := n.Lines()
	out := make([]string, segs.Len())
	for i := range out {
		seg := segs.At(i)
		out[i] = strings.TrimRight(string(seg.Value(d.src)), "\n")
	}
	return out
}

// code draws code lines behind a gutter at full width.
func (d *doc) code(n ast.Node) string {
	gutter := d.muted.Render("│") + " "
	lines := d.lines(n)
	for i, line := range lines {
		lines[i] = gutter + line
	}
	return strings.Join(lines, "\n")
}

// quote renders the quoted blocks two columns narrower behind a bar.
func (d *doc) quote(n *ast.Blockquote, width int) string {
	bar := d.muted.Render("│") + " "
	lines := strings.Split(d.blocks(n, max(width-2, 10)), "\n")
	for i, line := range lines {
		lines[i] = bar + line
	}
	return strings.Join(lines, "\n")
}

func (d *doc) list(l *ast.List, width, depth int) string {
	var out []string
	num := l.Start
	indent := strings.Repeat("  ", depth)
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}

		var content strings.Builder
		emit := func() {
			if content.Len() == 0 {
				return
			}
			out = append(out, listItem(indent+marker, content.String(), width))
			content.Reset()
			marker = strings.Repeat(" ", len(marker))
		}
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch child := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				content.WriteString(d.inline(child))
			case *ast.List:
				emit()
				out = append(out, d.list(child, width, depth+1))
			default:
				content.WriteString(d.block(child, width))
			}
		}
		emit()
	}
	return strings.Join(out, "\n")
}

// listItem wraps content after prefix, aligning continuation lines under
// the first character after the marker.
func listItem(prefix, content string, width int) string {
	lines := strings.Split(wrap(content, max(width-len(prefix), 10)), "\n")
	pad := strings.Repeat(" ", len(prefix))
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + line
		} else {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// table lays cells out in columns padded to the widest cell, measured with
// lipgloss.Width so styling does not count.
func (d *doc) table(t *extast.Table) string {
	var rows [][]string
	header := -1
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		if _, ok := row.(*extast.TableHeader); ok {
			header = len(rows)
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			s := d.inline(cell)
			if header == len(rows) {
				s = d.bold.Render(s)
			}
			cells = append(cells, s)
		}
		rows = append(rows, cells)
	}

	var widths []int
	for _, cells := range rows {
		for i, c := range cells {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	sep := " " + d.muted.Render("│") + " "
	var out []string
	for ri, cells := range rows {
		for i, c := range cells {
			cells[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		out = append(out, strings.TrimRight(strings.Join(cells, sep), " "))
		if ri == header {
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("─", w)
			}
			out = append(out, d.muted.Render(strings.Join(rule, "─┼─")))
		}
	}
	return strings.Join(out, "\n")
}

// inline returns the styled inline content of node's children.
func (d *doc) inline(node ast.Node) string {
	var b strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		d.writeInline(&b, c)
	}
	return b.String()
}

func (d *doc) writeInline(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(d.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		style := d.italic
		if n.Level > 1 {
			style = d.bold
		}
		b.WriteString(style.Render(d.inline(n)))
	case *extast.Strikethrough:
		b.WriteString(d.strike.Render(d.inline(n)))
	case *extast.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	case *ast.CodeSpan:
		b.WriteString(d.codeSpan.Render(d.inline(n)))
	case *ast.Link:
		b.WriteString(d.link.Render(d.inline(n)) + " " + d.muted.Render("("+string(n.Destination)+")"))
	case *ast.Image:
		b.WriteString(d.link.Render(d.inline(n)) + " " + d.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		b.WriteString(d.link.Render(string(n.URL(d.src))))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(d.src))
		}
	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			d.writeInline(b, c)
		}
	}
}
