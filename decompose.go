package chatmd

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Decompose splits answer (or reasoning) text into an ordered sequence of
// prose and fenced code segments. It is pure: identical input always yields
// an identical sequence.
//
// A fence that opens but never closes produces a trailing CodeSegment with
// Complete set to false. Inside a fence, a line whose backtick run is at
// least as long as the opener's closes it, so a segment that has been closed
// never reopens as the text grows. Content lines lose up to as many leading
// spaces as the opening fence was indented.
func Decompose(text string) []Segment {
	var segs []Segment
	proseStart := 0
	for pos := 0; pos < len(text); {
		line, next, terminated := lineAt(text, pos)
		open, ok := parseFence(line)
		if !ok {
			pos = next
			continue
		}

		segs = appendProse(segs, trimNewline(text[proseStart:pos]))
		lang := fenceLanguage(line)
		if !terminated {
			return keepCursor(append(segs, CodeSegment{Language: lang}), line)
		}

		closeAt, closeNext, ok := findClosingFence(text, next, open.run)
		if !ok {
			return append(segs, openFence(lang, dedent(text[next:], open.indent)))
		}
		segs = append(segs, CodeSegment{
			Language: lang,
			Body:     dedent(trimNewline(text[next:closeAt]), open.indent),
			Complete: true,
		})
		segs = keepCursor(segs, text[closeAt:closeNext])
		pos = closeNext
		proseStart = pos
	}
	return appendProse(segs, text[proseStart:])
}

// lineAt returns the line starting at pos without its newline, the offset
// of the following line and whether the line was newline-terminated.
func lineAt(text string, pos int) (line string, next int, terminated bool) {
	i := strings.IndexByte(text[pos:], '\n')
	if i < 0 {
		return text[pos:], len(text), false
	}
	return text[pos : pos+i], pos + i + 1, true
}

func findClosingFence(text string, from, run int) (closeAt, next int, ok bool) {
	for pos := from; pos < len(text); {
		line, n, _ := lineAt(text, pos)
		if f, ok := parseFence(line); ok && f.run >= run {
			return pos, n, true
		}
		pos = n
	}
	return 0, 0, false
}

// fence describes a fence line: its indentation and the length of its
// backtick run.
type fence struct {
	indent int
	run    int
}

// parseFence reports whether line starts with the fence marker after at
// most three spaces of indentation.
func parseFence(line string) (fence, bool) {
	line = StripSentinel(line)
	var f fence
	for f.indent < 3 && strings.HasPrefix(line[f.indent:], " ") {
		f.indent++
	}
	rest := line[f.indent:]
	for f.run < len(rest) && rest[f.run] == '`' {
		f.run++
	}
	return f, f.run >= len(Fence)
}

// dedent removes up to n leading spaces from every line of body.
func dedent(body string, n int) string {
	if n == 0 {
		return body
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		for j := 0; j < n && strings.HasPrefix(l, " "); j++ {
			l = l[1:]
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

// fenceLanguage extracts the language tag from an opening fence line.
// Anything that is not part of a plain language word ends the tag.
func fenceLanguage(line string) string {
	info := strings.TrimLeft(strings.TrimSpace(line), "`")
	info = strings.TrimLeft(info, " \t")
	end := 0
	for end < len(info) && isLanguageByte(info[end]) {
		end++
	}
	return info[:end]
}

func isLanguageByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '+', c == '#', c == '-', c == '.':
		return true
	}
	return false
}

// openFence builds the segment for a fence still streaming. A one-line body
// holding a single visible character is a fence whose content has not
// materialized yet; it renders as literal text rather than a code block.
func openFence(lang, body string) Segment {
	if !strings.Contains(body, "\n") {
		visible := strings.TrimSpace(StripSentinel(body))
		if uniseg.GraphemeClusterCount(visible) == 1 {
			return ProseSegment{Text: body}
		}
	}
	return CodeSegment{Language: lang, Body: body}
}

// keepCursor carries a sentinel found on a fence line over as its own
// segment so the live edge stays visible.
func keepCursor(segs []Segment, fenceLine string) []Segment {
	if !strings.Contains(fenceLine, Sentinel) {
		return segs
	}
	return append(segs, ProseSegment{Text: Sentinel})
}

func appendProse(segs []Segment, text string) []Segment {
	if strings.TrimSpace(text) == "" {
		return segs
	}
	return append(segs, ProseSegment{Text: text})
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
