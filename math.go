package chatmd

import "strings"

// mathDelimiters lists the paired delimiters SplitMath recognizes, longest
// first so "$$" wins over "$".
var mathDelimiters = []struct {
	open, close string
	display     bool
}{
	{"$$", "$$", true},
	{`\[`, `\]`, true},
	{`\(`, `\)`, false},
}

// SplitMath separates math runs out of a prose run for the renderer.
// Unclosed delimiters stay prose, so a formula that is still streaming
// renders as text until its closing delimiter arrives. Inline code spans
// are skipped.
func SplitMath(prose string) []Segment {
	var segs []Segment
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, ProseSegment{Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(prose); {
		rest := prose[i:]

		if rest[0] == '`' {
			n := codeSpanLen(rest)
			text.WriteString(rest[:n])
			i += n
			continue
		}
		if strings.HasPrefix(rest, `\$`) {
			text.WriteString(`\$`)
			i += 2
			continue
		}

		if d, body, n, ok := matchPaired(rest); ok {
			flush()
			segs = append(segs, MathSegment{Text: strings.TrimSpace(body), Display: d})
			i += n
			continue
		}
		if body, n, ok := matchInlineDollar(rest); ok {
			flush()
			segs = append(segs, MathSegment{Text: body})
			i += n
			continue
		}
		// An unmatched "$$" is prose as a whole.
		if strings.HasPrefix(rest, "$$") {
			text.WriteString("$$")
			i += 2
			continue
		}

		text.WriteByte(rest[0])
		i++
	}
	flush()
	return segs
}

func matchPaired(s string) (display bool, body string, n int, ok bool) {
	for _, d := range mathDelimiters {
		if !strings.HasPrefix(s, d.open) {
			continue
		}
		end := strings.Index(s[len(d.open):], d.close)
		if end < 0 || strings.TrimSpace(s[len(d.open):len(d.open)+end]) == "" {
			return false, "", 0, false
		}
		body = s[len(d.open) : len(d.open)+end]
		return d.display, body, len(d.open) + end + len(d.close), true
	}
	return false, "", 0, false
}

// matchInlineDollar matches $...$ on a single line. The opening dollar must
// be followed by a non-space, the closing one preceded by a non-space and
// not followed by a digit, so prices like "$5 and $10" stay prose.
func matchInlineDollar(s string) (body string, n int, ok bool) {
	if len(s) < 3 || s[0] != '$' || s[1] == '$' || isSpace(s[1]) {
		return "", 0, false
	}
	for j := 2; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return "", 0, false
		case '$':
			if isSpace(s[j-1]) || j+1 < len(s) && isDigit(s[j+1]) {
				return "", 0, false
			}
			return s[1:j], j + 1, true
		}
	}
	return "", 0, false
}

// codeSpanLen returns the length of the inline code span at the start of s,
// or the length of the backtick run when the span is unclosed.
func codeSpanLen(s string) int {
	run := 0
	for run < len(s) && s[run] == '`' {
		run++
	}
	end := strings.Index(s[run:], s[:run])
	if end < 0 {
		return run
	}
	return run + end + run
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
