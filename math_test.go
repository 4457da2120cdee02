package chatmd_test

import (
	"testing"

	"github.com/fwojciec/chatmd"
	"github.com/stretchr/testify/assert"
)

func TestSplitMath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []chatmd.Segment
	}{
		{
			name: "no math",
			in:   "plain text",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "plain text"}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "inline dollar",
			in:   "area is $\\pi r^2$ here",
			want: []chatmd.Segment{
				chatmd.ProseSegment{Text: "area is "},
				chatmd.MathSegment{Text: "\\pi r^2"},
				chatmd.ProseSegment{Text: " here"},
			},
		},
		{
			name: "display dollars",
			in:   "$$\nE = mc^2\n$$",
			want: []chatmd.Segment{chatmd.MathSegment{Text: "E = mc^2", Display: true}},
		},
		{
			name: "bracket display",
			in:   "see \\[a+b\\]",
			want: []chatmd.Segment{
				chatmd.ProseSegment{Text: "see "},
				chatmd.MathSegment{Text: "a+b", Display: true},
			},
		},
		{
			name: "paren inline",
			in:   "\\(x\\) is small",
			want: []chatmd.Segment{
				chatmd.MathSegment{Text: "x"},
				chatmd.ProseSegment{Text: " is small"},
			},
		},
		{
			name: "prices are not math",
			in:   "costs $5 and $10",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "costs $5 and $10"}},
		},
		{
			name: "unclosed display stays prose",
			in:   "$$ x + ",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "$$ x + "}},
		},
		{
			name: "unclosed display does not reopen as inline",
			in:   "cost $$x$ y",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "cost $$x$ y"}},
		},
		{
			name: "escaped dollar",
			in:   "\\$x$",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "\\$x$"}},
		},
		{
			name: "dollar inside code span",
			in:   "run `echo $HOME$` now",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "run `echo $HOME$` now"}},
		},
		{
			name: "inline math does not cross lines",
			in:   "$a\nb$",
			want: []chatmd.Segment{chatmd.ProseSegment{Text: "$a\nb$"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chatmd.SplitMath(tt.in))
		})
	}
}
