package chatmd

// Segment is a sealed interface representing one renderable run of text.
// The unexported marker method prevents external implementations.
// Segments are immutable; every buffer snapshot yields a fresh sequence.
type Segment interface {
	segment()
}

// ProseSegment is markdown text. Math delimiters inside it are left for the
// renderer.
type ProseSegment struct {
	Text string
}

func (ProseSegment) segment() {}

// MathSegment is a math run extracted from prose by SplitMath.
type MathSegment struct {
	Text    string
	Display bool // $$...$$ or \[...\] rather than inline.
}

func (MathSegment) segment() {}

// CodeSegment is a fenced code region. Complete is false only for a trailing
// fence that has not been closed yet.
type CodeSegment struct {
	Language string
	Body     string
	Complete bool
}

func (CodeSegment) segment() {}

// CursorSegment marks the live edge of an in-progress stream.
type CursorSegment struct{}

func (CursorSegment) segment() {}

// Interface compliance checks.
var (
	_ Segment = ProseSegment{}
	_ Segment = MathSegment{}
	_ Segment = CodeSegment{}
	_ Segment = CursorSegment{}
)
