package chatmd

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg   int // User message accent
	Reasoning int // Reasoning block text
	Code      int // Code block gutter and language label
	Math      int // Math runs
	Cursor    int // Live-edge cursor
	Error     int // Error messages
	Muted     int // Status bar, placeholders
	CodeBg    int // Code block background
	Accent    int // Headings, links, focus marker
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Reasoning: 8,
		Code:      8,
		Math:      6,
		Cursor:    7,
		Error:     1,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
	}
}
