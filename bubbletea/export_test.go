package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// BlockFocus exports the focused block index for testing.
func BlockFocus(m Model) int {
	return m.blockFocus
}

// Blocks exports the block list for testing.
func Blocks(m Model) []MessageBlock {
	return m.blocks
}
