package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderEditorPanel wraps the source editor in a styled panel.
func renderEditorPanel(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	style := panelStyle
	if m.activePane == PaneEditor {
		titleStyle = panelTitleStyle
		style = panelActiveStyle
	}

	content := titleStyle.Render("MicroML") + "\n" + m.editor.View()
	return style.Width(width).Height(height).Render(content)
}

// renderTreePanel renders the display surface: a tree, a diagnostic, or
// a hint when nothing has been parsed yet.
func renderTreePanel(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	style := panelStyle
	if m.activePane == PaneTree {
		titleStyle = panelTitleStyle
		style = panelActiveStyle
	}

	title := titleStyle.Render("Syntax Tree")
	var body string
	switch {
	case m.display == nil:
		body = emptyStateStyle.Render("Nothing rendered yet.\n\nPress ctrl+r to parse the editor contents.")
	case m.display.IsDiagnostic():
		title = titleStyle.Render("Syntax Tree") + dimStyle.Render("  error")
		body = m.tree.View()
	default:
		body = m.tree.View()
	}

	return style.Width(width).Height(height).Render(title + "\n" + body)
}

// renderNotice draws a blocking notice centred in the body area.
func renderNotice(msg string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		noticeStyle.Render(msg+"\n\n"+dimStyle.Render("press any key")),
	)
}
