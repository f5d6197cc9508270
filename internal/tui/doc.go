// Package tui implements the astview terminal user interface.
//
// The user types MicroML into the editor pane and presses ctrl+r; the
// syntax tree returned by the parse service appears in the tree pane.
// Built with Charmbracelet's BubbleTea, Lipgloss, and Bubbles libraries.
//
// Component architecture:
//
//	model.go   — root model, message routing, Init/Update/View
//	theme.go   — centralized color + style definitions
//	header.go  — top bar with endpoint + tree summary, footer hints
//	panels.go  — editor pane, tree pane, blocking notice
//	helpers.go — clamping, short IDs
//
// Parse results arrive as messages, so Update is the only writer of the
// tree pane. When several requests overlap, the last one to arrive wins.
package tui
