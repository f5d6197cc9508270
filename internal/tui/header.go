package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/astview/internal/render"
	"github.com/Mr-Dark-debug/astview/pkg/jsonutil"
)

const maxEndpointWidth = 48

// renderHeader produces the top bar:
//
//	ASTVIEW  |  http://localhost:5000/parse  |  7 nodes, depth 3  |  4 parses
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("ASTVIEW")
	sep := headerSepStyle.Render(" │ ")

	var parts []string
	parts = append(parts, brand)

	parts = append(parts, sep)
	parts = append(parts, headerMetaStyle.Render(jsonutil.TruncateString(m.endpoint, maxEndpointWidth)))

	if m.display != nil && !m.display.IsDiagnostic() {
		nodes, depth := treeShape(m.display)
		parts = append(parts, sep)
		parts = append(parts, headerMetaStyle.Render(
			fmt.Sprintf("%d nodes, depth %d", nodes, depth)))
	}

	if m.coord != nil {
		if st := m.coord.Stats(); st.Triggers > 0 {
			parts = append(parts, sep)
			parts = append(parts, headerMetaStyle.Render(
				fmt.Sprintf("%d parses, %d failed", st.Triggers, st.Failed)))
		}
	}

	content := strings.Join(parts, "")

	return headerBarStyle.Width(m.width).Render(content)
}

// treeShape counts node elements and their nesting depth.
func treeShape(e *render.Element) (nodes, depth int) {
	if e == nil || e.Class != render.ClassNode {
		return 0, 0
	}
	nodes = 1
	maxChild := 0
	for _, c := range e.ChildNodes() {
		n, d := treeShape(c)
		nodes += n
		if d > maxChild {
			maxChild = d
		}
	}
	return nodes, maxChild + 1
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	status := m.statusMsg
	if m.inFlight > 0 {
		status = m.spinner.View() + " " + status
		if m.inFlight > 1 {
			status += fmt.Sprintf(" (%d in flight)", m.inFlight)
		}
	}
	if status != "" {
		if m.statusErr {
			left = statusErrorStyle.Render(status)
		} else {
			left = statusStyle.Render(status)
		}
	}

	switch {
	case m.notice != "":
		right = renderHints([]hint{
			{"any key", "dismiss"},
		})
	case m.activePane == PaneTree:
		right = renderHints([]hint{
			{"↑↓", "scroll"},
			{"ctrl+r", "parse"},
			{"tab", "editor"},
			{"ctrl+c", "quit"},
		})
	default:
		right = renderHints([]hint{
			{"ctrl+r", "parse"},
			{"tab", "tree"},
			{"ctrl+c", "quit"},
		})
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
