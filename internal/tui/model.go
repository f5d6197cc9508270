package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/astview/internal/coordinator"
	"github.com/Mr-Dark-debug/astview/internal/render"
	"github.com/Mr-Dark-debug/astview/internal/surface"
	"github.com/Mr-Dark-debug/astview/pkg/timeutil"
)

// ────────────────────────────────────────────────────────────
// Pane focuses
// ────────────────────────────────────────────────────────────

// Pane represents which UI pane currently has keyboard focus.
type Pane int

const (
	PaneEditor Pane = iota
	PaneTree
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the astview TUI.
type Model struct {
	coord    *coordinator.Coordinator
	endpoint string

	// Components
	editor  textarea.Model
	tree    viewport.Model
	spinner spinner.Model

	// Display surface contents
	display *render.Element
	last    *coordinator.Result

	// UI state
	activePane Pane
	width      int
	height     int
	inFlight   int
	notice     string

	// Status
	statusMsg string
	statusErr bool
}

// NewModel creates a TUI model that sends parse requests through coord.
// endpoint is only shown in the header.
func NewModel(coord *coordinator.Coordinator, endpoint string) Model {
	ta := textarea.New()
	ta.Placeholder = "let x = 1 in x + 2"
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		coord:     coord,
		endpoint:  endpoint,
		editor:    ta,
		tree:      viewport.New(0, 0),
		spinner:   sp,
		statusMsg: "Type MicroML code and press ctrl+r",
	}
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

// parseDoneMsg carries what one trigger left on its surface.
type parseDoneMsg struct {
	result  coordinator.Result
	element *render.Element
	notice  string
	at      time.Time
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// parse runs one trigger off the UI loop. The coordinator writes into a
// private buffer, whose contents come back as a parseDoneMsg.
func (m Model) parse(source string) tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		buf := surface.NewBuffer()
		res := coord.Trigger(context.Background(), source, buf, buf)
		return parseDoneMsg{
			result:  res,
			element: buf.Current(),
			notice:  buf.Notice(),
			at:      time.Now(),
		}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case parseDoneMsg:
		return m.applyResult(msg), nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// ── Blocking notice ──

	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	// ── Global ──

	switch key {
	case "ctrl+r":
		m.inFlight++
		m.statusMsg = "Parsing..."
		m.statusErr = false
		cmds := []tea.Cmd{m.parse(m.editor.Value())}
		if m.inFlight == 1 {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case "tab", "shift+tab":
		m.setPane((m.activePane + 1) % 2)
		return m, nil

	case "esc":
		if m.activePane == PaneTree {
			m.setPane(PaneEditor)
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to the focused component.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activePane {
	case PaneTree:
		m.tree, cmd = m.tree.Update(msg)
	default:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) setPane(p Pane) {
	m.activePane = p
	if p == PaneEditor {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
}

// applyResult mounts a finished trigger. Whatever arrives last replaces
// the tree pane wholesale.
func (m Model) applyResult(msg parseDoneMsg) Model {
	if m.inFlight > 0 {
		m.inFlight--
	}

	res := msg.result
	m.last = &res

	switch res.Outcome {
	case coordinator.OutcomeEmpty:
		m.notice = msg.notice
		m.statusMsg = "Nothing to parse"
		m.statusErr = false
		return m

	case coordinator.OutcomeFailed:
		m.statusMsg = fmt.Sprintf("Failed after %s  %s  req %s",
			timeutil.FormatDuration(res.Elapsed), timeutil.FormatClock(msg.at), shortID(res.RequestID, 8))
		m.statusErr = true

	default:
		m.statusMsg = fmt.Sprintf("Rendered %d nodes in %s  %s",
			res.Nodes, timeutil.FormatDuration(res.Elapsed), timeutil.FormatClock(msg.at))
		m.statusErr = false
	}

	if msg.element != nil {
		m.display = msg.element
		m.refreshTree()
	}
	return m
}

// ────────────────────────────────────────────────────────────
// Layout
// ────────────────────────────────────────────────────────────

// paneSizes splits the body between editor and tree.
func (m Model) paneSizes() (editorWidth, treeWidth, bodyHeight int) {
	bodyHeight = maxInt(m.height-2, 3) // header + footer
	if m.width < 60 {
		return m.width, m.width, bodyHeight
	}
	editorWidth = clamp(m.width*40/100, 24, m.width-24)
	return editorWidth, m.width - editorWidth, bodyHeight
}

func (m *Model) layout() {
	editorWidth, treeWidth, bodyHeight := m.paneSizes()

	// panel chrome: top border + title line, horizontal padding
	m.editor.SetWidth(maxInt(editorWidth-4, 1))
	m.editor.SetHeight(maxInt(bodyHeight-3, 1))

	m.tree.Width = maxInt(treeWidth-4, 1)
	m.tree.Height = maxInt(bodyHeight-3, 1)
	m.refreshTree()
}

func (m *Model) refreshTree() {
	if m.display == nil {
		return
	}
	m.tree.SetContent(strings.Join(render.Lines(m.display, treeTheme), "\n"))
	m.tree.GotoTop()
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	editorWidth, treeWidth, bodyHeight := m.paneSizes()

	var body string
	switch {
	case m.notice != "":
		body = renderNotice(m.notice, m.width, bodyHeight)
	case m.width < 60:
		// Responsive: only the focused pane on narrow terminals
		if m.activePane == PaneTree {
			body = renderTreePanel(&m, treeWidth, bodyHeight)
		} else {
			body = renderEditorPanel(&m, editorWidth, bodyHeight)
		}
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			renderEditorPanel(&m, editorWidth, bodyHeight),
			renderTreePanel(&m, treeWidth, bodyHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
