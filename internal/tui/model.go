// Package tui provides the BubbleTea-based dialog stack preview.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/modalstack/internal/adapter/output"
	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/display"
	"github.com/jmylchreest/modalstack/internal/interop"
	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/theme"
)

// previewContent is opened when the registry holds no content.
const previewContent = "preview.Dialog"

// Model is the preview model. It renders the manager's stack as layered
// boxes and drives the manager from key presses.
type Model struct {
	cfg     *config.Config
	manager *display.Manager
	router  *interop.EscapeRouter

	help help.Model
	keys KeyMap

	// State
	dialogs  []model.Dialog
	cursor   int
	contents []string
	opened   int
	showHelp bool
	width    int
	height   int

	// Status message
	statusMsg string
	statusErr bool

	changes <-chan struct{}
}

// New creates a preview model for manager. Escape presses are routed
// through router, which should have manager as its active receiver.
func New(cfg *config.Config, manager *display.Manager, router *interop.EscapeRouter) Model {
	contents := manager.Registry().Names()
	if len(contents) == 0 {
		contents = []string{previewContent}
	}

	// The subscription lives as long as the manager; Stop closes it.
	changes, _ := manager.Subscribe()

	return Model{
		cfg:      cfg,
		manager:  manager,
		router:   router,
		help:     help.New(),
		keys:     DefaultKeyMap(),
		dialogs:  manager.Dialogs(),
		contents: contents,
		changes:  changes,
	}
}

type changedMsg struct{}

type stoppedMsg struct{}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Init initializes the preview.
func (m Model) Init() tea.Cmd {
	return m.watchForChanges
}

// watchForChanges blocks until the manager signals a change.
func (m Model) watchForChanges() tea.Msg {
	if m.changes == nil {
		return nil
	}
	if _, ok := <-m.changes; !ok {
		return stoppedMsg{}
	}
	return changedMsg{}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case changedMsg:
		m.refresh()
		return m, m.watchForChanges

	case stoppedMsg:
		return m, tea.Quit

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied stack to clipboard", false)
	}

	return m, nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// refresh re-reads the stack and keeps the cursor in range.
func (m *Model) refresh() {
	m.dialogs = m.manager.Dialogs()
	if m.cursor >= len(m.dialogs) {
		m.cursor = max(len(m.dialogs)-1, 0)
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.dialogs)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.open(model.EffectDim)

	case key.Matches(msg, m.keys.OpenBlurred):
		return m.open(model.EffectBlur)

	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Escape):
		cur, ok := m.manager.CurrentDialog()
		if !ok {
			return m, status("No current dialog", true)
		}
		if !m.router.HandleEscapeKey(cur.ID) {
			return m, status("Escape routing is not active", true)
		}
		return m, nil

	case key.Matches(msg, m.keys.CloseCursor):
		if m.cursor < len(m.dialogs) {
			m.manager.Close(m.dialogs[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.CloseAll):
		m.manager.CloseAll()
		return m, nil

	case key.Matches(msg, m.keys.Resize):
		cur, ok := m.manager.CurrentDialog()
		if !ok {
			return m, status("No current dialog", true)
		}
		m.manager.Resize(display.TargetCurrent, nextSize(cur.Size), "")
		return m, nil

	case key.Matches(msg, m.keys.Recolor):
		cur, ok := m.manager.CurrentDialog()
		if !ok {
			return m, status("No current dialog", true)
		}
		m.manager.Recolor(display.TargetCurrent, next(model.Colors(), cur.Color), "")
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		if m.manager.Theme() == model.ThemeDark {
			m.manager.SetTheme(model.ThemeLight)
		} else {
			m.manager.SetTheme(model.ThemeDark)
		}
		return m, nil

	case key.Matches(msg, m.keys.Animation):
		m.manager.SetAnimation(next(model.Animations(), m.manager.Animation()))
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		var buf strings.Builder
		if err := output.NewYAMLFormatter(output.FormatterOptions{}).Format(&buf, model.Summaries(m.manager.Dialogs())); err != nil {
			return m, status(err.Error(), true)
		}
		return m, m.copyToClipboard(buf.String())
	}

	return m, nil
}

// open opens the next preview dialog with effect.
func (m Model) open(effect model.BackgroundEffect) (tea.Model, tea.Cmd) {
	opts := m.manager.DefaultOptions()
	opts.BackgroundEffect = effect
	opts.Content = m.contents[m.opened%len(m.contents)]
	opts.Parameters = map[string]any{"n": m.opened + 1}
	m.opened++

	m.manager.Open(opts)
	return m, nil
}

// nextSize cycles through the fixed sizes, skipping Custom.
func nextSize(s model.Size) model.Size {
	sizes := slices.DeleteFunc(model.Sizes(), func(v model.Size) bool { return v == model.SizeCustom })
	return next(sizes, s)
}

func next[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, m.cfg)}
	}
}

// View renders the preview.
func (m Model) View() string {
	t := m.manager.Theme()
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	var b strings.Builder
	b.WriteString(headerStyle.Render("modalstack preview"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  theme %s · animation %s · %d dialogs",
		t, m.manager.Animation(), len(m.dialogs))))
	b.WriteString("\n\n")

	if len(m.dialogs) == 0 {
		b.WriteString(mutedStyle.Render("No dialogs. Press o to open one."))
		b.WriteString("\n")
	}

	current, hasCurrent := m.manager.CurrentDialog()
	for i, d := range m.dialogs {
		isCurrent := hasCurrent && d.ID == current.ID
		b.WriteString(m.renderDialog(t, d, i, isCurrent))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		b.WriteString(statusStyle.Render(m.statusMsg))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

// renderDialog renders one layer of the stack, indented by its depth.
func (m Model) renderDialog(t model.Theme, d model.Dialog, depth int, isCurrent bool) string {
	var lines []string

	if d.OwnsBackdrop() {
		lines = append(lines, theme.BackdropStyle(t, d.BackgroundEffect).
			Render(strings.Repeat("░", theme.TerminalWidth(d)/2)+" "+d.BackgroundEffect.String()+" backdrop"))
	}

	title := d.Content
	if title == "" {
		title = "(no content)"
	}
	if d.ShowCloseButton {
		closeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.manager.CloseButtonColor()))
		title += "  " + closeStyle.Render("✕")
	}

	body := []string{
		title,
		fmt.Sprintf("%s · %s · %s", d.Size, d.Color, d.Summary().State()),
		"opened " + humanize.Time(d.CreatedAt),
	}
	if d.Size == model.SizeCustom && d.CustomSize != "" {
		body = append(body, d.CustomSize)
	}
	lines = append(lines, theme.TerminalStyle(t, d).Render(strings.Join(body, "\n")))

	marker := "  "
	if depth == m.cursor {
		marker = "> "
	}
	label := d.ID[len(d.ID)-6:]
	if isCurrent {
		label += " current"
	}
	lines = append([]string{marker + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(label)}, lines...)

	return lipgloss.NewStyle().MarginLeft(depth * 2).Render(strings.Join(lines, "\n"))
}

// RunOptions configures the preview.
type RunOptions struct {
	Config  *config.Config
	Manager *display.Manager
	Router  *interop.EscapeRouter
}

// Run starts the preview and blocks until the user quits.
func Run(opts RunOptions) error {
	m := New(opts.Config, opts.Manager, opts.Router)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
