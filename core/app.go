package core

import (
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/widgets"
)

// Screen is a modal pushed over the tab body. Update returns the next
// screen state, a command, and pop=true when the screen is done.
type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// PaneKeyHandler lets a tab intercept pane select/focus keys before the
// registry-driven actions run.
type PaneKeyHandler interface {
	HandlePaneKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd)
	ActivePaneTitle() string
}

type TabInitializer interface {
	InitTab(m *Model) tea.Cmd
}

// HoldInterrupter is implemented by tabs hosting press-and-hold
// controls. The model calls it whenever a modal opens or the tab loses
// the foreground, so no repeat timer keeps stepping a control the user
// can no longer see.
type HoldInterrupter interface {
	InterruptHolds()
}

type Model struct {
	width     int
	height    int
	tabs      []Tab
	activeTab int
	screens   ScreenStack
	keys      *KeyRegistry
	commands  *CommandRegistry
	status    string
	statusErr bool
	quitting  bool

	DB                  *sql.DB
	OpenCommandModal    func(m *Model, scope string) Screen
	OpenLenderPicker    func(m *Model) Screen
	OpenJumpPickerModal func(m *Model, targets []JumpTarget) Screen
}

func NewModel(tabs []Tab, keys *KeyRegistry, commands *CommandRegistry, db *sql.DB) Model {
	m := Model{
		tabs:      tabs,
		keys:      keys,
		commands:  commands,
		DB:        db,
		status:    "Ready",
		activeTab: 0,
		width:     100,
		height:    32,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, t := range m.tabs {
		if initTab, ok := t.(TabInitializer); ok {
			if cmd := initTab.InitTab(&m); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

// TextInputActive reports whether a modal screen currently captures
// keystrokes. Controls use it to stop routing arrow keys while the
// user is typing.
func (m Model) TextInputActive() bool {
	return m.screens.Top() != nil
}

func (m *Model) SwitchTab(index int) {
	if index < 0 || index >= len(m.tabs) || index == m.activeTab {
		return
	}
	m.interruptActiveHolds()
	m.activeTab = index
}

// PushScreen opens a modal. Any live hold session on the active tab
// ends first: its release event would otherwise be swallowed by the
// modal and the repeat would resume on close.
func (m *Model) PushScreen(s Screen) {
	if s == nil {
		return
	}
	m.interruptActiveHolds()
	m.screens.Push(s)
}

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

func (m *Model) interruptActiveHolds() {
	if len(m.tabs) == 0 {
		return
	}
	if h, ok := m.tabs[m.activeTab].(HoldInterrupter); ok {
		h.InterruptHolds()
	}
}
