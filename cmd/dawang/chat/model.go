// Package chat provides the interactive TUI for the 다왕이 advisory chatbot.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"dawang/cmd/dawang/ui"
	"dawang/internal/catalog"
	"dawang/internal/emotion"
	"dawang/internal/funnel"
	"dawang/internal/logging"
	"dawang/internal/pipeline"
	"dawang/internal/selection"
)

// Model is the Bubble Tea model. It renders whichever funnel step is current.
type Model struct {
	cfg    Config
	styles ui.Styles

	width  int
	height int
	ready  bool

	ctx    context.Context
	cancel context.CancelFunc

	sel    *selection.Store
	funnel *funnel.Funnel
	timer  *emotion.Timer
	loader *catalog.Loader

	// Selection steps
	list      list.Model
	loading   bool
	loadErr   error
	loadSeq   int
	statusMsg string

	// Chat step
	session  *pipeline.Session
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
}

// InitChat builds the model. Selection and Timer are created when Config leaves them nil.
func InitChat(cfg Config) Model {
	if cfg.Selection == nil {
		cfg.Selection = selection.NewStore()
	}
	if cfg.Timer == nil {
		cfg.Timer = emotion.NewTimer(emotion.Options{})
	}
	if cfg.PlaceholderInterval <= 0 {
		cfg.PlaceholderInterval = pipeline.DefaultPlaceholderInterval
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 500

	vp := viewport.New(80, 20)
	vp.SetContent("")

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.Title

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		cfg:      cfg,
		styles:   styles,
		ctx:      ctx,
		cancel:   cancel,
		sel:      cfg.Selection,
		funnel:   funnel.New(cfg.Selection, cfg.Timer),
		timer:    cfg.Timer,
		loader:   catalog.NewLoader(cfg.Service, cfg.UseAvailable),
		list:     l,
		input:    ti,
		viewport: vp,
		spinner:  sp,
		renderer: newRenderer(styles, 80),
	}
}

func newRenderer(styles ui.Styles, width int) *glamour.TermRenderer {
	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// Init fires the landing screen's entry hooks off the event loop.
func (m Model) Init() tea.Cmd {
	f := m.funnel
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		func() tea.Msg {
			f.Open()
			return nil
		},
	)
}

// Shutdown closes the live session and cancels in-flight requests.
func (m Model) Shutdown() {
	if m.session != nil {
		m.session.Close()
	}
	m.cancel()
	m.timer.Stop()
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case moodMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case placeholderTickMsg:
		if m.session == nil || m.session.ID() != msg.sessionID || m.session.Closed() {
			return m, nil
		}
		m.input.Placeholder = m.session.AdvancePlaceholder()
		return m, m.tickPlaceholder()

	case replyMsg:
		msg.session.Complete(msg.result)
		if msg.session != m.session {
			logging.UI("dropped reply for abandoned session %s", msg.session.ID())
			return m, nil
		}
		m.refreshTranscript()
		return m, m.input.Focus()

	case programsMsg:
		if msg.seq != m.loadSeq || m.funnel.Current() != funnel.ProgramSelect {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		items := make([]list.Item, 0, len(msg.programs))
		for _, p := range msg.programs {
			items = append(items, programItem{p: p})
		}
		m.list.SetItems(items)
		return m, nil
	}

	if m.funnel.Current() == funnel.ChatSession {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Shutdown()
		return m, tea.Quit
	case "esc":
		if m.funnel.Back() {
			return m.enterStep()
		}
		return m, nil
	case "ctrl+g":
		if m.funnel.JumpToChat() {
			return m.enterStep()
		}
		return m, nil
	}

	switch m.funnel.Current() {
	case funnel.Start:
		if msg.Type == tea.KeyEnter {
			m.funnel.Begin()
			return m.enterStep()
		}
		return m, nil
	case funnel.TypeSelect, funnel.DepartmentSelect, funnel.ProgramSelect:
		return m.handleSelectKey(msg)
	case funnel.ChatSession:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.funnel.Current()

	if step == funnel.ProgramSelect && m.loading {
		return m, nil
	}
	if step == funnel.ProgramSelect && m.loadErr != nil && msg.String() == "r" {
		return m.enterStep()
	}

	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	moved := false
	switch item := m.list.SelectedItem().(type) {
	case typeItem:
		moved = m.funnel.ChooseType(item.pt)
		if !moved {
			m.statusMsg = item.pt.Label + "은(는) 아직 준비 중이다왕!"
		}
	case departmentItem:
		moved = m.funnel.ChooseDepartment(item.name)
	case programItem:
		moved = m.funnel.ChooseProgram(item.p)
	}
	if !moved {
		return m, nil
	}
	return m.enterStep()
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}

	switch msg.String() {
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Input and quick replies are disabled until the outstanding reply lands.
	if m.session.Busy() {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.send(m.input.Value())
	case "alt+1", "alt+2", "alt+3", "alt+4":
		idx := int(msg.Runes[0] - '1')
		replies := m.session.QuickReplies()
		if idx >= 0 && idx < len(replies) {
			return m.send(replies[idx].Question)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// send starts one exchange. The network call runs as a command; its result
// comes back as a replyMsg tagged with this session.
func (m Model) send(text string) (tea.Model, tea.Cmd) {
	turn, ok := m.session.Begin(text)
	if !ok {
		return m, nil
	}
	m.input.SetValue(m.session.Input())
	m.input.Blur()
	m.refreshTranscript()

	session, ctx := m.session, m.ctx
	return m, func() tea.Msg {
		return replyMsg{session: session, result: turn.Exchange(ctx)}
	}
}

// enterStep prepares the widgets for the step the funnel just moved to.
func (m Model) enterStep() (tea.Model, tea.Cmd) {
	step := m.funnel.Current()
	logging.UI("entering step %s", step)
	m.statusMsg = ""

	if step != funnel.ChatSession && m.session != nil {
		m.session.Close()
		m.session = nil
		m.timer.ResetToNeutral()
	}

	switch step {
	case funnel.TypeSelect:
		types := catalog.ProgramTypes()
		items := make([]list.Item, 0, len(types))
		for _, pt := range types {
			items = append(items, typeItem{pt: pt})
		}
		m.list.Title = "어떤 다전공이 궁금하냐왕?"
		m.list.SetItems(items)
		m.list.Select(0)

	case funnel.DepartmentSelect:
		depts := catalog.Departments()
		items := make([]list.Item, 0, len(depts))
		for _, d := range depts {
			items = append(items, departmentItem{name: d})
		}
		m.list.Title = "소속 학과를 알려달라왕!"
		m.list.SetItems(items)
		m.list.Select(0)

	case funnel.ProgramSelect:
		m.list.Title = m.sel.Snapshot().Department + " 학생이 들을 수 있는 융합전공이다왕"
		m.list.SetItems(nil)
		m.loading = true
		m.loadErr = nil
		m.loadSeq++
		seq, loader, ctx, dept := m.loadSeq, m.loader, m.ctx, m.sel.Snapshot().Department
		return m, func() tea.Msg {
			programs, err := loader.Load(ctx, dept)
			return programsMsg{seq: seq, programs: programs, err: err}
		}

	case funnel.ChatSession:
		if m.session != nil {
			m.session.Close()
		}
		m.session = pipeline.New(pipeline.Deps{
			Answerer:    m.cfg.Service,
			Selection:   m.sel,
			Mood:        m.timer,
			ProgramName: m.funnel.ProgramName(),
		})
		m.input.SetValue("")
		m.input.Placeholder = m.session.Placeholder()
		m.input.Focus()
		m.refreshTranscript()
		return m, tea.Batch(textinput.Blink, m.tickPlaceholder())
	}
	return m, nil
}

func (m Model) tickPlaceholder() tea.Cmd {
	id := m.session.ID()
	return tea.Tick(m.cfg.PlaceholderInterval, func(time.Time) tea.Msg {
		return placeholderTickMsg{sessionID: id}
	})
}

func (m *Model) resize() {
	if m.width < 10 {
		m.width = 10
	}
	if m.height < 10 {
		m.height = 10
	}
	headerH, footerH := 2, 4
	body := m.height - headerH - footerH
	if body < 3 {
		body = 3
	}
	m.list.SetSize(m.width-4, body)
	m.viewport.Width = m.width - 4
	m.viewport.Height = body - 2
	m.input.Width = m.width - 8
	m.renderer = newRenderer(m.styles, m.width-10)
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	if m.session == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}
