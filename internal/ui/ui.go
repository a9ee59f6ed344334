package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DashboardView ViewState = iota
	ManagerView
	ConfirmView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	userID       string
	registry     *services.Registry
	engine       *tasks.StatusEngine
	composer     *tasks.Composer
	width        int
	height       int
	statusList   list.Model
	statuses     []tasks.PlatformStatus
	statusErr    error
	selected     models.Platform
	compose      textarea.Model
	visibility   models.Visibility
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	record       *models.PostRecord
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, userID string, registry *services.Registry, engine *tasks.StatusEngine, composer *tasks.Composer) *Model {
	return &Model{
		ctx:      ctx,
		view:     DashboardView,
		userID:   userID,
		registry: registry,
		engine:   engine,
		composer: composer,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by resolving every platform's connection state.
func (m *Model) Init() tea.Cmd {
	return m.fetchStatuses()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.statusList.Width() == 0 {
			m.statusList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case ManagerView:
			return m.handleManagerKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case statusesResolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.statuses = msg.statuses
		items := make([]list.Item, len(msg.statuses))
		for i, status := range msg.statuses {
			items[i] = statusItem{status: status}
		}
		m.statusList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.statusList.Title = "Connected Platforms"
		m.statusList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case publishDoneMsg:
		m.record = msg.record
		m.err = msg.err
		m.view = ResultView
		return m, nil

	case disconnectDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultView
			return m, nil
		}
		m.view = DashboardView
		return m, m.fetchStatuses()
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case DashboardView:
		return m.renderDashboard()
	case ManagerView:
		return m.renderManager()
	case ConfirmView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchStatuses()
	case "enter":
		if item, ok := m.selectedStatus(); ok {
			m.selected = item.status.Platform
			m.openComposer()
			return m, textarea.Blink
		}
	case "d":
		if item, ok := m.selectedStatus(); ok && item.status.Connected() {
			m.selected = item.status.Platform
			m.view = ConfirmView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.statusList, cmd = m.statusList.Update(msg)
	return m, cmd
}

func (m *Model) handleManagerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = DashboardView
		return m, nil
	case "tab":
		if m.selected == models.LinkedIn {
			m.toggleVisibility()
			return m, nil
		}
	case "ctrl+s":
		if m.compose.Value() != "" {
			return m, m.publish()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = DashboardView
		return m, nil
	case "y":
		return m, m.disconnect()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = DashboardView
		m.record = nil
		m.err = nil
		return m, m.fetchStatuses()
	}
	return m, nil
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case DashboardView:
		m.statusList, cmd = m.statusList.Update(msg)
	case ManagerView:
		m.compose, cmd = m.compose.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedStatus() (statusItem, bool) {
	selected := m.statusList.SelectedItem()
	if selected == nil {
		return statusItem{}, false
	}
	item, ok := selected.(statusItem)
	return item, ok
}

func (m *Model) openComposer() {
	ta := textarea.New()
	ta.Placeholder = "What do you want to post?"
	ta.SetWidth(max(m.width-8, 40))
	ta.SetHeight(6)
	ta.Focus()
	m.compose = ta
	m.visibility = models.VisibilityPublic
	m.view = ManagerView
}

func (m *Model) toggleVisibility() {
	if m.visibility == models.VisibilityPublic {
		m.visibility = models.VisibilityConnections
	} else {
		m.visibility = models.VisibilityPublic
	}
}

func (m *Model) fetchStatuses() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		statuses, err := m.engine.CheckAll(m.ctx, m.userID, m.progressChan)
		m.statuses = statuses
		m.statusErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return statusesResolvedMsg{statuses: m.statuses, err: m.statusErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return statusesResolvedMsg{statuses: m.statuses, err: m.statusErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) publish() tea.Cmd {
	draft := &models.Draft{
		Platform: m.selected,
		Content:  m.compose.Value(),
	}
	if m.selected == models.LinkedIn {
		draft.Visibility = m.visibility
	}

	return func() tea.Msg {
		record, err := m.composer.Publish(m.ctx, m.userID, draft, nil)
		return publishDoneMsg{record: record, err: err}
	}
}

func (m *Model) disconnect() tea.Cmd {
	platform := m.selected
	return func() tea.Msg {
		connector, err := m.registry.Get(platform)
		if err != nil {
			return disconnectDoneMsg{platform: platform, err: err}
		}
		if err := m.engine.Forget(platform); err != nil {
			return disconnectDoneMsg{platform: platform, err: err}
		}
		return disconnectDoneMsg{platform: platform, err: connector.Disconnect(m.ctx, m.userID)}
	}
}

func (m *Model) renderDashboard() string {
	if len(m.statuses) == 0 {
		title := styles.title.Render("Checking platforms...")
		return fmt.Sprintf("%s\n\n%s", title, m.progress.Message)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.disconnect, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.statusList.View(), helpView)
}

func (m *Model) renderManager() string {
	title := styles.title.Render(fmt.Sprintf("Compose for %s", m.selected.DisplayName()))

	counter := m.renderCounter()

	var visibility string
	if m.selected == models.LinkedIn {
		visibility = fmt.Sprintf("\nVisibility: %s (tab to toggle)", m.visibility)
	}

	helpKeys := []key.Binding{m.keys.post, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s%s\n%s\n\n%s", title, m.compose.View(), counter, visibility, m.renderRecent(), helpView)
}

func (m *Model) renderCounter() string {
	limit := m.selected.CharLimit()
	if limit == 0 {
		return fmt.Sprintf("%d characters", len([]rune(m.compose.Value())))
	}

	remaining := limit - len([]rune(m.compose.Value()))
	text := fmt.Sprintf("%d characters remaining", remaining)
	switch {
	case remaining < 0:
		return styles.err.Render(text)
	case remaining <= 20:
		return styles.warn.Render(text)
	default:
		return text
	}
}

func (m *Model) renderRecent() string {
	recent := m.composer.Recent()
	if len(recent) == 0 {
		return ""
	}

	out := "\n" + styles.title.Render("Recent posts")
	for i, record := range recent {
		if i >= 5 {
			break
		}
		content := []rune(record.Content)
		if len(content) > 40 {
			content = append(content[:40], '…')
		}
		out += fmt.Sprintf("\n  %s %s — %s", styles.ok.Render("✓"), record.Platform.DisplayName(), string(content))
	}
	return out
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Disconnect %s?", m.selected.DisplayName()))
	info := "\nThe account link is removed on the backend and locally.\n"

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	if m.record == nil {
		return styles.err.Render("No result available\n\nPress r to go back, q to quit")
	}

	title := styles.ok.Render(fmt.Sprintf("✓ Posted to %s", m.record.Platform.DisplayName()))
	info := ""
	if m.record.ID != "" {
		info += fmt.Sprintf("\nPost ID: %s", m.record.ID)
	}
	if m.record.URL != "" {
		info += fmt.Sprintf("\nURL: %s", m.record.URL)
	}
	if m.record.ScheduledFor != "" {
		info += fmt.Sprintf("\nScheduled for: %s", m.record.ScheduledFor)
	}

	helpKeys := []key.Binding{m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
