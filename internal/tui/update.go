package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/aisle/internal/logger"
	"github.com/julianstephens/aisle/internal/stats"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case loadedMsg:
		m.docs = msg.docs
		m.overview = stats.Summarize(msg.docs.Wedding, msg.docs.Budget, msg.docs.Timeline, msg.docs.Guests, msg.docs.Vendors, m.now())
		if !m.loaded {
			m.welcome = msg.firstLaunch
			m.loaded = true
		}
		m.err = nil
		m.clampCursor()
		m.refresh()
		return m, nil

	case watchingMsg:
		m.changes = msg.changes
		return m, waitForChange(m.changes)

	case storeChangedMsg:
		logger.Debug("Store changed on disk, reloading")
		return m, tea.Batch(m.loadCmd(), waitForChange(m.changes))

	case savedMsg:
		m.status = msg.status
		return m, m.loadCmd()

	case errMsg:
		logger.Error("Dashboard error", "error", msg.err)
		m.err = msg.err
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.welcome {
		if key.Matches(msg, m.keys.Continue) {
			m.welcome = false
			m.refresh()
			return m, m.completeOnboardingCmd()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.switchTab((m.tab + 1) % Tab(len(tabTitles)))
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.switchTab((m.tab + Tab(len(tabTitles)) - 1) % Tab(len(tabTitles)))
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.status = ""
		return m, m.loadCmd()
	}

	if m.tab == TabTimeline {
		tasks := m.visibleTasks()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(tasks)-1 {
				m.cursor++
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.ShowCompleted):
			m.showCompleted = !m.showCompleted
			m.clampCursor()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if len(tasks) == 0 {
				return m, nil
			}
			return m, m.toggleTaskCmd(tasks[m.cursor])
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) switchTab(tab Tab) {
	m.tab = tab
	m.status = ""
	m.refresh()
	m.viewport.GotoTop()
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// resize fits the viewport between the header and the help line.
func (m *Model) resize() {
	header := lipgloss.Height(m.viewHeader())
	footer := lipgloss.Height(m.viewFooter())
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-header-footer)
}

func (m *Model) refresh() {
	m.viewport.SetContent(docStyle.Render(m.renderTab()))
}
