package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/repository"
	"github.com/julianstephens/aisle/internal/stats"
	"github.com/julianstephens/aisle/internal/storage"
	"github.com/julianstephens/aisle/internal/validation"
)

type Tab int

const (
	TabOverview Tab = iota
	TabTimeline
	TabBudget
	TabGuests
	TabVendors
)

var tabTitles = []string{"Overview", "Timeline", "Budget", "Guests", "Vendors"}

func (t Tab) String() string {
	if int(t) < 0 || int(t) >= len(tabTitles) {
		return "Unknown"
	}
	return tabTitles[t]
}

type (
	loadedMsg struct {
		docs        validation.Documents
		firstLaunch bool
	}
	errMsg          struct{ err error }
	watchingMsg     struct{ changes <-chan struct{} }
	storeChangedMsg struct{}
	savedMsg        struct{ status string }
)

type Model struct {
	ctx   context.Context
	store storage.Provider
	repos *repository.Repositories
	now   func() time.Time

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	tab           Tab
	docs          validation.Documents
	overview      stats.Overview
	cursor        int
	showCompleted bool
	loaded        bool
	welcome       bool
	changes       <-chan struct{}
	status        string
	err           error

	width    int
	height   int
	quitting bool
}

func NewModel(ctx context.Context, store storage.Provider) Model {
	return Model{
		ctx:      ctx,
		store:    store,
		repos:    repository.New(store),
		now:      time.Now,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
	}
}

// WithClock replaces the clock used for countdowns and overdue checks.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.watchCmd())
}

func (m Model) loadCmd() tea.Cmd {
	ctx, repos := m.ctx, m.repos
	return func() tea.Msg {
		docs, err := repos.LoadAll(ctx)
		if err != nil {
			return errMsg{err}
		}
		first, err := repos.Onboarding.IsFirstLaunch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{docs: docs, firstLaunch: first}
	}
}

// watchCmd subscribes to external edits when the store supports it.
func (m Model) watchCmd() tea.Cmd {
	w, ok := m.store.(storage.Watcher)
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		changes, err := w.Watch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return watchingMsg{changes: changes}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m Model) completeOnboardingCmd() tea.Cmd {
	ctx, repos := m.ctx, m.repos
	return func() tea.Msg {
		if err := repos.Onboarding.SetOnboardingComplete(ctx, true); err != nil {
			return errMsg{err}
		}
		return savedMsg{status: "Welcome aboard!"}
	}
}

func (m Model) toggleTaskCmd(task models.TimelineTask) tea.Cmd {
	ctx, repos := m.ctx, m.repos
	status := models.TaskStatusCompleted
	if task.Status == models.TaskStatusCompleted {
		status = models.TaskStatusNotStarted
	}
	return func() tea.Msg {
		if err := repos.Timeline.UpdateTaskStatus(ctx, task.ID, status); err != nil {
			return errMsg{err}
		}
		return savedMsg{status: "Marked " + task.Title + " as " + string(status)}
	}
}

// visibleTasks is the timeline list in display order: grouped by enabled
// category, with completed tasks hidden unless toggled on.
func (m Model) visibleTasks() []models.TimelineTask {
	if m.docs.Timeline == nil {
		return nil
	}
	filtered := stats.FilterTasks(m.docs.Timeline.Tasks, stats.TaskFilter{ShowCompleted: m.showCompleted})
	var out []models.TimelineTask
	for _, group := range stats.GroupTasks(filtered, m.docs.Timeline.Categories) {
		out = append(out, group.Tasks...)
	}
	return out
}
