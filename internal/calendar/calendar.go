// Package calendar exports the wedding day and task due dates as iCalendar events.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/logger"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

const (
	productID   = "-//julianstephens//aisle//EN"
	uidDomain   = "@" + constants.AppName
	weddingUID  = "wedding" + uidDomain
	defaultName = "Wedding planning"
)

type Options struct {
	// Name is written as X-WR-CALNAME; empty uses a default.
	Name string
	// IncludeCompleted adds completed tasks, which are skipped otherwise.
	IncludeCompleted bool
	// Filter, when set, restricts the exported tasks.
	Filter *stats.TaskFilter
	// Location decides which calendar day the wedding timestamp falls on; nil means time.Local.
	Location *time.Location
	// Now stamps DTSTAMP; zero means time.Now.
	Now time.Time
}

var priorities = map[models.TaskPriority]string{
	models.TaskPriorityHigh:   "1",
	models.TaskPriorityMedium: "5",
	models.TaskPriorityLow:    "9",
}

// Build creates a calendar with one all-day event for the wedding and one per
// task due date. Tasks whose due date cannot be parsed are skipped.
func Build(wedding *models.WeddingDetails, timeline *models.TimelineDetails, opts Options) (*ical.Calendar, int) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	name := opts.Name
	if name == "" {
		name = defaultName
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	count := 0
	if wedding != nil && wedding.WeddingDate != "" {
		if date, err := stats.ParseWeddingDate(wedding.WeddingDate, loc); err == nil {
			local := date.In(loc)
			day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
			event := cal.AddEvent(weddingUID)
			event.SetDtStampTime(now)
			event.SetSummary("Wedding day")
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			count++
		} else {
			logger.Warn("Skipping unparseable wedding date", "date", wedding.WeddingDate, "error", err)
		}
	}

	if timeline == nil {
		return cal, count
	}

	tasks := timeline.Tasks
	if opts.Filter != nil {
		filter := *opts.Filter
		filter.ShowCompleted = filter.ShowCompleted || opts.IncludeCompleted
		tasks = stats.FilterTasks(tasks, filter)
	}

	for _, task := range tasks {
		if task.Status == models.TaskStatusCompleted && !opts.IncludeCompleted {
			continue
		}
		due, err := stats.ParseDueDate(task.DueDate)
		if err != nil {
			logger.Warn("Skipping task with unparseable due date", "task", task.ID, "due", task.DueDate)
			continue
		}
		day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)

		event := cal.AddEvent("task-" + task.ID + uidDomain)
		event.SetDtStampTime(now)
		event.SetSummary(task.Title)
		if desc := taskDescription(task); desc != "" {
			event.SetDescription(desc)
		}
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetProperty(ical.ComponentPropertyCategories, string(task.Category))
		if p, ok := priorities[task.Priority]; ok {
			event.SetProperty(ical.ComponentPropertyPriority, p)
		}
		count++
	}

	return cal, count
}

func taskDescription(task models.TimelineTask) string {
	var parts []string
	if task.Description != "" {
		parts = append(parts, task.Description)
	}
	parts = append(parts, "Status: "+string(task.Status))
	if len(task.AssignedTo) > 0 {
		parts = append(parts, "Assigned to: "+strings.Join(task.AssignedTo, ", "))
	}
	if task.Notes != "" {
		parts = append(parts, "Notes: "+task.Notes)
	}
	return strings.Join(parts, "\n")
}

// Export writes the calendar built from the documents to w and returns the number of events.
func Export(w io.Writer, wedding *models.WeddingDetails, timeline *models.TimelineDetails, opts Options) (int, error) {
	cal, count := Build(wedding, timeline, opts)
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return 0, fmt.Errorf("failed to write calendar: %w", err)
	}
	return count, nil
}
