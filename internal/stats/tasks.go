package stats

import (
	"cmp"
	"slices"

	"github.com/julianstephens/aisle/internal/models"
)

// TaskFilter selects tasks. Empty lists match everything; completed tasks
// are dropped unless ShowCompleted is set.
type TaskFilter struct {
	Categories    []models.TaskCategory
	Priorities    []models.TaskPriority
	Statuses      []models.TaskStatus
	ShowCompleted bool
}

func (f TaskFilter) Match(task models.TimelineTask) bool {
	if !f.ShowCompleted && task.Status == models.TaskStatusCompleted {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, task.Category) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, task.Priority) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, task.Status) {
		return false
	}
	return true
}

// FilterTasks keeps the input order.
func FilterTasks(tasks []models.TimelineTask, filter TaskFilter) []models.TimelineTask {
	out := make([]models.TimelineTask, 0, len(tasks))
	for _, task := range tasks {
		if filter.Match(task) {
			out = append(out, task)
		}
	}
	return out
}

type TaskGroup struct {
	Category models.TaskCategory
	Order    int
	Tasks    []models.TimelineTask
}

// GroupTasks buckets tasks by category and orders the buckets by their
// category order. Categories that are disabled or have no entry in
// categories are left out, as are categories without tasks.
func GroupTasks(tasks []models.TimelineTask, categories map[models.TaskCategory]models.CategorySetting) []TaskGroup {
	var groups []TaskGroup
	index := map[models.TaskCategory]int{}

	for _, task := range tasks {
		setting, ok := categories[task.Category]
		if !ok || !setting.IsEnabled {
			continue
		}
		i, seen := index[task.Category]
		if !seen {
			i = len(groups)
			index[task.Category] = i
			groups = append(groups, TaskGroup{Category: task.Category, Order: setting.Order})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}

	slices.SortStableFunc(groups, func(a, b TaskGroup) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return groups
}
