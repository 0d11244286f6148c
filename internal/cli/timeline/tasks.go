package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

type TimelineListCmd struct {
	Category      []string `short:"c" help:"Only these categories (comma-separated)."`
	Priority      []string `short:"p" help:"Only these priorities (comma-separated)."`
	Status        []string `short:"s" help:"Only these statuses (comma-separated)."`
	ShowCompleted bool     `help:"Include completed tasks." name:"show-completed"`
	ShowIDs       bool     `help:"Show task IDs." name:"show-ids"`
}

// Filter converts the flags into a task filter.
func (c *TimelineListCmd) Filter() (stats.TaskFilter, error) {
	return BuildFilter(c.Category, c.Priority, c.Status, c.ShowCompleted)
}

// BuildFilter parses filter flag values.
func BuildFilter(categories, priorities, statuses []string, showCompleted bool) (stats.TaskFilter, error) {
	filter := stats.TaskFilter{ShowCompleted: showCompleted}
	for _, s := range categories {
		v, err := models.ParseTaskCategory(s)
		if err != nil {
			return filter, err
		}
		filter.Categories = append(filter.Categories, v)
	}
	for _, s := range priorities {
		v, err := models.ParseTaskPriority(s)
		if err != nil {
			return filter, err
		}
		filter.Priorities = append(filter.Priorities, v)
	}
	for _, s := range statuses {
		v, err := models.ParseTaskStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, v)
		if v == models.TaskStatusCompleted {
			filter.ShowCompleted = true
		}
	}
	return filter, nil
}

func (c *TimelineListCmd) Run(ctx *cli.Context) error {
	filter, err := c.Filter()
	if err != nil {
		return err
	}

	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load timeline: %w", err)
	}
	if details == nil || len(details.Tasks) == 0 {
		fmt.Fprintln(ctx.Out, "No tasks found")
		return nil
	}

	now := ctx.Time()
	summary := stats.Timeline(details.Tasks, now)
	fmt.Fprintf(ctx.Out, "Timeline: %d/%d completed (%d%%), %d overdue\n",
		summary.Completed, summary.Total, summary.CompletionPercentage, summary.Overdue)

	groups := stats.GroupTasks(stats.FilterTasks(details.Tasks, filter), details.Categories)
	if len(groups) == 0 {
		fmt.Fprintln(ctx.Out, "\nNo tasks match the filter")
		return nil
	}

	for _, group := range groups {
		fmt.Fprintf(ctx.Out, "\n%s:\n", group.Category)
		for _, task := range group.Tasks {
			idStr := ""
			if c.ShowIDs {
				idStr = fmt.Sprintf(" (ID: %s)", cli.ShortID(task.ID))
			}
			marker := ""
			if stats.IsOverdue(task, now) {
				marker = " ⚠ overdue"
			}
			fmt.Fprintf(ctx.Out, "  [%s] %s%s - due %s, %s priority%s\n",
				task.Status, task.Title, idStr, task.DueDate, task.Priority, marker)
			if len(task.DependsOn) > 0 {
				deps := make([]string, len(task.DependsOn))
				for i, d := range task.DependsOn {
					deps[i] = cli.ShortID(d)
				}
				fmt.Fprintf(ctx.Out, "      Depends on: %s\n", strings.Join(deps, ", "))
			}
		}
	}
	return nil
}

type TimelineAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Category    string `short:"c" help:"Task category." default:"other"`
	Priority    string `short:"p" help:"Task priority (high|medium|low)." default:"medium"`
	Due         string `short:"d" help:"Due date (YYYY-MM-DD)." required:""`
	Description string `help:"Description."`
	Notes       string `short:"n" help:"Notes."`
	DependsOn   string `help:"Comma-separated IDs of tasks this one depends on." name:"depends-on"`
	AssignedTo  string `help:"Comma-separated names of assignees." name:"assigned-to"`
}

func (c *TimelineAddCmd) Run(ctx *cli.Context) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return errors.New("task title cannot be empty")
	}
	category, err := models.ParseTaskCategory(c.Category)
	if err != nil {
		return err
	}
	priority, err := models.ParseTaskPriority(c.Priority)
	if err != nil {
		return err
	}
	if _, err := stats.ParseDueDate(c.Due); err != nil {
		return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", c.Due)
	}

	task, err := ctx.Repos.Timeline.AddTask(ctx.Ctx, models.TimelineTask{
		Title:       title,
		Description: c.Description,
		Category:    category,
		Priority:    priority,
		Status:      models.TaskStatusNotStarted,
		DueDate:     c.Due,
		DependsOn:   cli.SplitList(c.DependsOn),
		Notes:       c.Notes,
		AssignedTo:  cli.SplitList(c.AssignedTo),
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Added task: %s (ID: %s)\n", task.Title, cli.ShortID(task.ID))
	return nil
}

type TimelineEditCmd struct {
	ID          string  `arg:"" help:"Task ID or unique prefix."`
	Title       *string `help:"New title."`
	Category    *string `short:"c" help:"New category."`
	Priority    *string `short:"p" help:"New priority."`
	Due         *string `short:"d" help:"New due date (YYYY-MM-DD)."`
	Description *string `help:"New description."`
	Notes       *string `short:"n" help:"New notes."`
	DependsOn   *string `help:"Replace dependencies (comma-separated IDs, empty to clear)." name:"depends-on"`
	AssignedTo  *string `help:"Replace assignees (comma-separated, empty to clear)." name:"assigned-to"`
}

func (c *TimelineEditCmd) Run(ctx *cli.Context) error {
	var patch models.TaskPatch
	if c.Title != nil {
		if strings.TrimSpace(*c.Title) == "" {
			return errors.New("task title cannot be empty")
		}
		patch.Title = c.Title
	}
	if c.Category != nil {
		v, err := models.ParseTaskCategory(*c.Category)
		if err != nil {
			return err
		}
		patch.Category = &v
	}
	if c.Priority != nil {
		v, err := models.ParseTaskPriority(*c.Priority)
		if err != nil {
			return err
		}
		patch.Priority = &v
	}
	if c.Due != nil {
		if _, err := stats.ParseDueDate(*c.Due); err != nil {
			return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", *c.Due)
		}
		patch.DueDate = c.Due
	}
	patch.Description = c.Description
	patch.Notes = c.Notes
	if c.DependsOn != nil {
		deps := cli.SplitList(*c.DependsOn)
		patch.DependsOn = &deps
	}
	if c.AssignedTo != nil {
		names := cli.SplitList(*c.AssignedTo)
		patch.AssignedTo = &names
	}

	id, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Timeline.UpdateTask(ctx.Ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Updated task %s\n", cli.ShortID(id))
	return nil
}

type TimelineStatusCmd struct {
	ID     string `arg:"" help:"Task ID or unique prefix."`
	Status string `arg:"" help:"New status (not_started|in_progress|completed|overdue)."`
}

func (c *TimelineStatusCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseTaskStatus(c.Status)
	if err != nil {
		return err
	}
	id, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Timeline.UpdateTaskStatus(ctx.Ctx, id, status); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Task %s is now %s\n", cli.ShortID(id), status)
	return nil
}

type TimelineDeleteCmd struct {
	ID  string `arg:"" help:"Task ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *TimelineDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}

	ok, err := ctx.ConfirmDestructive(c.Yes, "Delete task?", "Tasks depending on it keep a dangling reference.")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Delete cancelled.")
		return nil
	}

	if err := ctx.Repos.Timeline.DeleteTask(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "Deleted task %s\n", cli.ShortID(id))
	return nil
}

func resolveTask(ctx *cli.Context, prefix string) (string, error) {
	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load timeline: %w", err)
	}
	var ids []string
	if details != nil {
		for _, task := range details.Tasks {
			ids = append(ids, task.ID)
		}
	}
	return cli.ResolveID("task", prefix, ids)
}
