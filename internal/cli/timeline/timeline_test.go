package timeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/config"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := cli.NewContext(context.Background(), storage.NewMemoryStore(), config.Config{}, &out)
	ctx.Confirm = nil
	ctx.Now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return ctx, &out
}

func addTask(t *testing.T, ctx *cli.Context, cmd TimelineAddCmd) models.TimelineTask {
	t.Helper()
	require.NoError(t, cmd.Run(ctx))
	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	return details.Tasks[len(details.Tasks)-1]
}

func TestTimelineAddAndList(t *testing.T) {
	ctx, out := setup(t)

	venue := addTask(t, ctx, TimelineAddCmd{Title: "Book venue", Category: "ceremony", Priority: "high", Due: "2026-02-01"})
	addTask(t, ctx, TimelineAddCmd{Title: "Order cake", Category: "reception", Priority: "low", Due: "2026-05-01", DependsOn: venue.ID})

	assert.Equal(t, models.TaskStatusNotStarted, venue.Status)
	assert.Equal(t, models.TaskPriorityHigh, venue.Priority)

	out.Reset()
	require.NoError(t, (&TimelineListCmd{}).Run(ctx))
	got := out.String()
	assert.Contains(t, got, "Timeline: 0/2 completed (0%), 1 overdue")
	assert.Contains(t, got, "Book venue - due 2026-02-01, high priority ⚠ overdue")
	assert.Contains(t, got, "Depends on: "+cli.ShortID(venue.ID))
	assert.Less(t, strings.Index(got, "ceremony:"), strings.Index(got, "reception:"))
}

func TestTimelineListFilters(t *testing.T) {
	ctx, out := setup(t)
	addTask(t, ctx, TimelineAddCmd{Title: "Book venue", Category: "ceremony", Priority: "high", Due: "2026-04-01"})
	addTask(t, ctx, TimelineAddCmd{Title: "Order cake", Category: "reception", Priority: "low", Due: "2026-05-01"})

	out.Reset()
	require.NoError(t, (&TimelineListCmd{Priority: []string{"low"}}).Run(ctx))
	assert.NotContains(t, out.String(), "Book venue")
	assert.Contains(t, out.String(), "Order cake")

	assert.Error(t, (&TimelineListCmd{Category: []string{"catering"}}).Run(ctx))
}

func TestTimelineStatusHidesCompleted(t *testing.T) {
	ctx, out := setup(t)
	task := addTask(t, ctx, TimelineAddCmd{Title: "Book venue", Category: "ceremony", Priority: "high", Due: "2026-04-01"})

	require.NoError(t, (&TimelineStatusCmd{ID: task.ID[:8], Status: "completed"}).Run(ctx))
	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, details.Tasks[0].CompletedDate)

	out.Reset()
	require.NoError(t, (&TimelineListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No tasks match the filter")

	out.Reset()
	require.NoError(t, (&TimelineListCmd{Status: []string{"completed"}}).Run(ctx))
	assert.Contains(t, out.String(), "Book venue")

	assert.Error(t, (&TimelineStatusCmd{ID: task.ID, Status: "done"}).Run(ctx))
}

func TestTimelineEditAndDelete(t *testing.T) {
	ctx, _ := setup(t)
	task := addTask(t, ctx, TimelineAddCmd{Title: "Book venue", Category: "ceremony", Priority: "high", Due: "2026-04-01", AssignedTo: "Sam, Alex"})
	assert.Equal(t, []string{"Sam", "Alex"}, task.AssignedTo)

	require.NoError(t, (&TimelineEditCmd{ID: task.ID, Title: ptr("Book the venue"), Priority: ptr("medium"), AssignedTo: ptr("")}).Run(ctx))
	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Equal(t, "Book the venue", details.Tasks[0].Title)
	assert.Equal(t, models.TaskPriorityMedium, details.Tasks[0].Priority)
	assert.Empty(t, details.Tasks[0].AssignedTo)

	assert.Error(t, (&TimelineEditCmd{ID: task.ID, Due: ptr("next week")}).Run(ctx))
	assert.Error(t, (&TimelineEditCmd{ID: task.ID, Title: ptr(" ")}).Run(ctx))

	require.NoError(t, (&TimelineDeleteCmd{ID: task.ID, Yes: true}).Run(ctx))
	details, err = ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Empty(t, details.Tasks)
}

func TestTimelineAddValidation(t *testing.T) {
	ctx, _ := setup(t)
	assert.Error(t, (&TimelineAddCmd{Title: "", Category: "other", Priority: "low", Due: "2026-04-01"}).Run(ctx))
	assert.Error(t, (&TimelineAddCmd{Title: "X", Category: "nope", Priority: "low", Due: "2026-04-01"}).Run(ctx))
	assert.Error(t, (&TimelineAddCmd{Title: "X", Category: "other", Priority: "urgent", Due: "2026-04-01"}).Run(ctx))
	assert.Error(t, (&TimelineAddCmd{Title: "X", Category: "other", Priority: "low", Due: "soon"}).Run(ctx))
}

func TestCategoryCommands(t *testing.T) {
	ctx, out := setup(t)
	addTask(t, ctx, TimelineAddCmd{Title: "Book venue", Category: "ceremony", Priority: "high", Due: "2026-04-01"})

	require.NoError(t, (&CategoryToggleCmd{Category: "ceremony"}).Run(ctx))
	assert.Contains(t, out.String(), "ceremony is now hidden")

	out.Reset()
	require.NoError(t, (&TimelineListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No tasks match the filter")

	require.NoError(t, (&CategoryToggleCmd{Category: "ceremony"}).Run(ctx))
	require.NoError(t, (&CategoryOrderCmd{Category: "ceremony", Order: 20}).Run(ctx))

	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CategorySetting{IsEnabled: true, Order: 20}, details.Categories[models.TaskCategoryCeremony])

	out.Reset()
	require.NoError(t, (&CategoryListCmd{}).Run(ctx))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Contains(t, lines[len(lines)-1], "ceremony")
}

func TestCategoryCommandsRequireTimeline(t *testing.T) {
	ctx, _ := setup(t)
	assert.Error(t, (&CategoryToggleCmd{Category: "ceremony"}).Run(ctx))
	assert.Error(t, (&CategoryOrderCmd{Category: "ceremony", Order: 1}).Run(ctx))
}

func TestTimelineExport(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, ctx.Repos.Wedding.SetWeddingDate(ctx.Ctx, time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)))
	addTask(t, ctx, TimelineAddCmd{Title: "Book venue", Category: "ceremony", Priority: "high", Due: "2026-04-01"})
	addTask(t, ctx, TimelineAddCmd{Title: "Order cake", Category: "reception", Priority: "low", Due: "2026-05-01"})

	path := filepath.Join(t.TempDir(), "wedding.ics")
	require.NoError(t, (&TimelineExportCmd{Output: path, Name: "Our wedding", Priority: []string{"high"}}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Exported 2 events")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cal, err := ical.ParseCalendar(f)
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}
