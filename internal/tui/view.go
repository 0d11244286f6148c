package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewport.View(),
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("aisle") + "  " + mutedStyle.Render(countdown(m.overview))
	if m.welcome {
		return title
	}
	var tabs []string
	for i, name := range tabTitles {
		if m.tab == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewFooter() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, dangerStyle.Render("❌ "+m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, successStyle.Render("✓ "+m.status))
	}
	lines = append(lines, m.help.View(m))
	return strings.Join(lines, "\n")
}

func (m Model) renderTab() string {
	if !m.loaded {
		return mutedStyle.Render("Loading...")
	}
	if m.welcome {
		return renderWelcome()
	}
	switch m.tab {
	case TabTimeline:
		return renderTimeline(m.docs.Timeline, m.visibleTasks(), m.cursor, m.overview.Timeline, m.now())
	case TabBudget:
		return renderBudget(m.docs.Budget, m.overview.Budget)
	case TabGuests:
		return renderGuests(m.overview.Guests, m.overview.Seating)
	case TabVendors:
		return renderVendors(m.docs.Vendors, m.overview.Vendors)
	default:
		return renderOverview(m.overview)
	}
}

func countdown(o stats.Overview) string {
	switch {
	case !o.HasDate:
		return "No wedding date set"
	case o.DaysUntil > 1:
		return fmt.Sprintf("%d days to go", o.DaysUntil)
	case o.DaysUntil == 1:
		return "1 day to go"
	case o.DaysUntil == 0:
		return "The big day is today!"
	default:
		return fmt.Sprintf("Married %d days ago", -o.DaysUntil)
	}
}

func renderWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to aisle!") + "\n\n")
	b.WriteString("Plan your timeline, budget, guest list and vendors in one place.\n\n")
	b.WriteString("Get started from the command line:\n")
	b.WriteString("  aisle wedding set-date 2027-06-12\n")
	b.WriteString("  aisle budget set-total 25000\n")
	b.WriteString("  aisle guest add Jane Doe\n\n")
	b.WriteString(mutedStyle.Render("Press enter to open the dashboard."))
	return b.String()
}

func progressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func renderOverview(o stats.Overview) string {
	var b strings.Builder
	if o.HasDate {
		fmt.Fprintf(&b, "Wedding day: %s\n", o.WeddingDate.Local().Format("Monday, January 2, 2006"))
	}
	fmt.Fprintf(&b, "Overall progress %s %d%%\n", progressBar(o.Progress.Percentage, 30), o.Progress.Percentage)

	domains := make([]string, 0, len(o.Progress.Domains))
	for name := range o.Progress.Domains {
		domains = append(domains, name)
	}
	sort.Strings(domains)
	for _, name := range domains {
		fmt.Fprintf(&b, "  %-9s %s %3d%%\n", name, progressBar(o.Progress.Domains[name], 20), o.Progress.Domains[name])
	}

	b.WriteString(headingStyle.Render("At a glance") + "\n")
	fmt.Fprintf(&b, "Timeline  %d/%d tasks done", o.Timeline.Completed, o.Timeline.Total)
	if o.Timeline.Overdue > 0 {
		b.WriteString("  " + warningStyle.Render(fmt.Sprintf("⚠ %d overdue", o.Timeline.Overdue)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Budget    %s of %s spent\n", money(o.Budget.TotalSpent), money(o.Budget.TotalBudget))
	fmt.Fprintf(&b, "Guests    %d confirmed of %d invited\n", o.Guests.Confirmed, o.Guests.Total)
	fmt.Fprintf(&b, "Vendors   %d hired of %d tracked\n", o.Vendors.Hired, o.Vendors.Total)
	return b.String()
}

func renderTimeline(details *models.TimelineDetails, tasks []models.TimelineTask, cursor int, summary stats.TimelineSummary, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d%% complete (%d/%d)\n",
		progressBar(summary.CompletionPercentage, 30), summary.CompletionPercentage, summary.Completed, summary.Total)
	if len(tasks) == 0 {
		b.WriteString("\n" + mutedStyle.Render("No tasks to show."))
		return b.String()
	}

	var current models.TaskCategory
	for i, task := range tasks {
		if i == 0 || task.Category != current {
			current = task.Category
			b.WriteString(headingStyle.Render(string(current)) + "\n")
		}
		mark := "[ ]"
		if task.Status == models.TaskStatusCompleted {
			mark = "[✓]"
		}
		line := fmt.Sprintf("%s %s  %s", mark, task.Title, mutedStyle.Render("due "+task.DueDate))
		if stats.IsOverdue(task, now) {
			line += "  " + warningStyle.Render("⚠ overdue")
		}
		if i == cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if details != nil && len(details.Tasks) > len(tasks) {
		fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d hidden", len(details.Tasks)-len(tasks))))
	}
	return b.String()
}

func renderBudget(details *models.BudgetDetails, summary stats.BudgetSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total %s  Spent %s  Remaining %s\n",
		money(summary.TotalBudget), money(summary.TotalSpent), money(summary.Remaining))
	fmt.Fprintf(&b, "%s %.0f%%\n", progressBar(int(summary.SpentPercentage), 30), summary.SpentPercentage)
	if summary.Remaining < 0 {
		b.WriteString(dangerStyle.Render("Over budget by "+money(-summary.Remaining)) + "\n")
	}
	if details == nil || len(details.Items) == 0 {
		b.WriteString("\n" + mutedStyle.Render("No budget items yet."))
		return b.String()
	}
	b.WriteString(headingStyle.Render("Items") + "\n")
	for _, item := range details.Items {
		actual := mutedStyle.Render("estimate")
		if item.ActualCost != nil {
			actual = money(*item.ActualCost)
		}
		fmt.Fprintf(&b, "  %-24s %-12s %12s  %s\n", item.Name, item.Category, money(item.EstimatedCost), actual)
	}
	return b.String()
}

func renderGuests(summary stats.GuestSummary, seating stats.SeatingPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d invited: %d confirmed, %d declined, %d pending\n",
		summary.Total, summary.Confirmed, summary.Declined, summary.Pending)
	fmt.Fprintf(&b, "%d adults, %d children, %d infants\n", summary.Adults, summary.Children, summary.Infants)

	b.WriteString(headingStyle.Render("Seating") + "\n")
	if len(seating.Tables) == 0 {
		b.WriteString(mutedStyle.Render("No tables yet.") + "\n")
	}
	for _, t := range seating.Tables {
		line := fmt.Sprintf("  %-20s %d/%d seats", t.Table.Name, t.SeatsUsed, t.Table.Capacity)
		if t.SeatsFree < 0 {
			line += "  " + warningStyle.Render("⚠ over capacity")
		}
		b.WriteString(line + "\n")
	}
	if len(seating.Unassigned) > 0 {
		fmt.Fprintf(&b, "\n%d guests without a table\n", len(seating.Unassigned))
	}
	return b.String()
}

func renderVendors(details *models.VendorDetails, summary stats.VendorSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d tracked, %d hired\n", summary.Total, summary.Hired)
	fmt.Fprintf(&b, "Quoted %s  Accepted %s\n", money(summary.TotalBudget), money(summary.SpentBudget))
	if details == nil || len(details.Vendors) == 0 {
		b.WriteString("\n" + mutedStyle.Render("No vendors yet."))
		return b.String()
	}
	b.WriteString(headingStyle.Render("Vendors") + "\n")
	for _, v := range details.Vendors {
		fmt.Fprintf(&b, "  %-24s %-14s %s\n", v.Name, v.Category, v.Status)
	}
	return b.String()
}
