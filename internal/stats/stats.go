// Package stats derives summaries from loaded documents. Functions here do
// no I/O and take the current time as a parameter.
package stats

import (
	"errors"
	"math"
	"time"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
)

var ErrNoWeddingDate = errors.New("no wedding date set")

// DaysUntilWedding rounds up partial days, so any time later today counts as 1.
// Past dates give zero or negative results.
func DaysUntilWedding(details *models.WeddingDetails, now time.Time) (int, error) {
	if details == nil || details.WeddingDate == "" {
		return 0, ErrNoWeddingDate
	}
	date, err := ParseWeddingDate(details.WeddingDate, now.Location())
	if err != nil {
		return 0, err
	}
	days := math.Ceil(float64(date.Sub(now)) / float64(constants.Day))
	return int(days), nil
}

// ParseWeddingDate accepts an RFC 3339 timestamp or a calendar date, which
// is read as midnight in loc.
func ParseWeddingDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseDueDate accepts a calendar date (read as UTC midnight) or an RFC 3339 timestamp.
func ParseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

type GuestSummary struct {
	Total     int
	Confirmed int
	Declined  int
	// Pending counts every guest that is neither confirmed nor declined.
	Pending  int
	Adults   int
	Children int
	Infants  int
}

func Guests(guests []models.Guest) GuestSummary {
	s := GuestSummary{Total: len(guests)}
	for _, g := range guests {
		switch g.Status {
		case models.GuestStatusConfirmed:
			s.Confirmed++
		case models.GuestStatusDeclined:
			s.Declined++
		default:
			s.Pending++
		}
		switch g.AgeRange {
		case models.AgeRangeAdult:
			s.Adults++
		case models.AgeRangeChild:
			s.Children++
		case models.AgeRangeInfant:
			s.Infants++
		}
	}
	return s
}

type VendorSummary struct {
	Total    int
	ByStatus map[models.VendorStatus]int
	Hired    int
	// TotalBudget sums every quote; SpentBudget only accepted ones.
	TotalBudget float64
	SpentBudget float64
}

func Vendors(vendors []models.Vendor) VendorSummary {
	s := VendorSummary{
		Total:    len(vendors),
		ByStatus: make(map[models.VendorStatus]int, len(models.AllVendorStatuses())),
	}
	for _, status := range models.AllVendorStatuses() {
		s.ByStatus[status] = 0
	}
	for _, v := range vendors {
		s.ByStatus[v.Status]++
		if v.Status == models.VendorStatusHired {
			s.Hired++
		}
		for _, q := range v.Quotes {
			s.TotalBudget += q.Amount
			if q.Status == models.QuoteStatusAccepted {
				s.SpentBudget += q.Amount
			}
		}
	}
	return s
}

type TimelineSummary struct {
	Total                int
	Completed            int
	CompletionPercentage int
	Overdue              int
}

// Timeline counts a task as overdue when it is not completed and its due
// date is before now. Unparseable due dates are never overdue.
func Timeline(tasks []models.TimelineTask, now time.Time) TimelineSummary {
	s := TimelineSummary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Status == models.TaskStatusCompleted {
			s.Completed++
			continue
		}
		if IsOverdue(task, now) {
			s.Overdue++
		}
	}
	s.CompletionPercentage = percentage(s.Completed, s.Total)
	return s
}

func IsOverdue(task models.TimelineTask, now time.Time) bool {
	if task.Status == models.TaskStatusCompleted {
		return false
	}
	due, err := ParseDueDate(task.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

type BudgetSummary struct {
	TotalBudget float64
	// TotalSpent uses each item's actual cost, falling back to its estimate
	// when the actual cost is unset or zero.
	TotalSpent      float64
	Remaining       float64
	SpentPercentage float64 // capped at 100
}

func Budget(details *models.BudgetDetails) BudgetSummary {
	if details == nil {
		return BudgetSummary{}
	}
	s := BudgetSummary{TotalBudget: details.TotalBudget}
	for _, item := range details.Items {
		if item.ActualCost != nil && *item.ActualCost != 0 {
			s.TotalSpent += *item.ActualCost
		} else {
			s.TotalSpent += item.EstimatedCost
		}
	}
	s.Remaining = s.TotalBudget - s.TotalSpent
	if s.TotalBudget > 0 {
		s.SpentPercentage = math.Min(100, 100*s.TotalSpent/s.TotalBudget)
	}
	return s
}

type OverallProgress struct {
	Percentage int
	// Per-domain completion, 0-100; a domain with no entries is absent.
	Domains map[string]int
}

// Overall averages the completion ratio of every domain that has entries:
// completed tasks, budget items with an actual cost, guests who responded
// and hired vendors.
func Overall(tasks []models.TimelineTask, items []models.BudgetItem, guests []models.Guest, vendors []models.Vendor) OverallProgress {
	p := OverallProgress{Domains: map[string]int{}}
	var sum float64
	var n int

	add := func(name string, done, total int) {
		if total == 0 {
			return
		}
		ratio := float64(done) / float64(total)
		sum += ratio
		n++
		p.Domains[name] = int(math.Round(100 * ratio))
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			completed++
		}
	}
	add("timeline", completed, len(tasks))

	paid := 0
	for _, item := range items {
		if item.ActualCost != nil {
			paid++
		}
	}
	add("budget", paid, len(items))

	responded := 0
	for _, g := range guests {
		if g.Status != models.GuestStatusInvited {
			responded++
		}
	}
	add("guests", responded, len(guests))

	hired := 0
	for _, v := range vendors {
		if v.Status == models.VendorStatusHired {
			hired++
		}
	}
	add("vendors", hired, len(vendors))

	if n > 0 {
		p.Percentage = int(math.Round(100 * sum / float64(n)))
	}
	return p
}
