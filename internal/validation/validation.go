package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID           ConflictType = "duplicate_id"
	ConflictDanglingDependency    ConflictType = "dangling_dependency"
	ConflictCompletedDateMismatch ConflictType = "completed_date_mismatch"
	ConflictInvalidDate           ConflictType = "invalid_date"
	ConflictInvalidValue          ConflictType = "invalid_value"
	ConflictMissingTable          ConflictType = "missing_table"
	ConflictTableOverCapacity     ConflictType = "table_over_capacity"
	ConflictInvalidQuoteAmount    ConflictType = "invalid_quote_amount"
	ConflictRatingOutOfRange      ConflictType = "rating_out_of_range"
	ConflictNegativeAmount        ConflictType = "negative_amount"
)

// Conflict represents one integrity problem found in a document
type Conflict struct {
	Type        ConflictType
	Document    string // budget, timeline, guest, vendor or wedding
	Description string
	IDs         []string // IDs of the entries involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// ByType returns the conflicts of type t.
func (vr *ValidationResult) ByType(t ConflictType) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Document, conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, document string, ids []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Document:    document,
		Description: fmt.Sprintf(format, args...),
		IDs:         ids,
	})
}

// Documents is the set of documents a full validation run looks at.
// Nil documents are skipped.
type Documents struct {
	Wedding  *models.WeddingDetails
	Budget   *models.BudgetDetails
	Timeline *models.TimelineDetails
	Guests   *models.GuestDetails
	Vendors  *models.VendorDetails
}

// Validator checks documents for integrity problems. It never modifies them.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate runs every document check and concatenates the results.
func (v *Validator) Validate(docs Documents) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if docs.Wedding != nil && docs.Wedding.WeddingDate != "" {
		if _, err := stats.ParseWeddingDate(docs.Wedding.WeddingDate, time.UTC); err != nil {
			result.add(ConflictInvalidDate, "wedding", nil, "Wedding date %q is not an ISO-8601 date", docs.Wedding.WeddingDate)
		}
	}
	for _, r := range []ValidationResult{
		v.ValidateBudget(docs.Budget),
		v.ValidateTimeline(docs.Timeline),
		v.ValidateGuests(docs.Guests),
		v.ValidateVendors(docs.Vendors),
	} {
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	return result
}

// duplicateIDs reports every id used by more than one entry, in first-seen order.
func duplicateIDs(ids []string) []string {
	count := make(map[string]int, len(ids))
	var dupes []string
	for _, id := range ids {
		count[id]++
		if count[id] == 2 {
			dupes = append(dupes, id)
		}
	}
	return dupes
}

func (v *Validator) ValidateBudget(details *models.BudgetDetails) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if details == nil {
		return result
	}

	if details.TotalBudget < 0 {
		result.add(ConflictNegativeAmount, "budget", nil, "Total budget is negative: %.2f", details.TotalBudget)
	}

	ids := make([]string, 0, len(details.Items))
	for _, item := range details.Items {
		ids = append(ids, item.ID)
		if item.EstimatedCost < 0 {
			result.add(ConflictNegativeAmount, "budget", []string{item.ID}, "Budget item \"%s\" has a negative estimated cost: %.2f", item.Name, item.EstimatedCost)
		}
		if item.ActualCost != nil && *item.ActualCost < 0 {
			result.add(ConflictNegativeAmount, "budget", []string{item.ID}, "Budget item \"%s\" has a negative actual cost: %.2f", item.Name, *item.ActualCost)
		}
		if item.Paid != nil && *item.Paid < 0 {
			result.add(ConflictNegativeAmount, "budget", []string{item.ID}, "Budget item \"%s\" has a negative paid amount: %.2f", item.Name, *item.Paid)
		}
	}
	for _, id := range duplicateIDs(ids) {
		result.add(ConflictDuplicateID, "budget", []string{id}, "Duplicate budget item ID: %s", id)
	}
	return result
}

func (v *Validator) ValidateTimeline(details *models.TimelineDetails) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if details == nil {
		return result
	}

	known := make(map[string]bool, len(details.Tasks))
	ids := make([]string, 0, len(details.Tasks))
	for _, task := range details.Tasks {
		known[task.ID] = true
		ids = append(ids, task.ID)
	}
	for _, id := range duplicateIDs(ids) {
		result.add(ConflictDuplicateID, "timeline", []string{id}, "Duplicate task ID: %s", id)
	}

	for _, task := range details.Tasks {
		for _, dep := range task.DependsOn {
			if !known[dep] {
				result.add(ConflictDanglingDependency, "timeline", []string{task.ID, dep}, "Task \"%s\" depends on missing task %s", task.Title, dep)
			}
		}

		completed := task.Status == models.TaskStatusCompleted
		switch {
		case completed && task.CompletedDate == "":
			result.add(ConflictCompletedDateMismatch, "timeline", []string{task.ID}, "Task \"%s\" is completed but has no completed date", task.Title)
		case !completed && task.CompletedDate != "":
			result.add(ConflictCompletedDateMismatch, "timeline", []string{task.ID}, "Task \"%s\" is %s but has a completed date", task.Title, task.Status)
		}

		if _, err := stats.ParseDueDate(task.DueDate); err != nil {
			result.add(ConflictInvalidDate, "timeline", []string{task.ID}, "Task \"%s\" has invalid due date: %q", task.Title, task.DueDate)
		}
		if !task.Category.Valid() {
			result.add(ConflictInvalidValue, "timeline", []string{task.ID}, "Task \"%s\" has unknown category %q", task.Title, task.Category)
		}
		if !task.Priority.Valid() {
			result.add(ConflictInvalidValue, "timeline", []string{task.ID}, "Task \"%s\" has unknown priority %q", task.Title, task.Priority)
		}
		if !task.Status.Valid() {
			result.add(ConflictInvalidValue, "timeline", []string{task.ID}, "Task \"%s\" has unknown status %q", task.Title, task.Status)
		}
	}
	return result
}

func (v *Validator) ValidateGuests(details *models.GuestDetails) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if details == nil {
		return result
	}

	guestIDs := make([]string, 0, len(details.Guests))
	for _, g := range details.Guests {
		guestIDs = append(guestIDs, g.ID)
	}
	for _, id := range duplicateIDs(guestIDs) {
		result.add(ConflictDuplicateID, "guest", []string{id}, "Duplicate guest ID: %s", id)
	}

	tableIDs := make([]string, 0, len(details.Tables))
	tables := make(map[string]bool, len(details.Tables))
	for _, t := range details.Tables {
		tableIDs = append(tableIDs, t.ID)
		tables[t.ID] = true
		if t.Capacity <= 0 {
			result.add(ConflictInvalidValue, "guest", []string{t.ID}, "Table \"%s\" has non-positive capacity %d", t.Name, t.Capacity)
		}
	}
	for _, id := range duplicateIDs(tableIDs) {
		result.add(ConflictDuplicateID, "guest", []string{id}, "Duplicate table ID: %s", id)
	}

	for _, g := range details.Guests {
		if g.TableID != "" && !tables[g.TableID] {
			result.add(ConflictMissingTable, "guest", []string{g.ID, g.TableID}, "Guest \"%s\" is seated at missing table %s", g.FullName(), g.TableID)
		}
		if !g.Status.Valid() {
			result.add(ConflictInvalidValue, "guest", []string{g.ID}, "Guest \"%s\" has unknown status %q", g.FullName(), g.Status)
		}
		if !g.AgeRange.Valid() {
			result.add(ConflictInvalidValue, "guest", []string{g.ID}, "Guest \"%s\" has unknown age range %q", g.FullName(), g.AgeRange)
		}
	}

	for _, ts := range stats.Seating(details).Tables {
		if ts.Table.Capacity > 0 && ts.SeatsFree < 0 {
			result.add(ConflictTableOverCapacity, "guest", []string{ts.Table.ID},
				"Table \"%s\" seats %d but has %d assigned", ts.Table.Name, ts.Table.Capacity, ts.SeatsUsed)
		}
	}
	return result
}

func (v *Validator) ValidateVendors(details *models.VendorDetails) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if details == nil {
		return result
	}

	ids := make([]string, 0, len(details.Vendors))
	for _, vendor := range details.Vendors {
		ids = append(ids, vendor.ID)
	}
	for _, id := range duplicateIDs(ids) {
		result.add(ConflictDuplicateID, "vendor", []string{id}, "Duplicate vendor ID: %s", id)
	}

	for _, vendor := range details.Vendors {
		if vendor.Rating != nil && (*vendor.Rating < 0 || *vendor.Rating > 5) {
			result.add(ConflictRatingOutOfRange, "vendor", []string{vendor.ID}, "Vendor \"%s\" has rating %.1f outside 0-5", vendor.Name, *vendor.Rating)
		}
		if !vendor.Category.Valid() {
			result.add(ConflictInvalidValue, "vendor", []string{vendor.ID}, "Vendor \"%s\" has unknown category %q", vendor.Name, vendor.Category)
		}
		if !vendor.Status.Valid() {
			result.add(ConflictInvalidValue, "vendor", []string{vendor.ID}, "Vendor \"%s\" has unknown status %q", vendor.Name, vendor.Status)
		}
		for i, q := range vendor.Quotes {
			if q.Amount <= 0 {
				result.add(ConflictInvalidQuoteAmount, "vendor", []string{vendor.ID}, "Vendor \"%s\" quote #%d has non-positive amount %.2f", vendor.Name, i+1, q.Amount)
			}
			if q.Date != "" {
				if _, err := time.Parse(constants.DateFormat, q.Date); err != nil {
					result.add(ConflictInvalidDate, "vendor", []string{vendor.ID}, "Vendor \"%s\" quote #%d has invalid date %q", vendor.Name, i+1, q.Date)
				}
			}
		}
	}
	return result
}
