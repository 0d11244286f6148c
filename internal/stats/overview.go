package stats

import (
	"time"

	"github.com/julianstephens/aisle/internal/models"
)

// Overview gathers every summary shown on the dashboard.
type Overview struct {
	HasDate     bool
	WeddingDate time.Time
	DaysUntil   int
	Progress    OverallProgress
	Timeline    TimelineSummary
	Budget      BudgetSummary
	Guests      GuestSummary
	Vendors     VendorSummary
	Seating     SeatingPlan
}

// Summarize accepts nil for any document that has not been created yet.
func Summarize(
	wedding *models.WeddingDetails,
	budget *models.BudgetDetails,
	timeline *models.TimelineDetails,
	guests *models.GuestDetails,
	vendors *models.VendorDetails,
	now time.Time,
) Overview {
	var o Overview

	if days, err := DaysUntilWedding(wedding, now); err == nil {
		o.HasDate = true
		o.DaysUntil = days
		o.WeddingDate, _ = ParseWeddingDate(wedding.WeddingDate, now.Location())
	}

	var (
		tasks      []models.TimelineTask
		items      []models.BudgetItem
		guestList  []models.Guest
		vendorList []models.Vendor
	)
	if timeline != nil {
		tasks = timeline.Tasks
	}
	if budget != nil {
		items = budget.Items
	}
	if guests != nil {
		guestList = guests.Guests
	}
	if vendors != nil {
		vendorList = vendors.Vendors
	}

	o.Progress = Overall(tasks, items, guestList, vendorList)
	o.Timeline = Timeline(tasks, now)
	o.Budget = Budget(budget)
	o.Guests = Guests(guestList)
	o.Vendors = Vendors(vendorList)
	o.Seating = Seating(guests)
	return o
}
