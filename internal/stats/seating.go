package stats

import "github.com/julianstephens/aisle/internal/models"

type TableSeating struct {
	Table  models.Table
	Guests []models.Guest
	// SeatsUsed counts each guest plus their plus-one.
	SeatsUsed int
	// SeatsFree is negative when the table is over capacity.
	SeatsFree int
}

type SeatingPlan struct {
	Tables []TableSeating
	// Unassigned holds guests with no table or a table id that no longer exists.
	Unassigned []models.Guest
}

func Seats(g models.Guest) int {
	if g.PlusOne {
		return 2
	}
	return 1
}

// Seating lays out tables in document order.
func Seating(details *models.GuestDetails) SeatingPlan {
	var plan SeatingPlan
	if details == nil {
		return plan
	}

	index := make(map[string]int, len(details.Tables))
	for i, t := range details.Tables {
		index[t.ID] = i
		plan.Tables = append(plan.Tables, TableSeating{Table: t, SeatsFree: t.Capacity})
	}

	for _, g := range details.Guests {
		i, ok := index[g.TableID]
		if g.TableID == "" || !ok {
			plan.Unassigned = append(plan.Unassigned, g)
			continue
		}
		ts := &plan.Tables[i]
		ts.Guests = append(ts.Guests, g)
		ts.SeatsUsed += Seats(g)
		ts.SeatsFree = ts.Table.Capacity - ts.SeatsUsed
	}
	return plan
}
