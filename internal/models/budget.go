package models

type BudgetItem struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`
	Name          string   `json:"name"`
	EstimatedCost float64  `json:"estimatedCost"`
	ActualCost    *float64 `json:"actualCost,omitempty"`
	Paid          *float64 `json:"paid,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type BudgetDetails struct {
	TotalBudget float64      `json:"totalBudget"`
	Items       []BudgetItem `json:"items"`
}

// NewBudgetDetails returns the document written on first access.
func NewBudgetDetails() BudgetDetails {
	return BudgetDetails{TotalBudget: 0, Items: []BudgetItem{}}
}

// BudgetItemPatch carries the fields to overwrite; nil fields are left alone.
// The Clear flags unset the optional amounts and win over a value.
type BudgetItemPatch struct {
	Category        *string
	Name            *string
	EstimatedCost   *float64
	ActualCost      *float64
	Paid            *float64
	Notes           *string
	ClearActualCost bool
	ClearPaid       bool
}

func (p BudgetItemPatch) Apply(item *BudgetItem) {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.EstimatedCost != nil {
		item.EstimatedCost = *p.EstimatedCost
	}
	if p.ActualCost != nil {
		v := *p.ActualCost
		item.ActualCost = &v
	}
	if p.Paid != nil {
		v := *p.Paid
		item.Paid = &v
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.ClearActualCost {
		item.ActualCost = nil
	}
	if p.ClearPaid {
		item.Paid = nil
	}
}
