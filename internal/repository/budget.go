package repository

import (
	"context"
	"slices"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

type Budget struct {
	doc document[models.BudgetDetails]
}

func NewBudget(store storage.Provider) *Budget {
	return &Budget{doc: document[models.BudgetDetails]{
		store:    store,
		key:      constants.KeyBudget,
		name:     "budget",
		defaults: models.NewBudgetDetails,
	}}
}

func (r *Budget) GetDetails(ctx context.Context) (*models.BudgetDetails, error) {
	return r.doc.load(ctx)
}

func (r *Budget) SetDetails(ctx context.Context, details models.BudgetDetails) error {
	return r.doc.save(ctx, details)
}

func (r *Budget) Initialize(ctx context.Context) error {
	return r.doc.initialize(ctx)
}

// SetTotalBudget updates the total, creating the document if needed.
func (r *Budget) SetTotalBudget(ctx context.Context, amount float64) error {
	details, err := r.doc.loadOrDefault(ctx)
	if err != nil {
		return err
	}
	details.TotalBudget = amount
	return r.doc.save(ctx, *details)
}

// AddItem stores item under a freshly generated id and returns the stored copy.
func (r *Budget) AddItem(ctx context.Context, item models.BudgetItem) (models.BudgetItem, error) {
	details, err := r.doc.loadOrDefault(ctx)
	if err != nil {
		return models.BudgetItem{}, err
	}
	item.ID = newID()
	details.Items = append(details.Items, item)
	if err := r.doc.save(ctx, *details); err != nil {
		return models.BudgetItem{}, err
	}
	return item, nil
}

func (r *Budget) UpdateItem(ctx context.Context, id string, patch models.BudgetItemPatch) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	for i := range details.Items {
		if details.Items[i].ID == id {
			patch.Apply(&details.Items[i])
		}
	}
	return r.doc.save(ctx, *details)
}

func (r *Budget) DeleteItem(ctx context.Context, id string) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Items = slices.DeleteFunc(details.Items, func(item models.BudgetItem) bool {
		return item.ID == id
	})
	return r.doc.save(ctx, *details)
}
