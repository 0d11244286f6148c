package repository

import (
	"context"
	"slices"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

// Guests manages the guest list and the seating tables, which share one document.
type Guests struct {
	doc document[models.GuestDetails]
}

func NewGuests(store storage.Provider) *Guests {
	return &Guests{doc: document[models.GuestDetails]{
		store:    store,
		key:      constants.KeyGuests,
		name:     "guest",
		defaults: models.NewGuestDetails,
	}}
}

func (r *Guests) GetDetails(ctx context.Context) (*models.GuestDetails, error) {
	return r.doc.load(ctx)
}

func (r *Guests) SetDetails(ctx context.Context, details models.GuestDetails) error {
	return r.doc.save(ctx, details)
}

func (r *Guests) Initialize(ctx context.Context) error {
	return r.doc.initialize(ctx)
}

func (r *Guests) AddGuest(ctx context.Context, guest models.Guest) (models.Guest, error) {
	details, err := r.doc.loadOrDefault(ctx)
	if err != nil {
		return models.Guest{}, err
	}
	guest.ID = newID()
	details.Guests = append(details.Guests, guest)
	if err := r.doc.save(ctx, *details); err != nil {
		return models.Guest{}, err
	}
	return guest, nil
}

func (r *Guests) UpdateGuest(ctx context.Context, id string, patch models.GuestPatch) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	for i := range details.Guests {
		if details.Guests[i].ID == id {
			patch.Apply(&details.Guests[i])
		}
	}
	return r.doc.save(ctx, *details)
}

func (r *Guests) DeleteGuest(ctx context.Context, id string) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Guests = slices.DeleteFunc(details.Guests, func(g models.Guest) bool {
		return g.ID == id
	})
	return r.doc.save(ctx, *details)
}

func (r *Guests) AddTable(ctx context.Context, table models.Table) (models.Table, error) {
	details, err := r.doc.loadOrDefault(ctx)
	if err != nil {
		return models.Table{}, err
	}
	table.ID = newID()
	details.Tables = append(details.Tables, table)
	if err := r.doc.save(ctx, *details); err != nil {
		return models.Table{}, err
	}
	return table, nil
}

func (r *Guests) UpdateTable(ctx context.Context, id string, patch models.TablePatch) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	for i := range details.Tables {
		if details.Tables[i].ID == id {
			patch.Apply(&details.Tables[i])
		}
	}
	return r.doc.save(ctx, *details)
}

// DeleteTable removes the table and unassigns its guests in the same write.
func (r *Guests) DeleteTable(ctx context.Context, id string) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Tables = slices.DeleteFunc(details.Tables, func(t models.Table) bool {
		return t.ID == id
	})
	for i := range details.Guests {
		if details.Guests[i].TableID == id {
			details.Guests[i].TableID = ""
		}
	}
	return r.doc.save(ctx, *details)
}
