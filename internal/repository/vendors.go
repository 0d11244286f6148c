package repository

import (
	"context"
	"slices"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

type Vendors struct {
	doc document[models.VendorDetails]
}

func NewVendors(store storage.Provider) *Vendors {
	return &Vendors{doc: document[models.VendorDetails]{
		store:    store,
		key:      constants.KeyVendors,
		name:     "vendor",
		defaults: models.NewVendorDetails,
	}}
}

func (r *Vendors) GetDetails(ctx context.Context) (*models.VendorDetails, error) {
	return r.doc.load(ctx)
}

func (r *Vendors) SetDetails(ctx context.Context, details models.VendorDetails) error {
	return r.doc.save(ctx, details)
}

func (r *Vendors) Initialize(ctx context.Context) error {
	return r.doc.initialize(ctx)
}

func (r *Vendors) AddVendor(ctx context.Context, vendor models.Vendor) (models.Vendor, error) {
	details, err := r.doc.loadOrDefault(ctx)
	if err != nil {
		return models.Vendor{}, err
	}
	vendor.ID = newID()
	if vendor.Contacts == nil {
		vendor.Contacts = []models.VendorContact{}
	}
	if vendor.Quotes == nil {
		vendor.Quotes = []models.VendorQuote{}
	}
	details.Vendors = append(details.Vendors, vendor)
	if err := r.doc.save(ctx, *details); err != nil {
		return models.Vendor{}, err
	}
	return vendor, nil
}

func (r *Vendors) UpdateVendor(ctx context.Context, id string, patch models.VendorPatch) error {
	return r.mutate(ctx, id, func(v *models.Vendor) { patch.Apply(v) })
}

func (r *Vendors) DeleteVendor(ctx context.Context, id string) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Vendors = slices.DeleteFunc(details.Vendors, func(v models.Vendor) bool {
		return v.ID == id
	})
	return r.doc.save(ctx, *details)
}

// AddQuote appends quote to the vendor's quotes. Unknown vendors are ignored.
func (r *Vendors) AddQuote(ctx context.Context, vendorID string, quote models.VendorQuote) error {
	return r.mutate(ctx, vendorID, func(v *models.Vendor) {
		v.Quotes = append(v.Quotes, quote)
	})
}

// SetQuoteStatus changes the status of the quote at index. Out-of-range
// indexes are ignored.
func (r *Vendors) SetQuoteStatus(ctx context.Context, vendorID string, index int, status models.QuoteStatus) error {
	return r.mutate(ctx, vendorID, func(v *models.Vendor) {
		if index >= 0 && index < len(v.Quotes) {
			v.Quotes[index].Status = status
		}
	})
}

func (r *Vendors) UpdateCategoryOrder(ctx context.Context, category models.VendorCategory, order int) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Categories = setCategoryOrder(details.Categories, category, order)
	return r.doc.save(ctx, *details)
}

func (r *Vendors) ToggleCategoryVisibility(ctx context.Context, category models.VendorCategory) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Categories = toggleCategory(details.Categories, category)
	return r.doc.save(ctx, *details)
}

func (r *Vendors) mutate(ctx context.Context, id string, fn func(*models.Vendor)) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	for i := range details.Vendors {
		if details.Vendors[i].ID == id {
			fn(&details.Vendors[i])
		}
	}
	return r.doc.save(ctx, *details)
}
