// Package repository reads and writes the planner documents. Every
// operation loads one whole document, changes it in memory and writes it
// back under the same key. Concurrent writers race; the last write wins.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/aisle/internal/codec"
	apperrors "github.com/julianstephens/aisle/internal/errors"
	"github.com/julianstephens/aisle/internal/logger"
	"github.com/julianstephens/aisle/internal/storage"
	"github.com/julianstephens/aisle/internal/validation"
)

// newID generates entry ids. Replaced in tests that need predictable ids.
var newID = uuid.NewString

// document binds a document type to its store key.
type document[T any] struct {
	store    storage.Provider
	key      string
	name     string
	defaults func() T
}

// load returns nil, nil when the key has never been written.
func (d document[T]) load(ctx context.Context) (*T, error) {
	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		err = apperrors.Storage("get", d.key, err)
		logger.Error("Failed to read document", "key", d.key, "error", err)
		return nil, err
	}

	doc, err := codec.Decode[T](d.key, raw)
	if err != nil {
		logger.Error("Failed to decode document", "key", d.key, "error", err)
		return nil, err
	}
	return &doc, nil
}

// loadExisting is load for mutators that require the document to exist.
func (d document[T]) loadExisting(ctx context.Context) (*T, error) {
	doc, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		err := &apperrors.NotFoundError{Document: d.name}
		logger.Error("Document missing", "key", d.key, "error", err)
		return nil, err
	}
	return doc, nil
}

// loadOrDefault is load for mutators that create the document on first use.
func (d document[T]) loadOrDefault(ctx context.Context) (*T, error) {
	doc, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		fresh := d.defaults()
		return &fresh, nil
	}
	return doc, nil
}

func (d document[T]) save(ctx context.Context, doc T) error {
	raw, err := codec.Encode(doc)
	if err != nil {
		logger.Error("Failed to encode document", "key", d.key, "error", err)
		return err
	}
	if err := d.store.Set(ctx, d.key, raw); err != nil {
		err = apperrors.Storage("set", d.key, err)
		logger.Error("Failed to write document", "key", d.key, "error", err)
		return err
	}
	logger.Debug("Saved document", "key", d.key, "bytes", len(raw))
	return nil
}

// initialize writes the default document only when none exists.
func (d document[T]) initialize(ctx context.Context) error {
	doc, err := d.load(ctx)
	if err != nil {
		return err
	}
	if doc != nil {
		return nil
	}
	return d.save(ctx, d.defaults())
}

// clock supplies the current time; nil means time.Now.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Repositories bundles one repository per document over a shared store.
type Repositories struct {
	Wedding    *Wedding
	Onboarding *Onboarding
	Budget     *Budget
	Timeline   *Timeline
	Guests     *Guests
	Vendors    *Vendors
}

func New(store storage.Provider) *Repositories {
	return &Repositories{
		Wedding:    NewWedding(store),
		Onboarding: NewOnboarding(store),
		Budget:     NewBudget(store),
		Timeline:   NewTimeline(store),
		Guests:     NewGuests(store),
		Vendors:    NewVendors(store),
	}
}

// LoadAll reads every planner document. Absent documents stay nil.
func (r *Repositories) LoadAll(ctx context.Context) (validation.Documents, error) {
	var docs validation.Documents
	var err error
	if docs.Wedding, err = r.Wedding.GetDetails(ctx); err != nil {
		return docs, err
	}
	if docs.Budget, err = r.Budget.GetDetails(ctx); err != nil {
		return docs, err
	}
	if docs.Timeline, err = r.Timeline.GetDetails(ctx); err != nil {
		return docs, err
	}
	if docs.Guests, err = r.Guests.GetDetails(ctx); err != nil {
		return docs, err
	}
	if docs.Vendors, err = r.Vendors.GetDetails(ctx); err != nil {
		return docs, err
	}
	return docs, nil
}
