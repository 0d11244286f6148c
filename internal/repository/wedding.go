package repository

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/aisle/internal/constants"
	apperrors "github.com/julianstephens/aisle/internal/errors"
	"github.com/julianstephens/aisle/internal/logger"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

type Wedding struct {
	doc document[models.WeddingDetails]
}

func NewWedding(store storage.Provider) *Wedding {
	return &Wedding{doc: document[models.WeddingDetails]{
		store:    store,
		key:      constants.KeyWedding,
		name:     "wedding",
		defaults: func() models.WeddingDetails { return models.WeddingDetails{} },
	}}
}

// GetDetails returns nil, nil until a date has been set.
func (r *Wedding) GetDetails(ctx context.Context) (*models.WeddingDetails, error) {
	return r.doc.load(ctx)
}

// SetWeddingDate replaces the stored date with date in UTC.
func (r *Wedding) SetWeddingDate(ctx context.Context, date time.Time) error {
	return r.doc.save(ctx, models.WeddingDetails{
		WeddingDate: date.UTC().Format(constants.TimestampFormat),
	})
}

// Onboarding tracks whether the first-run flow has been completed.
type Onboarding struct {
	store storage.Provider
}

func NewOnboarding(store storage.Provider) *Onboarding {
	return &Onboarding{store: store}
}

// IsFirstLaunch reports true while the onboarding flag is absent.
func (r *Onboarding) IsFirstLaunch(ctx context.Context) (bool, error) {
	_, err := r.store.Get(ctx, constants.KeyOnboarding)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return true, nil
	}
	if err != nil {
		err = apperrors.Storage("get", constants.KeyOnboarding, err)
		logger.Error("Failed to read onboarding flag", "key", constants.KeyOnboarding, "error", err)
		return false, err
	}
	return false, nil
}

// SetOnboardingComplete stores the flag, or removes it when completed is false.
func (r *Onboarding) SetOnboardingComplete(ctx context.Context, completed bool) error {
	var err error
	if completed {
		err = r.store.Set(ctx, constants.KeyOnboarding, "true")
	} else {
		err = r.store.Remove(ctx, constants.KeyOnboarding)
	}
	if err != nil {
		err = apperrors.Storage("set", constants.KeyOnboarding, err)
		logger.Error("Failed to write onboarding flag", "key", constants.KeyOnboarding, "error", err)
		return err
	}
	return nil
}
