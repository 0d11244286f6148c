package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/aisle/internal/errors"
	"github.com/julianstephens/aisle/internal/models"
)

func ptr[T any](v T) *T { return &v }

func roundTrip[T any](t *testing.T, doc T) {
	t.Helper()
	raw, err := Encode(doc)
	require.NoError(t, err)
	got, err := Decode[T]("doc", raw)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestRoundTrip(t *testing.T) {
	t.Run("wedding", func(t *testing.T) {
		roundTrip(t, models.WeddingDetails{WeddingDate: "2027-06-12T16:00:00.000Z"})
	})

	t.Run("budget", func(t *testing.T) {
		roundTrip(t, models.BudgetDetails{
			TotalBudget: 25000,
			Items: []models.BudgetItem{
				{ID: "b1", Category: "Venue", Name: "Hall", EstimatedCost: 5000, ActualCost: ptr(5200.5), Paid: ptr(1000.0)},
				{ID: "b2", Category: "Flowers", Name: "Bouquets", EstimatedCost: 800, Notes: "peonies"},
			},
		})
	})

	t.Run("timeline", func(t *testing.T) {
		doc := models.NewTimelineDetails()
		doc.Tasks = []models.TimelineTask{
			{
				ID:            "t1",
				Title:         "Book venue",
				Category:      models.TaskCategoryCeremony,
				Priority:      models.TaskPriorityHigh,
				Status:        models.TaskStatusCompleted,
				DueDate:       "2027-01-01",
				CompletedDate: "2026-12-20T10:00:00.000Z",
				DependsOn:     []string{"t0"},
				AssignedTo:    []string{"Sam"},
			},
		}
		roundTrip(t, doc)
	})

	t.Run("guests", func(t *testing.T) {
		roundTrip(t, models.GuestDetails{
			Guests: []models.Guest{
				{
					ID:                  "g1",
					FirstName:           "Ada",
					LastName:            "Lovelace",
					AgeRange:            models.AgeRangeAdult,
					Status:              models.GuestStatusConfirmed,
					DietaryRestrictions: []models.DietaryRestriction{models.DietaryVegan},
					TableID:             "tab1",
					PlusOne:             true,
					PlusOneName:         "Charles",
				},
			},
			Tables: []models.Table{{ID: "tab1", Name: "Family", Capacity: 8}},
		})
	})

	t.Run("vendors", func(t *testing.T) {
		doc := models.NewVendorDetails()
		doc.Vendors = []models.Vendor{
			{
				ID:       "v1",
				Name:     "Bloom",
				Category: models.VendorCategoryFlorist,
				Status:   models.VendorStatusHired,
				Contacts: []models.VendorContact{{Name: "Iris", Email: "iris@example.com"}},
				Quotes: []models.VendorQuote{
					{Amount: 1200, Description: "Centerpieces", Date: "2026-10-01", Status: models.QuoteStatusAccepted},
				},
				Rating: ptr(4.5),
			},
		}
		roundTrip(t, doc)
	})
}

func TestRoundTripEmptyLists(t *testing.T) {
	t.Run("guest restrictions", func(t *testing.T) {
		roundTrip(t, models.GuestDetails{
			Guests: []models.Guest{{ID: "g1", FirstName: "Ada", DietaryRestrictions: []models.DietaryRestriction{}}},
			Tables: []models.Table{},
		})
	})

	t.Run("task lists", func(t *testing.T) {
		doc := models.NewTimelineDetails()
		doc.Tasks = []models.TimelineTask{{ID: "t1", Title: "Rings", DependsOn: []string{}, AssignedTo: []string{}, Attachments: []string{}}}
		roundTrip(t, doc)
	})

	t.Run("vendor attachments", func(t *testing.T) {
		doc := models.NewVendorDetails()
		doc.Vendors = []models.Vendor{{ID: "v1", Name: "Bloom", Contacts: []models.VendorContact{}, Quotes: []models.VendorQuote{}, Attachments: []string{}}}
		roundTrip(t, doc)
	})

	t.Run("empty list is written", func(t *testing.T) {
		raw, err := Encode(models.Guest{ID: "g1", DietaryRestrictions: []models.DietaryRestriction{}})
		require.NoError(t, err)
		assert.Contains(t, raw, `"dietaryRestrictions":[]`)
	})
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode[models.BudgetDetails]("budget_details", "{not json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrParse))

	var parseErr *apperrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "budget_details", parseErr.Key)
}

func TestDecodeStaleDocument(t *testing.T) {
	// Older documents may omit optional fields entirely
	raw := `{"tasks":[{"id":"t1","title":"Send invites","category":"invitations","priority":"medium","status":"not_started","dueDate":"2027-03-01"}]}`

	doc, err := Decode[models.TimelineDetails]("timeline_details", raw)
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 1)
	assert.Empty(t, doc.Tasks[0].CompletedDate)
	assert.Nil(t, doc.Tasks[0].DependsOn)
	assert.Nil(t, doc.Categories)
}

func TestDecodeWrongShape(t *testing.T) {
	_, err := Decode[models.GuestDetails]("guest_details", `{"guests":"nope"}`)
	assert.ErrorIs(t, err, apperrors.ErrParse)
}
