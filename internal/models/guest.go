package models

import "slices"

type AgeRange string

const (
	AgeRangeAdult  AgeRange = "adult"
	AgeRangeChild  AgeRange = "child"
	AgeRangeInfant AgeRange = "infant"
)

func AllAgeRanges() []AgeRange {
	return []AgeRange{AgeRangeAdult, AgeRangeChild, AgeRangeInfant}
}

func (v AgeRange) Valid() bool { return slices.Contains(AllAgeRanges(), v) }

func ParseAgeRange(s string) (AgeRange, error) {
	return parseEnum("age range", s, AllAgeRanges())
}

type GuestStatus string

const (
	GuestStatusInvited   GuestStatus = "invited"
	GuestStatusConfirmed GuestStatus = "confirmed"
	GuestStatusDeclined  GuestStatus = "declined"
	GuestStatusMaybe     GuestStatus = "maybe"
)

func AllGuestStatuses() []GuestStatus {
	return []GuestStatus{GuestStatusInvited, GuestStatusConfirmed, GuestStatusDeclined, GuestStatusMaybe}
}

func (v GuestStatus) Valid() bool { return slices.Contains(AllGuestStatuses(), v) }

func ParseGuestStatus(s string) (GuestStatus, error) {
	return parseEnum("guest status", s, AllGuestStatuses())
}

type DietaryRestriction string

const (
	DietaryNone       DietaryRestriction = "none"
	DietaryVegetarian DietaryRestriction = "vegetarian"
	DietaryVegan      DietaryRestriction = "vegan"
	DietaryGlutenFree DietaryRestriction = "gluten_free"
	DietaryOther      DietaryRestriction = "other"
)

func AllDietaryRestrictions() []DietaryRestriction {
	return []DietaryRestriction{DietaryNone, DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryOther}
}

func (v DietaryRestriction) Valid() bool { return slices.Contains(AllDietaryRestrictions(), v) }

func ParseDietaryRestriction(s string) (DietaryRestriction, error) {
	return parseEnum("dietary restriction", s, AllDietaryRestrictions())
}

type Guest struct {
	ID                  string               `json:"id"`
	FirstName           string               `json:"firstName"`
	LastName            string               `json:"lastName"`
	AgeRange            AgeRange             `json:"ageRange"`
	Status              GuestStatus          `json:"status"`
	Email               string               `json:"email,omitempty"`
	Phone               string               `json:"phone,omitempty"`
	DietaryRestrictions []DietaryRestriction `json:"dietaryRestrictions"`
	AdditionalNotes     string               `json:"additionalNotes,omitempty"`
	TableID             string               `json:"tableId,omitempty"`
	PlusOne             bool                 `json:"plusOne,omitempty"`
	PlusOneName         string               `json:"plusOneName,omitempty"`
}

// FullName joins first and last name for display.
func (g Guest) FullName() string {
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

type Table struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type GuestDetails struct {
	Guests []Guest `json:"guests"`
	Tables []Table `json:"tables"`
}

// NewGuestDetails returns the document written on first access.
func NewGuestDetails() GuestDetails {
	return GuestDetails{Guests: []Guest{}, Tables: []Table{}}
}

// GuestPatch carries the fields to overwrite. A TableID pointing at "" unassigns the guest.
type GuestPatch struct {
	FirstName           *string
	LastName            *string
	AgeRange            *AgeRange
	Status              *GuestStatus
	Email               *string
	Phone               *string
	DietaryRestrictions *[]DietaryRestriction
	AdditionalNotes     *string
	TableID             *string
	PlusOne             *bool
	PlusOneName         *string
}

func (p GuestPatch) Apply(g *Guest) {
	if p.FirstName != nil {
		g.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		g.LastName = *p.LastName
	}
	if p.AgeRange != nil {
		g.AgeRange = *p.AgeRange
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.Email != nil {
		g.Email = *p.Email
	}
	if p.Phone != nil {
		g.Phone = *p.Phone
	}
	if p.DietaryRestrictions != nil {
		g.DietaryRestrictions = slices.Clone(*p.DietaryRestrictions)
	}
	if p.AdditionalNotes != nil {
		g.AdditionalNotes = *p.AdditionalNotes
	}
	if p.TableID != nil {
		g.TableID = *p.TableID
	}
	if p.PlusOne != nil {
		g.PlusOne = *p.PlusOne
	}
	if p.PlusOneName != nil {
		g.PlusOneName = *p.PlusOneName
	}
}

// TablePatch carries the fields to overwrite on a table.
type TablePatch struct {
	Name     *string
	Capacity *int
	Location *string
	Notes    *string
}

func (p TablePatch) Apply(t *Table) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}
