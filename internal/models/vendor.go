package models

import "slices"

type VendorCategory string

const (
	VendorCategoryVenue          VendorCategory = "venue"
	VendorCategoryCatering       VendorCategory = "catering"
	VendorCategoryPhotography    VendorCategory = "photography"
	VendorCategoryVideography    VendorCategory = "videography"
	VendorCategoryFlorist        VendorCategory = "florist"
	VendorCategoryMusic          VendorCategory = "music"
	VendorCategoryCake           VendorCategory = "cake"
	VendorCategoryDecor          VendorCategory = "decor"
	VendorCategoryAttire         VendorCategory = "attire"
	VendorCategoryBeauty         VendorCategory = "beauty"
	VendorCategoryTransportation VendorCategory = "transportation"
	VendorCategoryOther          VendorCategory = "other"
)

// AllVendorCategories returns the vendor categories in their default display order.
func AllVendorCategories() []VendorCategory {
	return []VendorCategory{
		VendorCategoryVenue,
		VendorCategoryCatering,
		VendorCategoryPhotography,
		VendorCategoryVideography,
		VendorCategoryFlorist,
		VendorCategoryMusic,
		VendorCategoryCake,
		VendorCategoryDecor,
		VendorCategoryAttire,
		VendorCategoryBeauty,
		VendorCategoryTransportation,
		VendorCategoryOther,
	}
}

func (v VendorCategory) Valid() bool { return slices.Contains(AllVendorCategories(), v) }

func ParseVendorCategory(s string) (VendorCategory, error) {
	return parseEnum("vendor category", s, AllVendorCategories())
}

// VendorStatus follows researching → contacted → meeting_scheduled →
// proposal_received → hired | declined.
type VendorStatus string

const (
	VendorStatusResearching      VendorStatus = "researching"
	VendorStatusContacted        VendorStatus = "contacted"
	VendorStatusMeetingScheduled VendorStatus = "meeting_scheduled"
	VendorStatusProposalReceived VendorStatus = "proposal_received"
	VendorStatusHired            VendorStatus = "hired"
	VendorStatusDeclined         VendorStatus = "declined"
)

func AllVendorStatuses() []VendorStatus {
	return []VendorStatus{
		VendorStatusResearching,
		VendorStatusContacted,
		VendorStatusMeetingScheduled,
		VendorStatusProposalReceived,
		VendorStatusHired,
		VendorStatusDeclined,
	}
}

func (v VendorStatus) Valid() bool { return slices.Contains(AllVendorStatuses(), v) }

func ParseVendorStatus(s string) (VendorStatus, error) {
	return parseEnum("vendor status", s, AllVendorStatuses())
}

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

func AllQuoteStatuses() []QuoteStatus {
	return []QuoteStatus{QuoteStatusPending, QuoteStatusAccepted, QuoteStatusDeclined}
}

func (v QuoteStatus) Valid() bool { return slices.Contains(AllQuoteStatuses(), v) }

func ParseQuoteStatus(s string) (QuoteStatus, error) {
	return parseEnum("quote status", s, AllQuoteStatuses())
}

type VendorContact struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type VendorQuote struct {
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Status      QuoteStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
}

type Vendor struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    VendorCategory  `json:"category"`
	Status      VendorStatus    `json:"status"`
	Contacts    []VendorContact `json:"contacts"`
	Website     string          `json:"website,omitempty"`
	Instagram   string          `json:"instagram,omitempty"`
	Address     string          `json:"address,omitempty"`
	Description string          `json:"description,omitempty"`
	Quotes      []VendorQuote   `json:"quotes"`
	Rating      *float64        `json:"rating,omitempty"` // 0-5
	Notes       string          `json:"notes,omitempty"`
	Attachments []string        `json:"attachments"`
}

type VendorDetails struct {
	Vendors    []Vendor                           `json:"vendors"`
	Categories map[VendorCategory]CategorySetting `json:"categories"`
}

// NewVendorDetails returns the document written on first access.
func NewVendorDetails() VendorDetails {
	return VendorDetails{
		Vendors:    []Vendor{},
		Categories: defaultCategories(AllVendorCategories()),
	}
}

// VendorPatch carries the fields to overwrite; nil fields are left alone.
// ClearRating unsets the rating and wins over Rating.
type VendorPatch struct {
	Name        *string
	Category    *VendorCategory
	Status      *VendorStatus
	Contacts    *[]VendorContact
	Website     *string
	Instagram   *string
	Address     *string
	Description *string
	Quotes      *[]VendorQuote
	Rating      *float64
	Notes       *string
	Attachments *[]string
	ClearRating bool
}

func (p VendorPatch) Apply(v *Vendor) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.Contacts != nil {
		v.Contacts = slices.Clone(*p.Contacts)
	}
	if p.Website != nil {
		v.Website = *p.Website
	}
	if p.Instagram != nil {
		v.Instagram = *p.Instagram
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Quotes != nil {
		v.Quotes = slices.Clone(*p.Quotes)
	}
	if p.Rating != nil {
		r := *p.Rating
		v.Rating = &r
	}
	if p.Notes != nil {
		v.Notes = *p.Notes
	}
	if p.Attachments != nil {
		v.Attachments = slices.Clone(*p.Attachments)
	}
	if p.ClearRating {
		v.Rating = nil
	}
}
