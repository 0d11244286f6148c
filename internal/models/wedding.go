package models

// WeddingDetails is the singleton document holding the wedding date.
type WeddingDetails struct {
	WeddingDate string `json:"weddingDate"` // ISO-8601 timestamp or YYYY-MM-DD
}
