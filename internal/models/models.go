package models

import "time"

// Store is a retail store as read from the datastore.
// Optional columns are pointers: nil means the field was never set.
type Store struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	PostalCode  *string `json:"postalCode"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Website     *string `json:"website"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
}

// Promotion is an offer published by a store.
// A nil EndDate means the promotion never expires; nil Priority sorts last.
type Promotion struct {
	ID          int64      `json:"id"`
	StoreID     int64      `json:"storeId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Priority    *int       `json:"priority"`
}

// Province is one row of the province reference table.
type Province struct {
	Name   string `json:"name"`   // full name, e.g. "Roma"
	Code   string `json:"code"`   // two-letter abbreviation, e.g. "RM"
	Region string `json:"region"` // parent region, e.g. "Lazio"
}

// SearchResult is the response body of a store search.
type SearchResult struct {
	Stores     []Store `json:"stores"`
	Count      int     `json:"count"`
	PostalCode string  `json:"postalCode,omitempty"` // postal code the location filter used, if any
}

// PromotionList is the response body of the promotion endpoints.
type PromotionList struct {
	Promotions []Promotion `json:"promotions"`
	Count      int         `json:"count"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// StringPtr returns a pointer to s. Handy for building fixtures.
func StringPtr(s string) *string {
	return &s
}
