package domain

import "time"

// Product is a rentable catalog item. Stock accounting invariant:
// 0 <= AvailableStock <= Stock at all times. AvailableStock is mutated
// only through the inventory operations on the product repository
// (TryReserve, Release, AdjustTotalStock), never by plain updates.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	Stock            int32     `json:"stock"`
	AvailableStock   int32     `json:"available_stock"`
	IsRentable       bool      `json:"is_rentable"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}
