package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusPickedUp  RentalStatus = "PICKED_UP"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

// ActiveStatuses are the statuses counted against the
// one-active-rental-per-user rule.
var ActiveStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusConfirmed,
	RentalStatusPickedUp,
}

// StockHoldingStatuses are the statuses during which a rental holds a
// reserved inventory unit. OVERDUE holds a unit (the item is still out,
// just late) but does not count as active for booking purposes.
var StockHoldingStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusConfirmed,
	RentalStatusPickedUp,
	RentalStatusOverdue,
}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusConfirmed, RentalStatusPickedUp,
		RentalStatusReturned, RentalStatusCancelled, RentalStatusOverdue:
		return true
	}
	return false
}

func (s RentalStatus) Active() bool {
	return s == RentalStatusPending || s == RentalStatusConfirmed || s == RentalStatusPickedUp
}

func (s RentalStatus) Terminal() bool {
	return s == RentalStatusReturned || s == RentalStatusCancelled
}

// TransitionEffect describes the side effects of a legal status change.
// ReleasesStock means the rental's reserved inventory unit goes back to
// the product's available count; the transition engine must apply it
// exactly once, inside the same transaction that writes the new status.
type TransitionEffect struct {
	ReleasesStock bool
	StampsPickup  bool
	StampsReturn  bool
}

// transitions is the single source of truth for legal status changes
// and their inventory side effects. Release happens only on the edges
// leaving the stock-holding set; PICKED_UP -> OVERDUE keeps the unit out.
var transitions = map[RentalStatus]map[RentalStatus]TransitionEffect{
	RentalStatusPending: {
		RentalStatusConfirmed: {},
		RentalStatusCancelled: {ReleasesStock: true},
	},
	RentalStatusConfirmed: {
		RentalStatusPickedUp:  {StampsPickup: true},
		RentalStatusCancelled: {ReleasesStock: true},
	},
	RentalStatusPickedUp: {
		RentalStatusReturned: {StampsReturn: true, ReleasesStock: true},
		RentalStatusOverdue:  {},
	},
	RentalStatusOverdue: {
		RentalStatusReturned: {StampsReturn: true, ReleasesStock: true},
	},
}

// TransitionRule reports whether from -> to is a legal status change
// and, if so, its side effects.
func TransitionRule(from, to RentalStatus) (TransitionEffect, bool) {
	effect, ok := transitions[from][to]
	return effect, ok
}

type Rental struct {
	ID string `json:"id"`
	// Customer identity snapshot captured at booking time.
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalDays   int32     `json:"total_days"`
	// Price snapshot captured from the product at rental creation
	// time. Later price edits never affect an existing rental.
	PricePerDayCents int64        `json:"price_per_day_cents"`
	TotalPriceCents  int64        `json:"total_price_cents"`
	Status           RentalStatus `json:"status"`
	PickupDate       *time.Time   `json:"pickup_date,omitempty"`
	ReturnDate       *time.Time   `json:"return_date,omitempty"`
	Notes            string       `json:"notes"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}
