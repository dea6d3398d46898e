package utils

import (
	"fmt"
	"math"
	"time"

	"rentio-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a UTC date.
func ParseDate(dateStr string) (time.Time, error) {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected yyyy-mm-dd", domain.ErrInvalidDateRange)
	}
	return d, nil
}

// TotalDays computes the billable duration of a rental as
// ceil(endDate - startDate) in days, minimum 1. The end date must be
// strictly after the start date.
func TotalDays(startDate, endDate time.Time) (int32, error) {
	if !endDate.After(startDate) {
		return 0, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidDateRange)
	}
	days := int32(math.Ceil(endDate.Sub(startDate).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// TotalPriceCents computes the rental price from the per-day snapshot.
func TotalPriceCents(totalDays int32, pricePerDayCents int64) int64 {
	return int64(totalDays) * pricePerDayCents
}
