package models

import "fmt"

// Category classifies an expense group. The set is closed; anything that
// does not fit gets CategoryOther.
type Category string

const (
	CategoryTrip           Category = "Trip"
	CategoryDinner         Category = "Dinner"
	CategoryMovieTickets   Category = "Movie Tickets"
	CategoryRent           Category = "Rent"
	CategoryBills          Category = "Bills"
	CategoryGroceries      Category = "Groceries"
	CategoryTransportation Category = "Transportation"
	CategoryGift           Category = "Gift"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryTrip,
	CategoryDinner,
	CategoryMovieTickets,
	CategoryRent,
	CategoryBills,
	CategoryGroceries,
	CategoryTransportation,
	CategoryGift,
	CategoryOther,
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}
