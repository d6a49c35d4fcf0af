// Package model defines the core types shared across the application.
package model

// Listing represents a single normalized Airbnb listing row.
type Listing struct {
	// Fields holds every original CSV column (including the normalized
	// ones, written back as strings) keyed by header name.
	Fields map[string]string

	// Columns is the header order of the source file. All listings from
	// one load share the same backing slice.
	Columns []string

	HostID             string
	Price              float64
	ReviewScoresRating float64
	Accommodates       int
}

// PricePerRoom returns the nightly price divided by guest capacity.
// Accommodates is always positive after normalization.
func (l Listing) PricePerRoom() float64 {
	return l.Price / float64(l.Accommodates)
}

// FilterCriteria holds the optional numeric bounds supplied by the user.
// A nil bound imposes no constraint; zero is a valid, active bound.
type FilterCriteria struct {
	MinPrice       *float64
	MaxPrice       *float64
	MinRooms       *int
	MaxRooms       *int
	MinReviewScore *float64
}

// IsEmpty reports whether no bound is set.
func (c FilterCriteria) IsEmpty() bool {
	return c.MinPrice == nil && c.MaxPrice == nil &&
		c.MinRooms == nil && c.MaxRooms == nil && c.MinReviewScore == nil
}

// Matches reports whether a listing satisfies every set bound.
func (c FilterCriteria) Matches(l Listing) bool {
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.MinRooms != nil && l.Accommodates < *c.MinRooms {
		return false
	}
	if c.MaxRooms != nil && l.Accommodates > *c.MaxRooms {
		return false
	}
	if c.MinReviewScore != nil && l.ReviewScoresRating < *c.MinReviewScore {
		return false
	}
	return true
}

// Statistics holds the aggregate metrics computed over a filtered set.
// "Valid" listings are those with a price above zero; both averages are
// zero when there are no valid listings.
type Statistics struct {
	TotalCount            int
	Count                 int
	AvgPricePerRoom       float64
	AvgPriceValidListings float64
}

// HostRanking is one entry of the hosts-by-listing-count ranking.
type HostRanking struct {
	HostID string
	Count  int
}
