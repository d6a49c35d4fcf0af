// Package analysis implements the pure transformation pipeline over
// normalized listings: filtering, summary statistics, and host ranking.
package analysis

import (
	"github.com/stayscope/stayscope/internal/model"
)

// Filter returns the order-preserving subsequence of listings that
// satisfy every set bound of the criteria. Unset bounds impose no
// constraint.
func Filter(listings []model.Listing, criteria model.FilterCriteria) []model.Listing {
	filtered := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if criteria.Matches(l) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
