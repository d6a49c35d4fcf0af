package analysis

import (
	"github.com/stayscope/stayscope/internal/model"
)

// ComputeStatistics derives the aggregate metrics over a filtered set.
// Averages are taken over the valid subset (price > 0) and are zero
// when that subset is empty.
func ComputeStatistics(listings []model.Listing) model.Statistics {
	stats := model.Statistics{TotalCount: len(listings)}

	var sumPrice, sumPricePerRoom float64
	for _, l := range listings {
		if l.Price <= 0 {
			continue
		}
		stats.Count++
		sumPrice += l.Price
		sumPricePerRoom += l.PricePerRoom()
	}

	if stats.Count > 0 {
		stats.AvgPricePerRoom = sumPricePerRoom / float64(stats.Count)
		stats.AvgPriceValidListings = sumPrice / float64(stats.Count)
	}

	return stats
}
