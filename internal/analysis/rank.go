package analysis

import (
	"sort"

	"github.com/stayscope/stayscope/internal/model"
)

// DefaultTopHosts is the ranking size when no limit is configured.
const DefaultTopHosts = 15

// RankHosts aggregates listing counts per host and returns up to limit
// entries ordered by descending count. Ties keep the order hosts were
// first encountered. A non-positive limit falls back to DefaultTopHosts.
func RankHosts(listings []model.Listing, limit int) []model.HostRanking {
	if limit <= 0 {
		limit = DefaultTopHosts
	}

	counts := make(map[string]int, len(listings))
	order := make([]string, 0, len(listings))
	for _, l := range listings {
		if _, seen := counts[l.HostID]; !seen {
			order = append(order, l.HostID)
		}
		counts[l.HostID]++
	}

	ranking := make([]model.HostRanking, 0, len(order))
	for _, hostID := range order {
		ranking = append(ranking, model.HostRanking{HostID: hostID, Count: counts[hostID]})
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}
