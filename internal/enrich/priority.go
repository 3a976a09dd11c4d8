package enrich

import "sort"

// Priority scoring constants. A currently-reading cluster must always land
// inside the provider quota, so its bonus dwarfs any popularity signal.
const (
	currentlyReadingBonus = 1_000_000
	clubAppearanceBonus   = 500
)

// priorityScore ranks a cluster for provider-quota allocation: currently-
// reading picks first, then total member reach plus a bonus per distinct
// club.
func priorityScore(c *cluster) int {
	score := 0
	clubs := make(map[string]struct{})
	for _, m := range c.mentions {
		if m.CurrentlyReading() {
			score = currentlyReadingBonus
		}
		clubs[m.ClubName] = struct{}{}
	}
	for _, m := range c.mentions {
		score += m.MemberCount
	}
	return score + len(clubs)*clubAppearanceBonus
}

// sortByPriority orders clusters descending by priority score, with the
// cluster key as a deterministic tie-break.
func sortByPriority(clusters []*cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		si, sj := priorityScore(clusters[i]), priorityScore(clusters[j])
		if si != sj {
			return si > sj
		}
		return clusters[i].key < clusters[j].key
	})
}

// sliceBudget splits a priority-sorted cluster list into the top quota
// clusters that get provider lookups and the remainder that keep raw
// title/author.
func sliceBudget(sorted []*cluster, quota int) (toFetch, remainder []*cluster) {
	if quota < 0 {
		quota = 0
	}
	if quota > len(sorted) {
		quota = len(sorted)
	}
	return sorted[:quota], sorted[quota:]
}
