package personas

import "sort"

// SortRecentFirst orders a batch most-recent-first by CreatedAt. The
// trend detector reads positional halves of each author group, so every
// pass normalizes the batch ordering before grouping instead of trusting
// the loader's ORDER BY.
func SortRecentFirst(events []SentimentEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}

// GroupByAuthor partitions a batch by author token, preserving the
// batch's event order within each group. The returned token slice lists
// authors in order of first appearance, which downstream components use
// as the canonical profile iteration order. No eligibility filtering
// happens here.
func GroupByAuthor(events []SentimentEvent) (map[string][]SentimentEvent, []string) {
	groups := make(map[string][]SentimentEvent)
	var order []string

	for _, ev := range events {
		if _, seen := groups[ev.AuthorToken]; !seen {
			order = append(order, ev.AuthorToken)
		}
		groups[ev.AuthorToken] = append(groups[ev.AuthorToken], ev)
	}

	return groups, order
}

// GroupByRegion partitions a batch by region token. Events without a
// region land under UnknownRegion, so every event appears in exactly
// one region group.
func GroupByRegion(events []SentimentEvent) (map[string][]SentimentEvent, []string) {
	groups := make(map[string][]SentimentEvent)
	var order []string

	for _, ev := range events {
		region := ev.Region
		if region == "" {
			region = UnknownRegion
		}
		if _, seen := groups[region]; !seen {
			order = append(order, region)
		}
		groups[region] = append(groups[region], ev)
	}

	return groups, order
}
