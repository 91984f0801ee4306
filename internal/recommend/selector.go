package recommend

import "sort"

// Select ranks scored candidates and returns the top count under a diversity
// cap: no more than ceil(count/2) entries share one recommendation type
// unless the remaining candidates cannot otherwise fill the quota.
func Select(scored []Recommendation, count int) []Recommendation {
	if count < 1 || len(scored) == 0 {
		return []Recommendation{}
	}

	ranked := make([]Recommendation, len(scored))
	copy(ranked, scored)

	// Total, deterministic order: confidence desc, rating desc, id asc.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		if ranked[i].Route.AvgRating != ranked[j].Route.AvgRating {
			return ranked[i].Route.AvgRating > ranked[j].Route.AvgRating
		}
		return ranked[i].Route.ID < ranked[j].Route.ID
	})

	typeCap := (count + 1) / 2

	result := make([]Recommendation, 0, count)
	perType := make(map[Type]int)
	var skipped []Recommendation

	for _, rec := range ranked {
		if len(result) == count {
			break
		}
		if perType[rec.Type] >= typeCap {
			skipped = append(skipped, rec)
			continue
		}
		result = append(result, rec)
		perType[rec.Type]++
	}

	// The cap relaxes only when it would leave the quota unmet: backfill in
	// rank order from the candidates the cap skipped.
	for _, rec := range skipped {
		if len(result) == count {
			break
		}
		result = append(result, rec)
	}

	return result
}
