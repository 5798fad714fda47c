package search

import (
	"sort"

	"github.com/Aleph-Alpha/discovery/v1/qdrant"
)

// Hit is one fused result.
type Hit struct {
	URN   string
	Score float64
}

// Fuse merges two rankings with weighted reciprocal rank fusion:
//
//	score = alpha/(k+rank_dense) + (1-alpha)/(k+rank_sparse)
//
// Ranks start at 1. A URN absent from one ranking gets no contribution from
// it. Ties are broken by URN so the order is stable.
func Fuse(dense, sparse []qdrant.SearchResult, k, alpha float64) []Hit {
	scores := make(map[string]float64, len(dense)+len(sparse))
	add := func(results []qdrant.SearchResult, weight float64) {
		seen := make(map[string]bool, len(results))
		rank := 0
		for _, r := range results {
			if r.URN == "" || seen[r.URN] {
				continue
			}
			seen[r.URN] = true
			rank++
			scores[r.URN] += weight / (k + float64(rank))
		}
	}
	add(dense, alpha)
	add(sparse, 1-alpha)

	hits := make([]Hit, 0, len(scores))
	for urn, score := range scores {
		hits = append(hits, Hit{URN: urn, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].URN < hits[j].URN
	})
	return hits
}
