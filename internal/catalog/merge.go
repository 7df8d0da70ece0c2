// Package catalog implements the pure merge operation on the post catalog.
package catalog

import (
	"fmt"
	"sort"
	"time"

	"post_catalog/internal/domain"
)

// Merge appends every candidate whose slug is not already present, then
// re-sorts the whole sequence by date descending. Existing records are never
// mutated or removed; duplicates are skipped silently. The sort is stable, so
// records sharing a date keep their prior relative order.
//
// Every record's date, existing or candidate, must parse as YYYY-MM-DD; a
// malformed date aborts the merge and nothing is returned.
func Merge(existing, candidates []domain.Post) (merged, added []domain.Post, err error) {
	merged = make([]domain.Post, len(existing), len(existing)+len(candidates))
	copy(merged, existing)

	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p.Slug] = struct{}{}
	}

	for _, c := range candidates {
		if _, ok := seen[c.Slug]; ok {
			continue
		}
		seen[c.Slug] = struct{}{}
		merged = append(merged, c)
		added = append(added, c)
	}

	type dated struct {
		post domain.Post
		date time.Time
	}
	ordered := make([]dated, len(merged))
	for i := range merged {
		d, err := merged[i].ParseDate()
		if err != nil {
			return nil, nil, fmt.Errorf("merge: %w", err)
		}
		ordered[i] = dated{post: merged[i], date: d}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].date.After(ordered[j].date)
	})

	for i := range ordered {
		merged[i] = ordered[i].post
	}

	return merged, added, nil
}
