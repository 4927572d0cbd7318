package resolve

import (
	"sort"

	"github.com/opencivics/civigraph/internal/model"
)

// DefaultThreshold is the fuzzy merge threshold applied to both
// organizations and projects in production runs.
const DefaultThreshold = 0.85

// ResolveBills partitions raw bill identifiers by their normalized form.
// Unlike the fuzzy path, the canonical is the normalized form itself, not
// one of the raw inputs: every raw form maps to its group's normalized ID
// and the normalized ID maps to itself.
func ResolveBills(rawIDs []string) model.AliasMap {
	groups := make(map[string][]string)
	for _, id := range rawIDs {
		normalized := NormalizeBillID(id)
		groups[normalized] = append(groups[normalized], id)
	}

	lookup := make(model.AliasMap, len(rawIDs))
	for canonical, forms := range groups {
		lookup[canonical] = canonical
		for _, form := range forms {
			lookup[form] = canonical
		}
	}
	return lookup
}

// ResolveFuzzy clusters raw entity names with greedy single-link
// clustering and returns the alias map. Input is deduplicated and sorted
// lexicographically first; the ordering is load-bearing, since the
// earliest unprocessed member of a similar pair becomes the canonical and
// the sort makes the partition reproducible regardless of input order.
//
// This is a single pass, not transitive closure: once a name is claimed by
// an earlier canonical it is never re-evaluated against a later one. The
// result can be locally suboptimal but is always deterministic, and every
// name lands in exactly one cluster.
func ResolveFuzzy(rawNames []string, threshold float64) model.AliasMap {
	names := dedupeSorted(rawNames)

	processed := make(map[string]bool, len(names))
	lookup := make(model.AliasMap, len(names))

	for i, name := range names {
		if processed[name] {
			continue
		}
		lookup[name] = name
		processed[name] = true

		for _, other := range names[i+1:] {
			if processed[other] {
				continue
			}
			if Score(name, other) >= threshold {
				lookup[other] = name
				processed[other] = true
			}
		}
	}
	return lookup
}

// ResolveAll runs resolution over all three entity classes: bills by
// exact structural normalization, organizations and projects by fuzzy
// clustering at the given threshold.
func ResolveAll(agg *model.Aggregated, threshold float64) *model.Resolution {
	return &model.Resolution{
		Bills:         ResolveBills(agg.Bills),
		Organizations: ResolveFuzzy(agg.Organizations, threshold),
		Projects:      ResolveFuzzy(agg.Projects, threshold),
	}
}

// dedupeSorted returns the distinct values in lexicographic order
func dedupeSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	sort.Strings(unique)
	return unique
}
