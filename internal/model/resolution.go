package model

// AliasMap maps every observed raw mention of one entity class to its
// canonical form. Canonicals map to themselves.
type AliasMap map[string]string

// Canonicals returns the number of distinct canonical values in the map
func (m AliasMap) Canonicals() int {
	seen := make(map[string]bool, len(m))
	for _, canonical := range m {
		seen[canonical] = true
	}
	return len(seen)
}

// Resolution is the persisted output of entity resolution: one alias map
// per entity class. Graph assembly reads this document; the resolver only
// writes it.
type Resolution struct {
	Bills         AliasMap `json:"bills"`
	Organizations AliasMap `json:"organizations"`
	Projects      AliasMap `json:"projects"`
}

// Aggregated holds the deduplicated raw mentions per entity class, the
// input to resolution. Dedup is exact and case-sensitive; normalization
// happens inside the resolver.
type Aggregated struct {
	Bills         []string
	Organizations []string
	Projects      []string
}
