package resolve

import "strings"

// Similarity tiers. Exact matches after normalization score 1.0 and
// containment scores a flat 0.85 rather than a combined edit-distance
// score, so short-vs-long pairs like "Finance" / "Department of Finance"
// are not penalized for the length difference.
const (
	scoreExact       = 1.0
	scoreContainment = 0.85
)

// Score computes a similarity score in [0,1] between two raw strings.
// Both operands are normalized identically, so the result is symmetric.
func Score(a, b string) float64 {
	na, nb := NormalizeText(a), NormalizeText(b)

	if na == nb {
		return scoreExact
	}
	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		return scoreContainment
	}
	return ratio(na, nb)
}

// ratio is the Ratcliff/Obershelp similarity ratio: twice the total number
// of matching characters over the combined length, with matches found by
// recursively locating the longest common block.
func ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return scoreExact
	}
	return 2 * float64(matchingChars(a, b)) / float64(total)
}

// matchingChars counts characters covered by the recursive longest-block
// alignment of a and b.
func matchingChars(a, b string) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common contiguous block between a
// and b, returning its start offsets and length. Ties resolve to the
// earliest block in a, then in b.
func longestCommonBlock(a, b string) (bestA, bestB, bestSize int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] holds the length of the common suffix ending at a[i], b[j]
	// for the current row i.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] == b[j] {
				cur[j+1] = prev[j] + 1
				if cur[j+1] > bestSize {
					bestSize = cur[j+1]
					bestA = i - bestSize + 1
					bestB = j - bestSize + 1
				}
			} else {
				cur[j+1] = 0
			}
		}
		prev, cur = cur, prev
	}

	return bestA, bestB, bestSize
}
