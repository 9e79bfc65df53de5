package util

// SimilarityRatio calculates a similarity ratio between two strings based on
// their longest common subsequence: 2*LCS(a,b) / (len(a)+len(b)).
// The result is in [0.0, 1.0]; identical strings score 1.0, strings with no
// characters in common score 0.0. Comparison is case-sensitive; callers that
// need case-insensitive matching should lowercase both sides first.
func SimilarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)

	// Single-row DP over the LCS table
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}
