// Package selection picks the working subset of peaks the tag graph is built on.
package selection

import (
	"math"
	"sort"

	"MS-Sequence-Tags/tag_generator/common"
)

// TargetCount returns how many peaks the global pass keeps for a precursor of the given
// neutral mass: ceil(density * mass / 100), never below minPeaks.
// Counts too large for an int saturate at math.MaxInt.
func TargetCount(neutralMass, density float64, minPeaks int) int {
	n := 0
	if neutralMass > 0 && density > 0 {
		target := math.Ceil(density * neutralMass / 100.0)
		if target >= math.MaxInt {
			n = math.MaxInt
		} else {
			n = int(target)
		}
	}
	if n < minPeaks {
		n = minPeaks
	}
	return n
}

// GlobalSelect keeps the n most intense peaks spectrum-wide.
// Ties are broken by lower m/z, then lower index, so the result is deterministic.
// Spectra with at most n peaks are kept whole.
func GlobalSelect(peaks []common.Peak, n int) common.SelectionMask {
	mask := make(common.SelectionMask, len(peaks))
	if n <= 0 {
		return mask
	}
	if len(peaks) <= n {
		for i := range mask {
			mask[i] = true
		}
		return mask
	}

	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { // Most intense first
		return higherRank(peaks, order[a], order[b])
	})
	for _, idx := range order[:n] {
		mask[idx] = true
	}
	return mask
}

// higherRank reports whether peak i outranks peak j.
func higherRank(peaks []common.Peak, i, j int) bool {
	if peaks[i].Intensity != peaks[j].Intensity {
		return peaks[i].Intensity > peaks[j].Intensity
	}
	if peaks[i].MZ != peaks[j].MZ {
		return peaks[i].MZ < peaks[j].MZ
	}
	return i < j
}
