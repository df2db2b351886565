package selection

import (
	"math"
	"sort"

	"MS-Sequence-Tags/tag_generator/common"
)

// maxWindowIndex is the last window index whose start is still exact in float64.
const maxWindowIndex = 1 << 53

// Window is a half-open m/z interval [Start, End).
type Window struct {
	Start float64
	End   float64
}

// windowAt returns the i-th window of a tiling that starts at lo and advances by step.
// Starts are multiplied, not accumulated, so they do not drift.
func windowAt(lo, width, step float64, i int) Window {
	start := lo + float64(i)*step
	return Window{Start: start, End: start + width}
}

// LocalBackfill slides a window across the observed m/z range and, wherever fewer than
// minPeaks peaks are selected, selects the most intense unselected peaks inside it until
// the minimum is met or the window runs out of peaks.
// Peaks MUST be sorted by ascending m/z. The mask is only ever extended.
// Windows at the ends of the range are clipped to the observed peaks, never padded.
// Runs of empty windows are skipped, so the cost follows the peak count rather than the m/z span.
func LocalBackfill(peaks []common.Peak, mask common.SelectionMask, width, step float64, minPeaks int) {
	if len(peaks) == 0 || minPeaks <= 0 || width <= 0 || step <= 0 {
		return
	}
	lo, hi := peaks[0].MZ, peaks[len(peaks)-1].MZ

	for i := 0; i <= maxWindowIndex; i++ {
		w := windowAt(lo, width, step, i)
		if w.Start > hi {
			break
		}
		// Peak index range [first, last) inside the window
		first := sort.Search(len(peaks), func(j int) bool { return peaks[j].MZ >= w.Start })
		last := sort.Search(len(peaks), func(j int) bool { return peaks[j].MZ >= w.End })
		if first >= last {
			if first < len(peaks) {
				// Windows ending at or before peaks[first] are empty too.
				// Land one window early so rounding never skips a peak.
				next := math.Ceil((peaks[first].MZ-width-lo)/step) - 1
				if next > maxWindowIndex {
					break
				}
				if int(next) > i+1 {
					i = int(next) - 1
				}
			}
			continue
		}

		selected := 0
		var candidates []int
		for j := first; j < last; j++ {
			if mask[j] {
				selected++
			} else {
				candidates = append(candidates, j)
			}
		}
		if selected >= minPeaks || len(candidates) == 0 {
			continue
		}

		sort.Slice(candidates, func(a, b int) bool {
			return higherRank(peaks, candidates[a], candidates[b])
		})
		for _, idx := range candidates {
			if selected >= minPeaks {
				break
			}
			mask[idx] = true
			selected++
		}
	}
}
