package common

import (
	"fmt"
	"math"
	"strings"
)

// ProtonMass is the monoisotopic mass of a proton, used to turn precursor m/z into neutral mass.
const ProtonMass = 1.00727646688

// Peak is a single (m/z, intensity) pair. Immutable once loaded.
type Peak struct {
	MZ        float64
	Intensity float64
}

// Precursor describes the parent ion selected for fragmentation.
type Precursor struct {
	MZ     float64
	Charge int // 0 when unknown
}

// Spectrum is an MS/MS spectrum. Peaks MUST be sorted by ascending MZ.
// The tag generator borrows it and never modifies it.
type Spectrum struct {
	Title     string
	Peaks     []Peak
	Precursor Precursor
	MSLevel   int
}

// ArePeaksSorted checks that peaks are in non-decreasing m/z order.
func (s *Spectrum) ArePeaksSorted() bool {
	for i := 1; i < len(s.Peaks); i++ {
		if s.Peaks[i].MZ < s.Peaks[i-1].MZ {
			return false
		}
	}
	return true
}

// Validate checks the spectrum shape the tag generator relies on.
// Returned errors wrap ErrInvalidArgument.
func (s *Spectrum) Validate() error {
	var problems []string
	for i, p := range s.Peaks {
		if math.IsNaN(p.MZ) || math.IsInf(p.MZ, 0) {
			problems = append(problems, fmt.Sprintf("peak %d has invalid m/z", i))
		}
		if math.IsNaN(p.Intensity) || math.IsInf(p.Intensity, 0) {
			problems = append(problems, fmt.Sprintf("peak %d has invalid intensity", i))
		}
	}
	if !s.ArePeaksSorted() {
		problems = append(problems, "peaks must be sorted by ascending m/z")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: spectrum %q: %s", ErrInvalidArgument, s.Title, strings.Join(problems, "; "))
	}
	return nil
}

// NeutralMass returns the uncharged precursor mass.
// Unknown charge counts as 1; a missing precursor m/z falls back to the heaviest peak.
func (s *Spectrum) NeutralMass() float64 {
	charge := s.Precursor.Charge
	if charge <= 0 {
		charge = 1
	}
	if s.Precursor.MZ > 0 {
		return (s.Precursor.MZ - ProtonMass) * float64(charge)
	}
	if len(s.Peaks) == 0 {
		return 0
	}
	return s.Peaks[len(s.Peaks)-1].MZ
}

// SelectionMask has one flag per peak index in the original spectrum.
// Flags only ever go from false to true.
type SelectionMask []bool

// Count returns the number of selected peaks.
func (m SelectionMask) Count() int {
	n := 0
	for _, sel := range m {
		if sel {
			n++
		}
	}
	return n
}

// Indices returns the selected peak indices in ascending order.
func (m SelectionMask) Indices() []int {
	indices := make([]int, 0, m.Count())
	for i, sel := range m {
		if sel {
			indices = append(indices, i)
		}
	}
	return indices
}

// Edge connects a source peak to a heavier Target peak whose m/z differs by one residue mass.
type Edge struct {
	Target    int     // Original peak index of the heavier peak
	Residue   string  // Residue code, e.g. "A"
	Delta     float64 // Observed m/z difference target - source
	MassError float64 // |Delta - residue mass|
}

// Node holds the outgoing edges of one selected peak, best (lowest MassError) first.
type Node struct {
	Peak  int
	Edges []Edge
}

// TagRecord is one enumerated path. Len(Residues) == len(MassDeltas) always.
type TagRecord struct {
	StartPeak  int
	StartMZ    float64
	EndPeak    int
	Score      float64
	Residues   []string
	MassDeltas []float64
}

// Sequence concatenates the residue codes.
func (t TagRecord) Sequence() string {
	return strings.Join(t.Residues, "")
}

// Len returns the number of residues in the tag.
func (t TagRecord) Len() int {
	return len(t.Residues)
}

// EndMZ returns StartMZ plus the sum of the mass deltas.
func (t TagRecord) EndMZ() float64 {
	mz := t.StartMZ
	for _, d := range t.MassDeltas {
		mz += d
	}
	return mz
}
