// Package alphabet holds the read-only residue mass table used to label edges.
package alphabet

import (
	"fmt"
	"math"
	"os"
	"sort"

	"MS-Sequence-Tags/tag_generator/common"

	"gopkg.in/yaml.v3"
)

// Monoisotopic atomic masses.
const (
	MassH = 1.0078250321
	MassC = 12.0000000000
	MassN = 14.0030740052
	MassO = 15.9949146221
	MassS = 31.9720706900
)

// Composition is the elemental composition of a residue (peptide-bond form, water removed).
type Composition struct {
	C, H, N, O, S int
}

// Mass returns the monoisotopic mass of the composition.
func (c Composition) Mass() float64 {
	return float64(c.C)*MassC +
		float64(c.H)*MassH +
		float64(c.N)*MassN +
		float64(c.O)*MassO +
		float64(c.S)*MassS
}

// standardCompositions covers the 20 canonical amino acids. I and L are isobaric.
var standardCompositions = map[string]Composition{
	"A": {C: 3, H: 5, N: 1, O: 1},
	"R": {C: 6, H: 12, N: 4, O: 1},
	"N": {C: 4, H: 6, N: 2, O: 2},
	"D": {C: 4, H: 5, N: 1, O: 3},
	"C": {C: 3, H: 5, N: 1, O: 1, S: 1},
	"E": {C: 5, H: 7, N: 1, O: 3},
	"Q": {C: 5, H: 8, N: 2, O: 2},
	"G": {C: 2, H: 3, N: 1, O: 1},
	"H": {C: 6, H: 7, N: 3, O: 1},
	"I": {C: 6, H: 11, N: 1, O: 1},
	"L": {C: 6, H: 11, N: 1, O: 1},
	"K": {C: 6, H: 12, N: 2, O: 1},
	"M": {C: 5, H: 9, N: 1, O: 1, S: 1},
	"F": {C: 9, H: 9, N: 1, O: 1},
	"P": {C: 5, H: 7, N: 1, O: 1},
	"S": {C: 3, H: 5, N: 1, O: 2},
	"T": {C: 4, H: 7, N: 1, O: 2},
	"W": {C: 11, H: 10, N: 2, O: 1},
	"Y": {C: 9, H: 9, N: 1, O: 2},
	"V": {C: 5, H: 9, N: 1, O: 1},
}

// Residue is one alphabet entry.
type Residue struct {
	Code string
	Mass float64
}

// Alphabet is an immutable residue table, safe to share between goroutines.
// Entries are kept sorted by code so every lookup order is deterministic.
type Alphabet struct {
	residues []Residue
	byCode   map[string]float64
	maxMass  float64
}

// New builds an alphabet from a code -> monoisotopic mass map.
func New(masses map[string]float64) (*Alphabet, error) {
	if len(masses) == 0 {
		return nil, fmt.Errorf("%w: residue alphabet is empty", common.ErrInvalidArgument)
	}
	a := &Alphabet{
		residues: make([]Residue, 0, len(masses)),
		byCode:   make(map[string]float64, len(masses)),
	}
	for code, mass := range masses {
		if code == "" {
			return nil, fmt.Errorf("%w: residue with empty code", common.ErrInvalidArgument)
		}
		if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
			return nil, fmt.Errorf("%w: residue %q has invalid mass %v", common.ErrInvalidArgument, code, mass)
		}
		a.residues = append(a.residues, Residue{Code: code, Mass: mass})
		a.byCode[code] = mass
		a.maxMass = math.Max(a.maxMass, mass)
	}
	sort.Slice(a.residues, func(i, j int) bool {
		return a.residues[i].Code < a.residues[j].Code
	})
	return a, nil
}

// Standard returns the 20 canonical amino acids with masses computed from composition.
func Standard() *Alphabet {
	masses := make(map[string]float64, len(standardCompositions))
	for code, comp := range standardCompositions {
		masses[code] = comp.Mass()
	}
	a, err := New(masses)
	if err != nil {
		panic(err) // static table
	}
	return a
}

// file is the YAML layout of an alphabet file.
type file struct {
	Residues map[string]float64 `yaml:"residues"`
}

// Load reads an alphabet from a YAML file of the form `residues: {A: 71.03711, ...}`.
func Load(path string) (*Alphabet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: alphabet %s: %v", common.ErrInvalidArgument, path, err)
	}
	return New(f.Residues)
}

// Residues returns a copy of the entries, sorted by code.
func (a *Alphabet) Residues() []Residue {
	out := make([]Residue, len(a.residues))
	copy(out, a.residues)
	return out
}

// Mass looks up a residue mass by code.
func (a *Alphabet) Mass(code string) (float64, bool) {
	m, ok := a.byCode[code]
	return m, ok
}

// MaxMass is the heaviest residue mass; no single edge can span more than this plus tolerance.
func (a *Alphabet) MaxMass() float64 {
	return a.maxMass
}

// Len returns the number of residues.
func (a *Alphabet) Len() int {
	return len(a.residues)
}

// Each calls fn for every residue in code order without copying.
func (a *Alphabet) Each(fn func(Residue)) {
	for _, r := range a.residues {
		fn(r)
	}
}
