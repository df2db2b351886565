package matching

import (
	"fmt"
	"math"
	"sort"

	"MS-Sequence-Tags/tag_generator/alphabet"
	"MS-Sequence-Tags/tag_generator/common"
	"MS-Sequence-Tags/tag_generator/config"
)

// BuildNode finds every selected peak heavier than source whose m/z difference matches a
// residue mass within tolerance and keeps the best maxEdges of them.
// selected MUST hold peak indices in ascending m/z order.
// Isobaric residues matching the same difference yield one edge each.
// A node without edges is a valid dead end.
func BuildNode(peaks []common.Peak, source int, selected []int, residues *alphabet.Alphabet,
	tol config.Tolerance, maxEdges int) (common.Node, error) {
	if maxEdges <= 0 {
		return common.Node{}, fmt.Errorf("%w: max edges per node must be positive, got %d", common.ErrInvalidArgument, maxEdges)
	}
	node := common.Node{Peak: source}
	srcMZ := peaks[source].MZ

	// First selected peak strictly heavier than the source
	start := sort.Search(len(selected), func(i int) bool { return peaks[selected[i]].MZ > srcMZ })

	var candidates []common.Edge
	for _, target := range selected[start:] {
		tgtMZ := peaks[target].MZ
		delta := tgtMZ - srcMZ
		window := tol.Window(tgtMZ)
		if delta > residues.MaxMass()+window { // Targets only get heavier from here
			break
		}
		residues.Each(func(r alphabet.Residue) {
			massErr := math.Abs(delta - r.Mass)
			if massErr <= window {
				candidates = append(candidates, common.Edge{
					Target:    target,
					Residue:   r.Code,
					Delta:     delta,
					MassError: massErr,
				})
			}
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].MassError != candidates[j].MassError {
			return candidates[i].MassError < candidates[j].MassError
		}
		if candidates[i].Target != candidates[j].Target {
			return candidates[i].Target < candidates[j].Target
		}
		return candidates[i].Residue < candidates[j].Residue
	})
	if len(candidates) > maxEdges {
		candidates = candidates[:maxEdges]
	}
	node.Edges = candidates
	return node, nil
}

// BuildNodes builds one node per selected peak, in ascending peak order.
func BuildNodes(peaks []common.Peak, mask common.SelectionMask, residues *alphabet.Alphabet,
	tol config.Tolerance, maxEdges int) ([]common.Node, error) {
	if len(mask) != len(peaks) {
		return nil, fmt.Errorf("%w: selection mask has %d entries for %d peaks", common.ErrInvalidArgument, len(mask), len(peaks))
	}
	selected := mask.Indices()
	nodes := make([]common.Node, 0, len(selected))
	for _, idx := range selected {
		node, err := BuildNode(peaks, idx, selected, residues, tol, maxEdges)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
