package graph

import (
	"fmt"

	"MS-Sequence-Tags/tag_generator/common"
)

// TagGraph is a directed acyclic graph over selected peaks.
// Every edge runs from a lower to a strictly higher m/z, which is what keeps it acyclic;
// no cycle check is done at runtime.
type TagGraph struct {
	peaks []common.Peak
	nodes []common.Node // In ascending peak index order
	index map[int]int   // Original peak index -> position in nodes
}

// Assemble indexes nodes by their original peak index.
// Nodes MUST come from matching.BuildNodes (or respect its contract).
// Built with -tags tagdebug, the m/z direction of every edge is asserted.
func Assemble(peaks []common.Peak, nodes []common.Node) (*TagGraph, error) {
	g := &TagGraph{
		peaks: peaks,
		nodes: nodes,
		index: make(map[int]int, len(nodes)),
	}
	for pos, n := range nodes {
		if n.Peak < 0 || n.Peak >= len(peaks) {
			return nil, fmt.Errorf("%w: node for peak %d outside spectrum of %d peaks", common.ErrInvalidArgument, n.Peak, len(peaks))
		}
		if _, dup := g.index[n.Peak]; dup {
			return nil, fmt.Errorf("%w: duplicate node for peak %d", common.ErrInvalidArgument, n.Peak)
		}
		g.index[n.Peak] = pos
	}
	if debugAssertions {
		g.assertAscending()
	}
	return g, nil
}

// Neighbors returns the best-first outgoing edges of a peak, or nil when the peak has no node.
// The returned slice is shared with the graph and must not be modified.
func (g *TagGraph) Neighbors(peak int) []common.Edge {
	pos, ok := g.index[peak]
	if !ok {
		return nil
	}
	return g.nodes[pos].Edges
}

// HasNode reports whether a peak was selected into the graph.
func (g *TagGraph) HasNode(peak int) bool {
	_, ok := g.index[peak]
	return ok
}

// Nodes returns the peak indices that have a node, ascending.
func (g *TagGraph) Nodes() []int {
	out := make([]int, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n.Peak)
	}
	return out
}

// EdgeCount returns the total number of edges.
func (g *TagGraph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.Edges)
	}
	return total
}

// Peak returns the spectrum peak at an original index.
func (g *TagGraph) Peak(i int) common.Peak {
	return g.peaks[i]
}

// checkEdge panics when an edge does not climb in m/z. That can only happen through a bug.
func (g *TagGraph) checkEdge(from int, e common.Edge) {
	if e.Target < 0 || e.Target >= len(g.peaks) || g.peaks[e.Target].MZ <= g.peaks[from].MZ {
		panic(fmt.Errorf("%w: edge %d->%d does not ascend in m/z", common.ErrInvariantViolation, from, e.Target))
	}
}

func (g *TagGraph) assertAscending() {
	for _, n := range g.nodes {
		for _, e := range n.Edges {
			g.checkEdge(n.Peak, e)
		}
	}
}
