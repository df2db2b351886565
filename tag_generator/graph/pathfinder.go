package graph

import (
	"context"
	"fmt"
	"math"

	"MS-Sequence-Tags/tag_generator/common"
	"MS-Sequence-Tags/tag_generator/config"
)

// ctxCheckInterval is how many stack steps run between context checks.
const ctxCheckInterval = 1024

// Options bound and score an enumeration.
type Options struct {
	Depth      int // Residues per tag; paths stop early only at dead ends
	MaxResults int // 0 = unbounded
	Score      config.ScoreConfig
}

// Result holds the emitted tags in emission order.
// Truncated is set when MaxResults stopped the enumeration before it was done.
type Result struct {
	Tags      []common.TagRecord
	Truncated bool
}

// frame is one stack entry of the depth-first walk.
type frame struct {
	peak int
	next int // Next outgoing edge to follow
}

// Enumerate walks the graph from every node in ascending peak order.
func Enumerate(ctx context.Context, g *TagGraph, opts Options) (Result, error) {
	return EnumerateFrom(ctx, g, g.Nodes(), opts)
}

// EnumerateFrom emits one tag per distinct path of opts.Depth edges starting at each of the
// given peaks, or a shorter one where a path runs into a dead end. Peaks without a node are skipped.
// The walk is iterative with an explicit stack and follows edges best first.
// Termination is guaranteed because every edge climbs in m/z.
// If ctx is cancelled the tags found so far are returned together with ctx.Err().
func EnumerateFrom(ctx context.Context, g *TagGraph, starts []int, opts Options) (Result, error) {
	var res Result
	if opts.Depth <= 0 {
		return res, fmt.Errorf("%w: enumeration depth must be positive, got %d", common.ErrInvalidArgument, opts.Depth)
	}

	steps := 0
	stack := make([]frame, 0, opts.Depth+1)
	path := make([]common.Edge, 0, opts.Depth) // len(path) == len(stack)-1

	for _, start := range starts {
		if !g.HasNode(start) {
			continue
		}
		stack = append(stack[:0], frame{peak: start})
		path = path[:0]

		for len(stack) > 0 {
			steps++
			if steps%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return res, err
				}
			}

			top := &stack[len(stack)-1]
			edges := g.Neighbors(top.peak)
			depth := len(stack) - 1

			if top.next == 0 && depth > 0 && (depth == opts.Depth || len(edges) == 0) {
				if opts.MaxResults > 0 && len(res.Tags) >= opts.MaxResults {
					res.Truncated = true
					return res, nil
				}
				res.Tags = append(res.Tags, newTag(g, start, path, opts.Score))
				stack = stack[:len(stack)-1]
				path = path[:len(stack)-1]
				continue
			}

			if top.next >= len(edges) { // Exhausted
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					path = path[:len(stack)-1]
				}
				continue
			}

			e := edges[top.next]
			top.next++
			g.checkEdge(top.peak, e)
			path = append(path, e)
			stack = append(stack, frame{peak: e.Target})
		}
	}
	return res, nil
}

// newTag copies the current path into an immutable record.
func newTag(g *TagGraph, start int, path []common.Edge, sc config.ScoreConfig) common.TagRecord {
	tag := common.TagRecord{
		StartPeak:  start,
		StartMZ:    g.Peak(start).MZ,
		EndPeak:    path[len(path)-1].Target,
		Residues:   make([]string, len(path)),
		MassDeltas: make([]float64, len(path)),
	}
	for i, e := range path {
		tag.Residues[i] = e.Residue
		tag.MassDeltas[i] = e.Delta
	}
	tag.Score = Score(g.Peak(start).Intensity, path, sc)
	return tag
}

// Score rates a path: a base from the start peak intensity, then per edge a bonus minus a
// penalty proportional to its mass error. Lower errors always score higher.
func Score(startIntensity float64, path []common.Edge, sc config.ScoreConfig) float64 {
	base := math.Max(startIntensity, 0)
	if sc.LogIntensity {
		base = math.Log1p(base)
	}
	score := sc.IntensityWeight * base
	for _, e := range path {
		score += sc.EdgeBonus - sc.ErrorPenalty*e.MassError
	}
	return score
}
