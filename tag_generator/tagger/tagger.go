// Package tagger runs the tag pipeline on a spectrum:
// peak selection, node building, graph assembly, enumeration.
package tagger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"MS-Sequence-Tags/tag_generator/alphabet"
	"MS-Sequence-Tags/tag_generator/common"
	"MS-Sequence-Tags/tag_generator/config"
	"MS-Sequence-Tags/tag_generator/graph"
	"MS-Sequence-Tags/tag_generator/matching"
	"MS-Sequence-Tags/tag_generator/merging"
	"MS-Sequence-Tags/tag_generator/selection"
)

// Generator turns spectra into sequence tags.
// It holds only read-only state and is safe for concurrent use.
type Generator struct {
	residues *alphabet.Alphabet
	cfg      config.Config
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for per-spectrum diagnostics. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New validates the configuration up front so bad settings fail before any spectrum is read.
func New(residues *alphabet.Alphabet, cfg config.Config, opts ...Option) (*Generator, error) {
	if residues == nil || residues.Len() == 0 {
		return nil, fmt.Errorf("%w: residue alphabet is required", common.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		residues: residues,
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the validated configuration.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Output is the result for one spectrum.
type Output struct {
	Selected  int // Peaks kept by selection
	Edges     int // Edges in the assembled graph
	Tags      []common.TagRecord
	Truncated bool // MaxTagResults stopped enumeration early
}

// Generate runs the full pipeline on one spectrum.
// An invalid spectrum fails with common.ErrInvalidArgument before any graph work; zero tags is not an error.
func (g *Generator) Generate(ctx context.Context, spec *common.Spectrum) (Output, error) {
	var out Output
	if spec == nil {
		return out, fmt.Errorf("%w: nil spectrum", common.ErrInvalidArgument)
	}
	if err := spec.Validate(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	start := time.Now()

	mask := selection.Select(spec, g.cfg)
	out.Selected = mask.Count()

	nodes, err := matching.BuildNodes(spec.Peaks, mask, g.residues, g.cfg.Tolerance, g.cfg.MaxEdgesPerNode)
	if err != nil {
		return out, err
	}
	tg, err := graph.Assemble(spec.Peaks, nodes)
	if err != nil {
		return out, err
	}
	out.Edges = tg.EdgeCount()

	res, err := graph.Enumerate(ctx, tg, graph.Options{
		Depth:      g.cfg.Depth,
		MaxResults: g.cfg.MaxTagResults,
		Score:      g.cfg.Score,
	})
	out.Tags = res.Tags
	out.Truncated = res.Truncated
	if err != nil {
		return out, err
	}
	if g.cfg.MergeDuplicates {
		out.Tags = merging.MergeDuplicateTags(out.Tags)
	}

	if out.Truncated {
		g.logger.Warn("tag enumeration truncated",
			"spectrum", spec.Title,
			"max_tag_results", g.cfg.MaxTagResults)
	}
	g.logger.Debug("tags generated",
		"spectrum", spec.Title,
		"peaks", len(spec.Peaks),
		"selected", out.Selected,
		"edges", out.Edges,
		"tags", len(out.Tags),
		"truncated", out.Truncated,
		"dur_ms", time.Since(start).Milliseconds())
	return out, nil
}
