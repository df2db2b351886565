package selection

import (
	"MS-Sequence-Tags/tag_generator/common"
	"MS-Sequence-Tags/tag_generator/config"
)

// Select runs the global intensity pass followed by the local density backfill.
// The spectrum must already be validated.
func Select(spec *common.Spectrum, cfg config.Config) common.SelectionMask {
	n := TargetCount(spec.NeutralMass(), cfg.GlobalSelectionDensity, cfg.MinGlobalPeaks)
	mask := GlobalSelect(spec.Peaks, n)
	LocalBackfill(spec.Peaks, mask, cfg.LocalWindowWidth, cfg.LocalWindowStep, cfg.LocalMinPeaks)
	return mask
}
