package config

import (
	"fmt"
	"os"
	"strings"

	"MS-Sequence-Tags/tag_generator/common"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tolerance units.
const (
	UnitDa  = "Da"
	UnitPPM = "ppm"
)

// Tolerance is the allowed deviation between an observed mass difference and a residue mass.
type Tolerance struct {
	Value float64 `yaml:"value" validate:"gte=0"`
	Unit  string  `yaml:"unit" validate:"oneof=Da ppm"`
}

// Window returns the absolute tolerance in Da at the given mass.
// For ppm tolerances mass is the m/z of the heavier peak.
func (t Tolerance) Window(mass float64) float64 {
	if t.Unit == UnitPPM {
		return t.Value * 1e-6 * mass
	}
	return t.Value
}

// ScoreConfig weights the tag score:
// base = IntensityWeight * f(start intensity), f = log1p when LogIntensity,
// each edge then adds EdgeBonus - ErrorPenalty*MassError.
type ScoreConfig struct {
	IntensityWeight float64 `yaml:"intensity_weight" validate:"gte=0"`
	LogIntensity    bool    `yaml:"log_intensity"`
	EdgeBonus       float64 `yaml:"edge_bonus"`
	ErrorPenalty    float64 `yaml:"error_penalty" validate:"gte=0"`
}

// Config is the flat tag generation configuration.
type Config struct {
	GlobalSelectionDensity float64     `yaml:"global_selection_density" validate:"gt=0"`
	MinGlobalPeaks         int         `yaml:"min_global_peaks" validate:"gte=0"`
	LocalWindowWidth       float64     `yaml:"local_window_width" validate:"gt=0"`
	LocalWindowStep        float64     `yaml:"local_window_step" validate:"gt=0,ltefield=LocalWindowWidth"`
	LocalMinPeaks          int         `yaml:"local_min_peaks" validate:"gte=0"`
	Tolerance              Tolerance   `yaml:"tolerance"`
	MaxEdgesPerNode        int         `yaml:"max_edges_per_node" validate:"gte=1"`
	Depth                  int         `yaml:"depth" validate:"gte=1"`
	MaxTagResults          int         `yaml:"max_tag_results" validate:"gte=0"` // 0 = unbounded
	Score                  ScoreConfig `yaml:"score"`
	MergeDuplicates        bool        `yaml:"merge_duplicates"`
	Workers                int         `yaml:"workers" validate:"gte=1"`
}

var validate = validator.New()

// Default returns the configuration built from the package defaults.
func Default() Config {
	return Config{
		GlobalSelectionDensity: DefaultGlobalSelectionDensity,
		MinGlobalPeaks:         DefaultMinGlobalPeaks,
		LocalWindowWidth:       DefaultLocalWindowWidth,
		LocalWindowStep:        DefaultLocalWindowStep,
		LocalMinPeaks:          DefaultLocalMinPeaks,
		Tolerance:              Tolerance{Value: DefaultToleranceValue, Unit: DefaultToleranceUnit},
		MaxEdgesPerNode:        DefaultMaxEdgesPerNode,
		Depth:                  DefaultDepth,
		MaxTagResults:          DefaultMaxTagResults,
		Score: ScoreConfig{
			IntensityWeight: DefaultIntensityWeight,
			LogIntensity:    DefaultLogIntensity,
			EdgeBonus:       DefaultEdgeBonus,
			ErrorPenalty:    DefaultErrorPenalty,
		},
		Workers: DefaultWorkers,
	}
}

// Load overlays a YAML file on Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: config %s: %v", common.ErrInvalidArgument, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field. Errors wrap common.ErrInvalidArgument.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrInvalidArgument, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidArgument, strings.Join(msgs, "; "))
}
