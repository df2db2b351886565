package config

// Global peak selection parameters
const (
	DefaultGlobalSelectionDensity = 4.0 // peaks kept per 100 Da of precursor neutral mass
	DefaultMinGlobalPeaks         = 10
)

// Local density backfill parameters
const (
	DefaultLocalWindowWidth = 70.0 // Da
	DefaultLocalWindowStep  = 35.0 // Da
	DefaultLocalMinPeaks    = 2
)

// Fragment tolerance
const (
	DefaultToleranceValue = 0.02
	DefaultToleranceUnit  = UnitDa
)

// Edge building and enumeration bounds
const (
	DefaultMaxEdgesPerNode = 8
	DefaultDepth           = 3
	DefaultMaxTagResults   = 5000
)

// Tag scoring weights
const (
	DefaultIntensityWeight = 1.0
	DefaultLogIntensity    = true
	DefaultEdgeBonus       = 1.0
	DefaultErrorPenalty    = 10.0 // score lost per Da of mass error
)

// Batch processing
const (
	DefaultWorkers = 4
)
