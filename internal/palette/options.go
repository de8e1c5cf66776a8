package palette

import (
	"fmt"
	"strings"
	"time"
)

type Quality string

const (
	QualityFast     Quality = "fast"
	QualityBalanced Quality = "balanced"
	QualityPrecise  Quality = "precise"
)

type Clustering string

const (
	ClusteringKMeans    Clustering = "kmeans"
	ClusteringMedianCut Clustering = "median-cut"
	ClusteringOctree    Clustering = "octree"
)

const (
	minMaxColors = 1
	maxMaxColors = 32

	defaultFrameInterval = time.Second
)

var defaultOptions = Options{
	MaxColors:           8,
	Quality:             QualityBalanced,
	Clustering:          ClusteringMedianCut,
	GenerateGradients:   Bool(true),
	EnsureAccessibility: Bool(true),
	FrameInterval:       defaultFrameInterval,
}

type Options struct {
	MaxColors           int           `json:"maxColors" yaml:"maxColors" validate:"omitempty,min=1,max=32"`
	Quality             Quality       `json:"quality" yaml:"quality" validate:"omitempty,oneof=fast balanced precise"`
	IgnoreWhite         bool          `json:"ignoreWhite" yaml:"ignoreWhite"`
	IgnoreBlack         bool          `json:"ignoreBlack" yaml:"ignoreBlack"`
	MinSaturation       float64       `json:"minSaturation" yaml:"minSaturation" validate:"min=0,max=100"`
	MinLightness        float64       `json:"minLightness" yaml:"minLightness" validate:"min=0,max=100"`
	MaxLightness        float64       `json:"maxLightness" yaml:"maxLightness" validate:"min=0,max=100"`
	Clustering          Clustering    `json:"clustering" yaml:"clustering" validate:"omitempty,oneof=kmeans median-cut octree"`
	GenerateGradients   *bool         `json:"generateGradients,omitempty" yaml:"generateGradients"`
	EnsureAccessibility *bool         `json:"ensureAccessibility,omitempty" yaml:"ensureAccessibility"`
	FrameInterval       time.Duration `json:"frameInterval" yaml:"frameInterval" validate:"min=0"`
	Seed                uint64        `json:"seed" yaml:"seed"`
}

func Bool(value bool) *bool {
	return &value
}

func DefaultOptions() Options {
	return NormalizeOptions(Options{})
}

func NormalizeOptions(options Options) Options {
	return options.normalized()
}

func (o Options) normalized() Options {
	normalized := o

	if normalized.MaxColors <= 0 {
		normalized.MaxColors = defaultOptions.MaxColors
	}
	normalized.MaxColors = clampInt(normalized.MaxColors, minMaxColors, maxMaxColors)

	switch Quality(strings.ToLower(strings.TrimSpace(string(normalized.Quality)))) {
	case QualityFast:
		normalized.Quality = QualityFast
	case QualityPrecise:
		normalized.Quality = QualityPrecise
	default:
		normalized.Quality = QualityBalanced
	}

	switch Clustering(strings.ToLower(strings.TrimSpace(string(normalized.Clustering)))) {
	case ClusteringKMeans, "k-means":
		normalized.Clustering = ClusteringKMeans
	case ClusteringOctree:
		normalized.Clustering = ClusteringOctree
	default:
		normalized.Clustering = ClusteringMedianCut
	}

	normalized.MinSaturation = clampFloat(normalized.MinSaturation, 0, 100)
	normalized.MinLightness = clampFloat(normalized.MinLightness, 0, 100)
	if normalized.MaxLightness <= 0 {
		normalized.MaxLightness = 100
	}
	normalized.MaxLightness = clampFloat(normalized.MaxLightness, 0, 100)
	if normalized.MaxLightness < normalized.MinLightness {
		normalized.MaxLightness = normalized.MinLightness
	}

	if normalized.GenerateGradients == nil {
		normalized.GenerateGradients = Bool(*defaultOptions.GenerateGradients)
	}
	if normalized.EnsureAccessibility == nil {
		normalized.EnsureAccessibility = Bool(*defaultOptions.EnsureAccessibility)
	}

	if normalized.FrameInterval <= 0 {
		normalized.FrameInterval = defaultOptions.FrameInterval
	}

	return normalized
}

// DownscaleCap is the longest raster edge, in pixels, for the quality level.
func (q Quality) DownscaleCap() int {
	switch q {
	case QualityFast:
		return 50
	case QualityPrecise:
		return 200
	default:
		return 100
	}
}

// Step is the sampling stride in pixels for the quality level.
func (q Quality) Step() int {
	switch q {
	case QualityFast:
		return 10
	case QualityPrecise:
		return 2
	default:
		return 5
	}
}

// Fingerprint renders the normalized options for use in cache keys.
func (o Options) Fingerprint() string {
	normalized := o.normalized()
	return fmt.Sprintf(
		"mc:%d|q:%s|iw:%t|ib:%t|mins:%0.2f|minl:%0.2f|maxl:%0.2f|cl:%s|g:%t|a:%t|fi:%d|seed:%d",
		normalized.MaxColors,
		normalized.Quality,
		normalized.IgnoreWhite,
		normalized.IgnoreBlack,
		normalized.MinSaturation,
		normalized.MinLightness,
		normalized.MaxLightness,
		normalized.Clustering,
		*normalized.GenerateGradients,
		*normalized.EnsureAccessibility,
		normalized.FrameInterval.Milliseconds(),
		normalized.Seed,
	)
}
