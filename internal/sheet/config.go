package sheet

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("sheet: invalid config")

// Config holds the tunables of a resizable panel.
//
// CloseThreshold is expressed in the absolute unit of the surface hosting the
// panel: CSS pixels on the web, terminal cells in the TUI. SnapPoints and
// DefaultWidthPercent are percentages of the viewport width.
type Config struct {
	CloseThreshold      float64   `yaml:"close_threshold" koanf:"close_threshold"`
	SnapPoints          []float64 `yaml:"snap_points" koanf:"snap_points"`
	DefaultWidthPercent float64   `yaml:"default_width_percent" koanf:"default_width_percent"`
}

// DefaultConfig returns the desktop web panel settings.
func DefaultConfig() Config {
	return Config{
		CloseThreshold:      200,
		SnapPoints:          []float64{40, 50, 70},
		DefaultWidthPercent: 50,
	}
}

// Validate checks that the snap points are usable percentages and that the
// default width is one of them.
func (c Config) Validate() error {
	if len(c.SnapPoints) == 0 {
		return fmt.Errorf("%w: at least one snap point is required", ErrInvalidConfig)
	}
	for _, p := range c.SnapPoints {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 || p > 100 {
			return fmt.Errorf("%w: snap point %v must be in (0, 100]", ErrInvalidConfig, p)
		}
	}
	if !slices.Contains(c.SnapPoints, c.DefaultWidthPercent) {
		return fmt.Errorf("%w: default width %v is not a snap point", ErrInvalidConfig, c.DefaultWidthPercent)
	}
	if math.IsNaN(c.CloseThreshold) || c.CloseThreshold < 0 {
		return fmt.Errorf("%w: close threshold must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// normalized returns a copy with ascending, de-duplicated snap points so that
// iteration order puts the lower point first.
func (c Config) normalized() Config {
	points := slices.Clone(c.SnapPoints)
	slices.Sort(points)
	c.SnapPoints = slices.Compact(points)
	return c
}

// MinWidth is the smallest snap point.
func (c Config) MinWidth() float64 { return slices.Min(c.SnapPoints) }

// MaxWidth is the largest snap point.
func (c Config) MaxWidth() float64 { return slices.Max(c.SnapPoints) }

// NearestSnap returns the snap point closest to width. On an exact tie the
// point encountered first wins, which for ascending points is the lower one.
func NearestSnap(points []float64, width float64) float64 {
	if len(points) == 0 {
		return width
	}
	nearest := points[0]
	minDistance := math.Abs(width - points[0])
	for _, p := range points[1:] {
		if d := math.Abs(width - p); d < minDistance {
			minDistance = d
			nearest = p
		}
	}
	return nearest
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
