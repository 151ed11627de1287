// Package magnifier implements the magnification engine: a timer-driven loop
// that captures a zoomed region around the screen center and renders it into
// a small always-on-top overlay window, through either the OS magnification
// facility or a portable capture-and-scale fallback.
package magnifier

const (
	DefaultWidth         = 400
	DefaultHeight        = 400
	DefaultRefreshRateHz = 60
	DefaultZoomHigh      = 4.0
	DefaultZoomLow       = 2.0

	MinRefreshRateHz = 1
	MaxRefreshRateHz = 144

	// MinZoom keeps the magnifier from minifying; values below 1.0 are
	// clamped, never rejected.
	MinZoom = 1.0
	// MaxZoom caps magnification at 20x. Unbounded zoom degenerates into
	// single-pixel source regions that neither backend renders usefully.
	MaxZoom = 20.0
)

// ZoomPreset identifies which of the two configured zoom levels is active.
type ZoomPreset int

const (
	PresetLow ZoomPreset = iota
	PresetHigh
)

func (p ZoomPreset) String() string {
	if p == PresetHigh {
		return "high"
	}
	return "low"
}

// Config holds the magnifier settings. It is owned by the engine and mutated
// only through engine methods on the owning goroutine; backends and the
// window read a consistent snapshot per tick.
type Config struct {
	OutputWidth   int
	OutputHeight  int
	Circular      bool
	RefreshRateHz int
	ZoomLevel     float64
	ZoomLevelHigh float64
	ZoomLevelLow  float64
	ZoomPreset    ZoomPreset
	XOffset       int
	YOffset       int
	PreferNative  bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		OutputWidth:   DefaultWidth,
		OutputHeight:  DefaultHeight,
		Circular:      true,
		RefreshRateHz: DefaultRefreshRateHz,
		ZoomLevel:     DefaultZoomLow,
		ZoomLevelHigh: DefaultZoomHigh,
		ZoomLevelLow:  DefaultZoomLow,
		ZoomPreset:    PresetLow,
		PreferNative:  true,
	}
}

// Normalize clamps all fields into their valid ranges.
func (c *Config) Normalize() {
	if c.OutputWidth <= 0 {
		c.OutputWidth = DefaultWidth
	}
	if c.OutputHeight <= 0 {
		c.OutputHeight = DefaultHeight
	}
	c.RefreshRateHz = clampRefreshRate(c.RefreshRateHz)
	c.ZoomLevel = clampZoom(c.ZoomLevel)
	c.ZoomLevelHigh = clampZoom(c.ZoomLevelHigh)
	c.ZoomLevelLow = clampZoom(c.ZoomLevelLow)
}

func clampRefreshRate(hz int) int {
	if hz < MinRefreshRateHz {
		return MinRefreshRateHz
	}
	if hz > MaxRefreshRateHz {
		return MaxRefreshRateHz
	}
	return hz
}

func clampZoom(level float64) float64 {
	if level < MinZoom {
		return MinZoom
	}
	if level > MaxZoom {
		return MaxZoom
	}
	return level
}
