package matrix

import (
	"strconv"
	"time"
)

// DefaultAlphabet is the symbol set tiles draw their glyphs from.
const DefaultAlphabet = `ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789<>/?;:"[]{}\|!@#$%^&*()_+-=`

// Params holds the easing rates of the per-tick update.
type Params struct {
	ApproachRate      float64
	ReleaseRate       float64
	OffscreenDecay    float64
	ScaleRelax        float64
	GlitchScaleJitter float64
	DrawThreshold     float64
}

// Config controls grid geometry, update cadence and interaction knobs.
type Config struct {
	TileSize       int
	CanvasMultiple int
	UpdateRate     int

	Radius float64
	Buffer float64

	GlitchChance float64
	GlitchFrames int
	// MaxGlitches caps concurrently glitching tiles. Zero disables glitching.
	MaxGlitches int

	ScrollRedrawDelta float64
	ResizeQuiet       time.Duration

	Alphabet string
	Seed     int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		TileSize:          70,
		CanvasMultiple:    5,
		UpdateRate:        30,
		Radius:            250,
		Buffer:            300,
		GlitchChance:      0.5,
		GlitchFrames:      5,
		MaxGlitches:       0,
		ScrollRedrawDelta: 50,
		ResizeQuiet:       250 * time.Millisecond,
		Alphabet:          DefaultAlphabet,
		Seed:              1337,
		Params: Params{
			ApproachRate:      0.2,
			ReleaseRate:       0.05,
			OffscreenDecay:    0.1,
			ScaleRelax:        0.2,
			GlitchScaleJitter: 0.3,
			DrawThreshold:     0.05,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt := func(key string, dst *int, min int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
				*dst = parsed
			}
		}
	}
	setFloat := func(key string, dst *float64, min float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= min {
				*dst = parsed
			}
		}
	}

	setInt("tile_size", &c.TileSize, 1)
	setInt("canvas_multiple", &c.CanvasMultiple, 1)
	setInt("update_rate", &c.UpdateRate, 1)
	setFloat("radius", &c.Radius, 0)
	setFloat("buffer", &c.Buffer, 0)
	setFloat("glitch_chance", &c.GlitchChance, 0)
	setInt("glitch_frames", &c.GlitchFrames, 0)
	setInt("max_glitches", &c.MaxGlitches, 0)
	setFloat("scroll_redraw_delta", &c.ScrollRedrawDelta, 0)
	setFloat("approach_rate", &c.Params.ApproachRate, 0)
	setFloat("release_rate", &c.Params.ReleaseRate, 0)
	setFloat("offscreen_decay", &c.Params.OffscreenDecay, 0)
	setFloat("scale_relax", &c.Params.ScaleRelax, 0)
	setFloat("glitch_scale_jitter", &c.Params.GlitchScaleJitter, 0)
	setFloat("draw_threshold", &c.Params.DrawThreshold, 0)

	if v, ok := cfg["resize_quiet"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
			c.ResizeQuiet = parsed
		}
	}
	if v, ok := cfg["alphabet"]; ok && v != "" {
		c.Alphabet = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if c.GlitchChance > 1 {
		c.GlitchChance = 1
	}
	return c
}
