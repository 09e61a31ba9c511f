package matrix

import "cyberfolio/internal/core"

func (r *Renderer) Parameters() core.ParameterSnapshot {
	cfg := r.cfg
	p := cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("tile_size", "Tile size", cfg.TileSize),
				core.IntParam("update_rate", "Updates/sec", cfg.UpdateRate),
				core.FloatParam("buffer", "Window buffer", cfg.Buffer),
				core.IntParam("tiles", "Tiles", len(r.tiles)),
			},
		},
		{
			Name: "Pointer",
			Params: []core.Parameter{
				core.FloatParam("radius", "Glow radius", cfg.Radius),
				core.FloatParam("approach_rate", "Approach rate", p.ApproachRate),
				core.FloatParam("release_rate", "Release rate", p.ReleaseRate),
			},
		},
		{
			Name: "Glitch",
			Params: []core.Parameter{
				core.IntParam("max_glitches", "Max glitches", cfg.MaxGlitches),
				core.FloatParam("glitch_chance", "Glitch chance", cfg.GlitchChance),
				core.IntParam("glitch_frames", "Glitch frames", cfg.GlitchFrames),
			},
		},
	}}
}

func (r *Renderer) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "tile_size", Label: "Tile size", Type: core.ParamTypeInt, Step: 5, Min: 20, HasMin: true, Max: 200, HasMax: true},
		{Key: "update_rate", Label: "Updates/sec", Type: core.ParamTypeInt, Step: 5, Min: 5, HasMin: true, Max: 120, HasMax: true},
		{Key: "radius", Label: "Glow radius", Type: core.ParamTypeFloat, Step: 25, Min: 0, HasMin: true, Max: 1000, HasMax: true},
		{Key: "buffer", Label: "Window buffer", Type: core.ParamTypeFloat, Step: 50, Min: 0, HasMin: true, Max: 2000, HasMax: true},
		{Key: "max_glitches", Label: "Max glitches", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 64, HasMax: true},
		{Key: "glitch_chance", Label: "Glitch chance", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

func (r *Renderer) SetIntParameter(key string, value int) bool {
	if r.closed {
		return false
	}
	switch key {
	case "tile_size":
		if value <= 0 {
			return false
		}
		r.cfg.TileSize = value
		r.Build(r.canvas.W, int(r.viewportH))
	case "update_rate":
		if value <= 0 {
			return false
		}
		r.cfg.UpdateRate = value
		r.throttle.SetRate(value)
	case "max_glitches":
		if value < 0 {
			return false
		}
		r.cfg.MaxGlitches = value
	case "glitch_frames":
		if value < 0 {
			return false
		}
		r.cfg.GlitchFrames = value
	default:
		return false
	}
	return true
}

func (r *Renderer) SetFloatParameter(key string, value float64) bool {
	if r.closed || value < 0 {
		return false
	}
	switch key {
	case "radius":
		r.cfg.Radius = value
	case "buffer":
		r.cfg.Buffer = value
	case "glitch_chance":
		if value > 1 {
			return false
		}
		r.cfg.GlitchChance = value
	case "approach_rate":
		if value > 1 {
			return false
		}
		r.cfg.Params.ApproachRate = value
	case "release_rate":
		if value > 1 {
			return false
		}
		r.cfg.Params.ReleaseRate = value
	default:
		return false
	}
	return true
}
