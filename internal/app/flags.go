package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"cyberfolio/internal/matrix"
	"cyberfolio/internal/page"
)

// Config represents the command-line parameters shared by every surface.
type Config struct {
	Width     int
	Height    int
	TPS       int
	Seed      int64
	Params    Params
	LogLevel  string
	SkipIntro bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 1400, Height: 800, TPS: 60, Seed: 1337, Params: Params{}, LogLevel: "info"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for glyph selection and glitches")
	fs.Var(c.Params, "param", "backdrop parameter as key=value (repeatable)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&c.SkipIntro, "skip-intro", c.SkipIntro, "start with the intro splash finished")
}

// PageConfig derives the page configuration. Explicit -param values win over
// the defaults; the seed flag wins unless a seed param is given.
func (c *Config) PageConfig() page.Config {
	cfg := page.DefaultConfig()
	cfg.Matrix = matrix.FromMap(c.Params)
	if _, ok := c.Params["seed"]; !ok {
		cfg.Matrix.Seed = c.Seed
	}
	cfg.Splash.Scramble.Seed = c.Seed
	cfg.SkipIntro = c.SkipIntro
	return cfg
}

// Logger builds a text logger writing to w at the configured level. An
// unknown level falls back to info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Params collects repeated key=value flags.
type Params map[string]string

// String implements flag.Value.
func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.Quote(p[k])
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (p Params) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("param %q: want key=value", v)
	}
	p[key] = strings.TrimSpace(value)
	return nil
}
