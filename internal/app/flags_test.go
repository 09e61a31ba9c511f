package app

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"testing"
	"time"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-width", "700", "-param", "max_glitches=3", "-param", "resize_quiet=100ms", "-skip-intro"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Width != 700 || cfg.Height != 800 || !cfg.SkipIntro {
		t.Fatalf("unexpected config %+v", cfg)
	}
	pc := cfg.PageConfig()
	if pc.Matrix.MaxGlitches != 3 {
		t.Fatalf("max glitches = %d, want 3", pc.Matrix.MaxGlitches)
	}
	if pc.Matrix.ResizeQuiet != 100*time.Millisecond {
		t.Fatalf("resize quiet = %v, want 100ms", pc.Matrix.ResizeQuiet)
	}
	if pc.Matrix.Seed != cfg.Seed || !pc.SkipIntro {
		t.Fatalf("seed and intro flags should carry over, got %+v", pc)
	}
}

func TestSeedParamOverridesFlag(t *testing.T) {
	cfg := NewConfig()
	cfg.Seed = 5
	if err := cfg.Params.Set("seed=9"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := cfg.PageConfig().Matrix.Seed; got != 9 {
		t.Fatalf("seed = %d, want 9", got)
	}
}

func TestParamsRejectsMissingKey(t *testing.T) {
	p := Params{}
	for _, v := range []string{"novalue", "=3", ""} {
		if err := p.Set(v); err == nil {
			t.Fatalf("Set(%q) should fail", v)
		}
	}
	if err := p.Set("b=2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := p.Set("a=1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := p.String(); got != `a="1",b="2"` {
		t.Fatalf("String = %s", got)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig()
	cfg.LogLevel = "warn"
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown")
	if bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("unexpected output %q", buf.String())
	}

	cfg.LogLevel = "loud"
	if !cfg.Logger(&buf).Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("unknown level should fall back to info")
	}
}
