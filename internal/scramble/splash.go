package scramble

import (
	"image/color"
	"time"

	"cyberfolio/internal/sequence"
)

// Stage is the intro splash progression.
type Stage int

const (
	StageScramble Stage = iota
	StageFade
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageScramble:
		return "scramble"
	case StageFade:
		return "fade"
	default:
		return "done"
	}
}

// SplashConfig holds the splash timings.
type SplashConfig struct {
	Scramble Config
	// Hold is the pause between the scramble finishing and the fade.
	Hold time.Duration
	// Fade is how long the background takes to go dark; the splash is done
	// when it ends.
	Fade time.Duration
	// TextFade is how long the title takes to appear and to dissolve.
	TextFade time.Duration
}

// DefaultSplashConfig returns the standard intro timings.
func DefaultSplashConfig() SplashConfig {
	return SplashConfig{
		Scramble: DefaultConfig(),
		Hold:     600 * time.Millisecond,
		Fade:     2 * time.Second,
		TextFade: 1600 * time.Millisecond,
	}
}

// SplashFrame is everything a surface needs to draw the splash.
type SplashFrame struct {
	Text       string
	Opacity    float64
	Scale      float64
	Blur       float64
	Background color.RGBA
	Stage      Stage
}

// Splash is the intro screen state machine: scramble, hold, fade, done.
type Splash struct {
	cfg SplashConfig
	scr *Scrambler

	stage      Stage
	start      time.Duration
	finishedAt time.Duration
	fadeAt     time.Duration
	started    bool
	finished   bool
	onStage    func(Stage)
}

// NewSplash builds a splash showing text.
func NewSplash(text string, cfg SplashConfig) *Splash {
	def := DefaultSplashConfig()
	if cfg.Hold < 0 {
		cfg.Hold = def.Hold
	}
	if cfg.Fade <= 0 {
		cfg.Fade = def.Fade
	}
	if cfg.TextFade <= 0 {
		cfg.TextFade = def.TextFade
	}
	cfg.Scramble.Loop = false
	return &Splash{cfg: cfg, scr: New(text, cfg.Scramble)}
}

// OnStage registers fn for stage transitions.
func (s *Splash) OnStage(fn func(Stage)) { s.onStage = fn }

// Stage returns the current stage.
func (s *Splash) Stage() Stage { return s.stage }

// Done reports whether the splash has finished and the page may show.
func (s *Splash) Done() bool { return s.stage == StageDone }

// Skip jumps straight to the end.
func (s *Splash) Skip() { s.setStage(StageDone) }

// Advance moves the splash to now.
func (s *Splash) Advance(now time.Duration) {
	if !s.started {
		s.started = true
		s.start = now
	}
	if s.stage == StageScramble {
		s.scr.Advance(now)
		if s.scr.Done() && !s.finished {
			s.finished = true
			s.finishedAt = now
		}
		if s.finished && now-s.finishedAt >= s.cfg.Hold {
			s.fadeAt = now
			s.setStage(StageFade)
		}
	}
	if s.stage == StageFade && now-s.fadeAt >= s.cfg.Fade {
		s.setStage(StageDone)
	}
}

func (s *Splash) setStage(next Stage) {
	if next == s.stage {
		return
	}
	s.stage = next
	if s.onStage != nil {
		s.onStage(next)
	}
}

// Frame returns the visual state at now. Call Advance first.
func (s *Splash) Frame(now time.Duration) SplashFrame {
	f := SplashFrame{Text: s.scr.Text(), Scale: 1, Stage: s.stage, Background: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	switch s.stage {
	case StageScramble:
		f.Opacity = sequence.Standard(ratio(now-s.start, s.cfg.TextFade))
	case StageFade:
		t := sequence.Standard(ratio(now-s.fadeAt, s.cfg.TextFade))
		f.Opacity = 1 - t
		f.Scale = 1 + 0.15*t
		f.Blur = 4 * t
		f.Background = gray(1 - sequence.Standard(ratio(now-s.fadeAt, s.cfg.Fade)))
	default:
		f.Opacity = 0
		f.Scale = 1.15
		f.Blur = 4
		f.Background = gray(0)
	}
	return f
}

func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 || elapsed >= total {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(total)
}

func gray(level float64) color.RGBA {
	v := uint8(level*255 + 0.5)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}
