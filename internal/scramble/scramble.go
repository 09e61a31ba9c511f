// Package scramble implements the decoding text effect used by the logo and
// the intro splash: characters resolve left to right out of random noise.
package scramble

import (
	"strings"
	"time"

	"cyberfolio/internal/core"
)

// DefaultAlphabet is the noise character set.
const DefaultAlphabet = `!<>-_\/[]{}—=+*^?#________`

// Config controls the effect cadence.
type Config struct {
	Alphabet string
	Frames   int
	Interval time.Duration
	// Loop restarts the reveal after the last frame instead of finishing.
	Loop bool
	Seed int64
}

// DefaultConfig returns the one-shot configuration.
func DefaultConfig() Config {
	return Config{
		Alphabet: DefaultAlphabet,
		Frames:   20,
		Interval: 50 * time.Millisecond,
		Seed:     1,
	}
}

// Scrambler renders successive frames of a scrambled string against a
// caller-supplied clock.
type Scrambler struct {
	cfg      Config
	text     []rune
	alphabet []rune
	rng      *core.RNG

	frame   int
	last    time.Duration
	started bool
	done    bool
	out     string
}

// New builds a Scrambler for text.
func New(text string, cfg Config) *Scrambler {
	def := DefaultConfig()
	if cfg.Alphabet == "" {
		cfg.Alphabet = def.Alphabet
	}
	if cfg.Frames <= 0 {
		cfg.Frames = def.Frames
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	return &Scrambler{
		cfg:      cfg,
		text:     []rune(text),
		alphabet: []rune(cfg.Alphabet),
		rng:      core.NewRNG(cfg.Seed),
	}
}

// Advance renders every frame due by now. It reports whether the text changed.
func (s *Scrambler) Advance(now time.Duration) bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		s.last = now
		s.render()
		return true
	}
	changed := false
	for !s.done && now-s.last >= s.cfg.Interval {
		s.last += s.cfg.Interval
		s.render()
		changed = true
	}
	return changed
}

func (s *Scrambler) render() {
	revealed := float64(s.frame) / float64(s.cfg.Frames) * float64(len(s.text))
	var b strings.Builder
	for i, r := range s.text {
		switch {
		case r == ' ':
			b.WriteRune(' ')
		case float64(i) < revealed:
			b.WriteRune(r)
		default:
			b.WriteRune(s.rng.Pick(s.alphabet))
		}
	}
	s.out = b.String()

	s.frame++
	if s.frame > s.cfg.Frames {
		if s.cfg.Loop {
			s.frame = 0
		} else {
			s.done = true
		}
	}
}

// Text returns the most recent frame.
func (s *Scrambler) Text() string { return s.out }

// Done reports whether a one-shot scramble has shown its final frame.
func (s *Scrambler) Done() bool { return s.done }

// Restart replays the effect from the first frame.
func (s *Scrambler) Restart() {
	s.frame = 0
	s.started = false
	s.done = false
}
