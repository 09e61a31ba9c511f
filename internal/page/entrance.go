package page

import (
	"time"

	"cyberfolio/internal/sequence"
)

// Hero section items that slide in after the hero title.
const (
	Welcome      sequence.ElementID = "welcome"
	Presentation sequence.ElementID = "presentation"
	Portfolio    sequence.ElementID = "portfolio"
)

// Cue is a one-shot timed tween layered over an element's scroll-derived
// visual: opacity is scaled by its progress and OffsetY shrinks to zero.
type Cue struct {
	Element  sequence.ElementID
	Delay    time.Duration
	Duration time.Duration
	OffsetY  float64
	Ease     sequence.Ease
}

// DefaultCues is the hero entrance: the title rises in first, then the
// bottom-left items follow in a stagger.
func DefaultCues() []Cue {
	standard := sequence.CubicBezier(0.4, 0, 0.2, 1)
	easeOut := sequence.CubicBezier(0, 0, 0.58, 1)
	return []Cue{
		{Element: Hero, Delay: 300 * time.Millisecond, Duration: 1200 * time.Millisecond, OffsetY: 30, Ease: standard},
		{Element: Welcome, Delay: time.Second, Duration: time.Second, OffsetY: 100, Ease: easeOut},
		{Element: Presentation, Delay: 1700 * time.Millisecond, Duration: time.Second, OffsetY: 100, Ease: easeOut},
		{Element: Portfolio, Delay: 2400 * time.Millisecond, Duration: time.Second, OffsetY: 100, Ease: easeOut},
	}
}

// Entrance plays a set of cues from the moment it is started. Before Start
// every cue holds its initial pose.
type Entrance struct {
	cues     []Cue
	start    time.Duration
	started  bool
	finished bool
}

// NewEntrance returns an entrance that has not started yet.
func NewEntrance(cues []Cue) *Entrance {
	return &Entrance{cues: cues}
}

// Start begins playback at now. Later calls are ignored.
func (e *Entrance) Start(now time.Duration) {
	if e.started || e.finished {
		return
	}
	e.start = now
	e.started = true
}

// Finish jumps every cue to its end.
func (e *Entrance) Finish() { e.finished = true }

// Progress returns the eased progress in [0,1] of cue i at now.
func (e *Entrance) Progress(i int, now time.Duration) float64 {
	if e.finished {
		return 1
	}
	if !e.started || i < 0 || i >= len(e.cues) {
		return 0
	}
	c := e.cues[i]
	elapsed := now - e.start - c.Delay
	if elapsed <= 0 {
		return 0
	}
	if c.Duration <= 0 || elapsed >= c.Duration {
		return 1
	}
	p := elapsed.Seconds() / c.Duration.Seconds()
	if c.Ease != nil {
		p = min(max(c.Ease(p), 0), 1)
	}
	return p
}

// Done reports whether every cue has reached its end by now.
func (e *Entrance) Done(now time.Duration) bool {
	for i := range e.cues {
		if e.Progress(i, now) < 1 {
			return false
		}
	}
	return true
}

// Apply layers the cues over the visuals the sequencer just derived. Cues for
// elements missing from byID are skipped.
func (e *Entrance) Apply(now time.Duration, byID map[sequence.ElementID]*Element) {
	for i, c := range e.cues {
		el, ok := byID[c.Element]
		if !ok {
			continue
		}
		p := e.Progress(i, now)
		if p >= 1 {
			continue
		}
		el.Visual.Opacity *= p
		el.Visual.Y += c.OffsetY * (1 - p)
	}
}
