package sequence

import (
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Phase is a group's position in its entrance/exit lifecycle.
type Phase int

const (
	PreEntrance Phase = iota
	Entering
	Entered
	ExitArmed
	Exiting
	Exited
)

var phaseNames = [...]string{"pre-entrance", "entering", "entered", "exit-armed", "exiting", "exited"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Target receives the visual state derived for one element.
type Target interface {
	SetVisual(Visual)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(Visual)

// SetVisual calls f(v).
func (f TargetFunc) SetVisual(v Visual) { f(v) }

// PhaseFunc observes group phase transitions.
type PhaseFunc func(group string, from, to Phase)

const (
	defaultRate = 60
	// Longest gap the springs integrate before jumping straight to target.
	maxCatchUp = 2 * time.Second
	settleEps  = 1e-4
)

type trackState struct {
	Track
	spring harmonica.Spring

	pos, vel float64
	dir      int
	region   int
}

type groupState struct {
	Group
	tracks []int
	spring harmonica.Spring

	armed    bool
	phase    Phase
	exit     float64
	exitVel  float64
	inWindow bool
}

// Sequencer re-derives element visuals from scroll position. Like the rest of
// the page it is driven from a single loop and is not safe for concurrent use.
type Sequencer struct {
	log     *slog.Logger
	rate    int
	step    time.Duration
	onPhase PhaseFunc

	tracks   []*trackState
	groups   []*groupState
	byGroup  map[string]*groupState
	elements []ElementID
	known    map[ElementID]bool

	targets map[ElementID]Target
	visuals map[ElementID]Visual

	last    time.Duration
	acc     time.Duration
	started bool
	closed  bool
}

// Option customises a Sequencer.
type Option func(*Sequencer)

// WithLogger routes sequencer diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRate sets the spring integration rate in steps per second.
func WithRate(fps int) Option {
	return func(s *Sequencer) {
		if fps > 0 {
			s.rate = fps
		}
	}
}

// WithPhaseObserver registers fn for group phase transitions.
func WithPhaseObserver(fn PhaseFunc) Option {
	return func(s *Sequencer) { s.onPhase = fn }
}

// New validates layout and builds a Sequencer for it.
func New(layout Layout, opts ...Option) (*Sequencer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	s := &Sequencer{
		log:     slog.New(slog.DiscardHandler),
		rate:    defaultRate,
		byGroup: make(map[string]*groupState, len(layout.Groups)),
		known:   make(map[ElementID]bool),
		targets: make(map[ElementID]Target),
		visuals: make(map[ElementID]Visual),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.step = time.Second / time.Duration(s.rate)

	for _, g := range layout.Groups {
		gs := &groupState{Group: g, spring: newScrubSpring(s.rate, g.Scrub)}
		s.groups = append(s.groups, gs)
		s.byGroup[g.Name] = gs
	}
	for i, t := range layout.Tracks {
		s.tracks = append(s.tracks, &trackState{Track: t, spring: newScrubSpring(s.rate, t.Scrub), region: -1})
		if t.Group != "" {
			gs := s.byGroup[t.Group]
			gs.tracks = append(gs.tracks, i)
		}
	}
	s.elements = layout.Elements()
	for _, id := range s.elements {
		s.known[id] = true
		s.visuals[id] = Identity
	}
	return s, nil
}

// A critically damped spring that settles in roughly the scrub duration.
func newScrubSpring(rate int, scrub time.Duration) harmonica.Spring {
	if scrub <= 0 {
		return harmonica.Spring{}
	}
	return harmonica.NewSpring(harmonica.FPS(rate), 5/scrub.Seconds(), 1.0)
}

// Bind attaches a host element handle. Ids the layout never mentions are
// ignored and reported false.
func (s *Sequencer) Bind(id ElementID, t Target) bool {
	if s.closed || t == nil || !s.known[id] {
		return false
	}
	s.targets[id] = t
	t.SetVisual(s.visuals[id])
	return true
}

// Elements lists every element in the layout.
func (s *Sequencer) Elements() []ElementID { return s.elements }

// Visual returns the last derived state of id.
func (s *Sequencer) Visual(id ElementID) (Visual, bool) {
	v, ok := s.visuals[id]
	return v, ok
}

// Phase returns the current phase of a group.
func (s *Sequencer) Phase(group string) Phase {
	if g, ok := s.byGroup[group]; ok {
		return g.phase
	}
	return PreEntrance
}

// Armed reports whether a group's exit gate has latched.
func (s *Sequencer) Armed(group string) bool {
	g, ok := s.byGroup[group]
	return ok && g.armed
}

// Update advances smoothing to now, re-derives every element's visual from
// scrollY and applies it to the bound targets.
func (s *Sequencer) Update(scrollY float64, vp Viewport, now time.Duration) {
	if s.closed {
		return
	}
	var dt time.Duration
	snap := !s.started
	if s.started && now > s.last {
		dt = now - s.last
	}
	s.last = now
	s.started = true

	steps := 0
	if dt > maxCatchUp {
		snap = true
		s.acc = 0
	} else {
		s.acc += dt
		steps = int(s.acc / s.step)
		s.acc -= time.Duration(steps) * s.step
	}

	for _, t := range s.tracks {
		s.advanceTrack(t, scrollY, vp, dt, steps, snap)
	}
	for _, g := range s.groups {
		s.advanceGroup(g, scrollY, vp, steps, snap)
	}
	s.compose(scrollY, vp)
}

func (s *Sequencer) advanceTrack(t *trackState, y float64, vp Viewport, dt time.Duration, steps int, snap bool) {
	if t.Mode == ModeToggle {
		start, end := t.Range.Bounds(vp)
		region := regionOf(y, start, end)
		for _, a := range crossings(t.region, region, t.Actions) {
			switch a {
			case Play:
				t.dir = 1
			case Reverse:
				t.dir = -1
			}
		}
		t.region = region
		if t.dir != 0 && dt > 0 {
			t.pos = clamp01(t.pos + float64(t.dir)*dt.Seconds()/t.Duration.Seconds())
		}
		return
	}

	target := t.Range.Progress(y, vp)
	t.pos, t.vel = smooth(t.spring, t.Scrub, t.pos, t.vel, target, steps, snap)
}

func (s *Sequencer) advanceGroup(g *groupState, y float64, vp Viewport, steps int, snap bool) {
	entranceStart, entranceEnd := math.Inf(1), math.Inf(-1)
	for _, i := range g.tracks {
		start, end := s.tracks[i].Range.Bounds(vp)
		entranceStart = math.Min(entranceStart, start)
		entranceEnd = math.Max(entranceEnd, end)
	}
	exitStart, exitEnd := g.Exit.Bounds(vp)
	inExit := y >= exitStart && y <= exitEnd

	if !g.armed && y >= entranceEnd && !inExit {
		g.armed = true
		s.log.Debug("exit armed", "group", g.Name, "scroll", y)
	}

	if g.armed && inExit && !g.inWindow {
		// Entering the window from either side starts the fades from full.
		s.log.Debug("exit window entered", "group", g.Name, "scroll", y)
	}
	g.inWindow = g.armed && inExit

	target := g.Exit.Progress(y, vp)
	g.exit, g.exitVel = smooth(g.spring, g.Scrub, g.exit, g.exitVel, target, steps, snap)

	var next Phase
	switch {
	case g.armed && y > exitEnd:
		next = Exited
	case g.armed && inExit:
		next = Exiting
	case g.armed && y >= entranceEnd:
		next = ExitArmed
	case y < entranceStart:
		next = PreEntrance
	case y < entranceEnd:
		next = Entering
	default:
		next = Entered
	}
	if next != g.phase {
		prev := g.phase
		g.phase = next
		s.log.Debug("phase", "group", g.Name, "from", prev, "to", next)
		if s.onPhase != nil {
			s.onPhase(g.Name, prev, next)
		}
	}
}

func smooth(spring harmonica.Spring, scrub time.Duration, pos, vel, target float64, steps int, snap bool) (float64, float64) {
	if scrub <= 0 || snap {
		return target, 0
	}
	for i := 0; i < steps; i++ {
		pos, vel = spring.Update(pos, vel, target)
	}
	if math.Abs(target-pos) < settleEps && math.Abs(vel) < settleEps*10 {
		return target, 0
	}
	return pos, vel
}

func (s *Sequencer) compose(y float64, vp Viewport) {
	for _, id := range s.elements {
		s.visuals[id] = Identity
	}
	touched := make(map[ElementID]bool, len(s.tracks))
	for _, t := range s.tracks {
		if touched[t.Element] && t.pos <= 0 {
			continue
		}
		touched[t.Element] = true
		local := t.Span.Local(t.pos)
		s.visuals[t.Element] = Lerp(t.From.Resolve(vp), t.To.Resolve(vp), t.Ease.apply(local))
	}

	for _, g := range s.groups {
		if !g.armed {
			continue
		}
		_, exitEnd := g.Exit.Bounds(vp)
		switch {
		case y > exitEnd:
			for _, m := range g.Members {
				v := s.visuals[m]
				v.Opacity = 0
				s.visuals[m] = v
			}
		case g.inWindow:
			for _, m := range g.Members {
				v := s.visuals[m]
				v.Opacity = 1
				s.visuals[m] = v
			}
			for _, f := range g.Fades {
				v := s.visuals[f.Element]
				v.Opacity = 1 - f.Ease.apply(f.Span.Local(g.exit))
				s.visuals[f.Element] = v
			}
		}
	}

	for id, t := range s.targets {
		t.SetVisual(s.visuals[id])
	}
}

// Close detaches every target. It is idempotent.
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	clear(s.targets)
	s.log.Debug("sequencer closed")
}

func regionOf(y, start, end float64) int {
	switch {
	case y < start:
		return -1
	case y > end:
		return 1
	default:
		return 0
	}
}

// crossings lists the toggle actions fired moving from one region to another,
// in the order they occur.
func crossings(from, to int, a Actions) []Action {
	switch {
	case from == to:
		return nil
	case from == -1 && to == 0:
		return []Action{a.OnEnter}
	case from == -1 && to == 1:
		return []Action{a.OnEnter, a.OnLeave}
	case from == 0 && to == 1:
		return []Action{a.OnLeave}
	case from == 1 && to == 0:
		return []Action{a.OnEnterBack}
	case from == 1 && to == -1:
		return []Action{a.OnEnterBack, a.OnLeaveBack}
	default:
		return []Action{a.OnLeaveBack}
	}
}
