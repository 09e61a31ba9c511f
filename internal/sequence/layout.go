package sequence

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidLayout is wrapped by every Layout validation failure.
var ErrInvalidLayout = errors.New("invalid layout")

// ElementID is the stable handle a host uses to address an element.
type ElementID string

// Mode selects how a track turns scroll position into tween progress.
type Mode int

const (
	// ModeScrub maps range progress straight onto the tween, optionally
	// smoothed by a spring.
	ModeScrub Mode = iota
	// ModeToggle plays a timed tween forward or backward when scroll crosses
	// the range boundaries.
	ModeToggle
)

// Action is a toggle reaction to a boundary crossing.
type Action int

const (
	None Action = iota
	Play
	Reverse
)

// Actions assigns an Action to each of the four boundary crossings.
type Actions struct {
	OnEnter     Action
	OnLeave     Action
	OnEnterBack Action
	OnLeaveBack Action
}

// PlayReverse plays on the way in and reverses on the way out, in both
// scroll directions.
var PlayReverse = Actions{OnEnter: Play, OnLeave: Reverse, OnEnterBack: Play, OnLeaveBack: Reverse}

// Track animates one element from one pose to another over a scroll range.
// Tracks tagged with a Group form that group's entrance.
type Track struct {
	Element ElementID
	Group   string

	Range Range
	Span  Span

	From, To Pose
	Ease     Ease

	// Scrub is the time smoothed progress takes to catch up with scroll.
	// Zero follows scroll immediately.
	Scrub time.Duration

	Mode     Mode
	Duration time.Duration
	Actions  Actions
}

// Fade dismisses one group member over a sub-span of the exit window.
type Fade struct {
	Element ElementID
	Span    Span
	Ease    Ease
}

// Group is a set of elements whose exit is gated on their entrance having
// completed once.
type Group struct {
	Name    string
	Members []ElementID

	Exit  Range
	Fades []Fade
	Scrub time.Duration
}

// Layout is the full table of tracks and groups for a page.
type Layout struct {
	Tracks []Track
	Groups []Group
}

// Validate checks references between tracks, groups and fades.
func (l Layout) Validate() error {
	groups := make(map[string]map[ElementID]bool, len(l.Groups))
	for i, g := range l.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d: empty name: %w", i, ErrInvalidLayout)
		}
		if _, dup := groups[g.Name]; dup {
			return fmt.Errorf("group %q: duplicate name: %w", g.Name, ErrInvalidLayout)
		}
		members := make(map[ElementID]bool, len(g.Members))
		for _, m := range g.Members {
			if m == "" {
				return fmt.Errorf("group %q: empty member id: %w", g.Name, ErrInvalidLayout)
			}
			members[m] = true
		}
		for _, f := range g.Fades {
			if !members[f.Element] {
				return fmt.Errorf("group %q: fade for non-member %q: %w", g.Name, f.Element, ErrInvalidLayout)
			}
		}
		groups[g.Name] = members
	}

	entrances := make(map[string]int, len(groups))
	for i, t := range l.Tracks {
		if t.Element == "" {
			return fmt.Errorf("track %d: empty element id: %w", i, ErrInvalidLayout)
		}
		if t.Mode == ModeToggle && t.Duration <= 0 {
			return fmt.Errorf("track %d (%s): toggle without duration: %w", i, t.Element, ErrInvalidLayout)
		}
		if t.Group == "" {
			continue
		}
		members, ok := groups[t.Group]
		if !ok {
			return fmt.Errorf("track %d (%s): unknown group %q: %w", i, t.Element, t.Group, ErrInvalidLayout)
		}
		if !members[t.Element] {
			return fmt.Errorf("track %d (%s): not a member of group %q: %w", i, t.Element, t.Group, ErrInvalidLayout)
		}
		entrances[t.Group]++
	}
	for _, g := range l.Groups {
		if entrances[g.Name] == 0 {
			return fmt.Errorf("group %q: no entrance tracks: %w", g.Name, ErrInvalidLayout)
		}
	}
	return nil
}

// Elements lists every element the layout touches in first-seen order.
func (l Layout) Elements() []ElementID {
	seen := make(map[ElementID]bool)
	var out []ElementID
	add := func(id ElementID) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, t := range l.Tracks {
		add(t.Element)
	}
	for _, g := range l.Groups {
		for _, m := range g.Members {
			add(m)
		}
	}
	return out
}
