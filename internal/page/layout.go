package page

import (
	"time"

	"cyberfolio/internal/sequence"
)

// Element ids of the default page.
const (
	Hero     sequence.ElementID = "hero"
	Title    sequence.ElementID = "title"
	Subtitle sequence.ElementID = "subtitle"
	Image    sequence.ElementID = "image"
	Left     sequence.ElementID = "left"
	Right    sequence.ElementID = "right"
	Banner   sequence.ElementID = "banner"
)

// DeveloperGroup is the staged developer section.
const DeveloperGroup = "developer"

// DefaultLayout is the scroll choreography of the portfolio page.
func DefaultLayout() sequence.Layout {
	hidden := func(p sequence.Pose) sequence.Pose {
		if p.Scale == 0 {
			p.Scale = 1
		}
		return p
	}
	entrance := sequence.Range{Start: sequence.VH(250), End: sequence.VH(350)}
	// The hero section fades out as one block.
	heroFade := func(id sequence.ElementID) sequence.Track {
		return sequence.Track{
			Element: id,
			Range:   sequence.Range{Start: sequence.PX(0), End: sequence.PX(300)},
			From:    sequence.Shown,
			To:      hidden(sequence.Pose{Y: sequence.PX(-100)}),
			Ease:    sequence.Power1Out,
		}
	}

	return sequence.Layout{
		Tracks: []sequence.Track{
			heroFade(Hero),
			heroFade(Welcome),
			heroFade(Presentation),
			heroFade(Portfolio),
			{
				Element: Title,
				Group:   DeveloperGroup,
				Range:   entrance,
				From:    hidden(sequence.Pose{Y: sequence.PX(120), Blur: 8}),
				To:      sequence.Shown,
				Ease:    sequence.Power2Out,
				Scrub:   1200 * time.Millisecond,
			},
			{
				Element: Subtitle,
				Group:   DeveloperGroup,
				Range:   entrance,
				Span:    sequence.Span{From: 0.1, To: 0.9},
				From:    hidden(sequence.Pose{Y: sequence.PX(40), Blur: 10}),
				To:      sequence.Shown,
				Ease:    sequence.Power2Out,
				Scrub:   1200 * time.Millisecond,
			},
			{
				Element: Image,
				Range:   sequence.Range{Start: sequence.VH(530), End: sequence.VH(570)},
				From:    sequence.Pose{Y: sequence.PX(50), Scale: 0.8},
				To:      sequence.Shown,
				Ease:    sequence.Power2Out,
				Scrub:   1200 * time.Millisecond,
			},
			{
				Element:  Left,
				Range:    sequence.Range{Start: sequence.VH(400), End: sequence.VH(420)},
				From:     hidden(sequence.Pose{X: sequence.VW(-120), Blur: 20}),
				To:       sequence.Shown,
				Ease:     sequence.Power3Out,
				Mode:     sequence.ModeToggle,
				Duration: 1200 * time.Millisecond,
				Actions:  sequence.PlayReverse,
			},
			{
				Element:  Right,
				Range:    sequence.Range{Start: sequence.VH(400), End: sequence.VH(425)},
				From:     hidden(sequence.Pose{X: sequence.VW(120), Blur: 20}),
				To:       sequence.Shown,
				Ease:     sequence.Power3Out,
				Mode:     sequence.ModeToggle,
				Duration: 1200 * time.Millisecond,
				Actions:  sequence.PlayReverse,
			},
			{
				Element:  Banner,
				Range:    sequence.Range{Start: sequence.VH(445), End: sequence.VH(475)},
				From:     hidden(sequence.Pose{Y: sequence.PX(140)}),
				To:       sequence.Shown,
				Ease:     sequence.Power2Out,
				Mode:     sequence.ModeToggle,
				Duration: time.Second,
				Actions:  sequence.PlayReverse,
			},
		},
		Groups: []sequence.Group{
			{
				Name:    DeveloperGroup,
				Members: []sequence.ElementID{Banner, Left, Right, Image, Subtitle, Title},
				Exit:    sequence.Range{Start: sequence.VH(750), End: sequence.VH(950)},
				Scrub:   1500 * time.Millisecond,
				// Image and title spans overlap on purpose: they cross-fade.
				Fades: []sequence.Fade{
					{Element: Banner, Span: sequence.Span{From: 0.1, To: 0.4}},
					{Element: Image, Span: sequence.Span{From: 0.5, To: 0.8}},
					{Element: Title, Span: sequence.Span{From: 0.7, To: 1}},
					{Element: Subtitle, Span: sequence.Span{From: 0.7, To: 1}},
				},
			},
		},
	}
}

// Anchor places an element. Fixed anchors are viewport-relative and stay put
// while the page scrolls; the rest are document positions.
type Anchor struct {
	X, Y  sequence.Length
	Fixed bool
}

// Element is a host-owned handle the sequencer drives.
type Element struct {
	ID     sequence.ElementID
	Label  string
	Size   float64
	Anchor Anchor
	Visual sequence.Visual
}

// SetVisual implements sequence.Target.
func (e *Element) SetVisual(v sequence.Visual) { e.Visual = v }

// DefaultElements returns the text handles of the portfolio page.
func DefaultElements() []*Element {
	return []*Element{
		{ID: Hero, Label: "FJR.", Size: 96, Anchor: Anchor{X: sequence.VW(50), Y: sequence.VH(45)}},
		{ID: Welcome, Label: "Welcome", Size: 18, Anchor: Anchor{X: sequence.VW(12), Y: sequence.VH(76)}},
		{ID: Presentation, Label: "Presentation", Size: 18, Anchor: Anchor{X: sequence.VW(12), Y: sequence.VH(82)}},
		{ID: Portfolio, Label: "Portfolio", Size: 18, Anchor: Anchor{X: sequence.VW(12), Y: sequence.VH(88)}},
		{ID: Title, Label: "DEVELOPER", Size: 72, Anchor: Anchor{X: sequence.VW(50), Y: sequence.VH(22), Fixed: true}},
		{ID: Subtitle, Label: "SYSTEMS ANALYST AND DEVELOPER.", Size: 24, Anchor: Anchor{X: sequence.VW(50), Y: sequence.VH(34), Fixed: true}},
		{ID: Image, Label: "[ portrait ]", Size: 32, Anchor: Anchor{X: sequence.VW(50), Y: sequence.VH(55), Fixed: true}},
		{ID: Left, Label: "Self-taught since 2012, chasing every new problem the web throws up.", Size: 18, Anchor: Anchor{X: sequence.VW(25), Y: sequence.VH(470)}},
		{ID: Right, Label: "Security operations by day, systems development by night.", Size: 18, Anchor: Anchor{X: sequence.VW(75), Y: sequence.VH(470)}},
		{ID: Banner, Size: 28, Anchor: Anchor{X: sequence.VW(0), Y: sequence.VH(500)}},
	}
}
