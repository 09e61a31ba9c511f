package page

import "strings"

// BannerItems are the words scrolled by the developer banner.
var BannerItems = []string{"BACK END", "FRONT END", "FULL STACK", "MACHINE LEARNING", "SYSADMIN", "NETSEC", "NETOPS"}

// Marquee is an endless horizontal banner whose speed follows scroll velocity.
type Marquee struct {
	Text  string
	Width float64

	X        float64
	Velocity float64

	// Speed is the idle drift applied near the top and bottom of the page.
	Speed float64
	// Factor scales scroll delta into banner velocity.
	Factor float64
	// Edge is the distance from either end of the page that counts as near.
	Edge float64
}

// NewMarquee lays items out on one line. advance is the width of one glyph;
// Width is the length of a single copy of the text, the wrap period.
func NewMarquee(items []string, advance float64) *Marquee {
	text := strings.Join(items, "  ·  ") + "  ·  "
	return &Marquee{
		Text:   text,
		Width:  float64(len([]rune(text))) * advance,
		Speed:  0.5,
		Factor: 0.2,
		Edge:   10,
	}
}

// OnScroll derives velocity from a scroll step. Near either end of the page
// the banner drifts at the idle speed against the scroll direction.
func (m *Marquee) OnScroll(scrollY, delta, maxScroll float64) {
	dir := 1.0
	if delta > 0 {
		dir = -1
	}
	if scrollY <= m.Edge || scrollY >= maxScroll-m.Edge {
		m.Velocity = dir * m.Speed
		return
	}
	m.Velocity = delta * m.Factor
}

// Step advances the offset by one frame, wrapping within (-Width, 0].
func (m *Marquee) Step() {
	m.X += m.Velocity
	if m.Width <= 0 {
		m.X = 0
		return
	}
	for m.X <= -m.Width {
		m.X += m.Width
	}
	for m.X > 0 {
		m.X -= m.Width
	}
}
