//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"cyberfolio/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a translucent parameter panel along the right edge of the
// viewport for any component that exposes tunables.
type HUD struct {
	source   core.ParameterSource
	width    int
	snapshot core.ParameterSnapshot

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string
	face         *text.GoXFace
}

// NewHUD constructs a HUD for source with the given panel width.
func NewHUD(source core.ParameterSource, width int) *HUD {
	h := &HUD{source: source, width: max(width, 0), face: text.NewGoXFace(basicfont.Face7x13)}
	h.title = buildTitle(source)
	if provider, ok := source.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	if setter, ok := source.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := source.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update refreshes the snapshot and handles clicks on the panel. It reports
// whether the click landed on the panel, in which case the caller should not
// forward it to the page.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil || h.source == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.source.Parameters()
	h.refreshControlValues()
	return h.handleInput()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(offsetX), 0, float32(h.width), float32(height), color.RGBA{R: 8, G: 12, B: 10, A: 220}, false)
	h.drawControls(screen, float64(offsetX))
}

// Width returns the panel width.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

func buildTitle(source core.ParameterSource) string {
	if source == nil || source.Name() == "" {
		return "Controls"
	}
	return fmt.Sprintf("%s controls", strings.ToUpper(source.Name()[:1])+source.Name()[1:])
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		}
	}
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX || mx >= h.panelOffsetX+h.width {
		return false
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			break
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			break
		}
	}
	return true
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return
		}
		target, ok := nextInt(state, direction)
		if !ok {
			return
		}
		if h.intSetter.SetIntParameter(state.control.Key, target) {
			state.intValue = target
			state.floatValue = float64(target)
			state.value = strconv.Itoa(target)
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return
		}
		target, ok := nextFloat(state, direction)
		if !ok {
			return
		}
		if h.floatSetter.SetFloatParameter(state.control.Key, target) {
			state.floatValue = target
			state.value = formatFloat(state.control, target)
		}
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	switch state.control.Type {
	case core.ParamTypeInt:
		_, ok := nextInt(state, direction)
		return ok && h.intSetter != nil
	case core.ParamTypeFloat:
		_, ok := nextFloat(state, direction)
		return ok && h.floatSetter != nil
	default:
		return false
	}
}

func (h *HUD) drawControls(screen *ebiten.Image, offsetX float64) {
	h.drawText(screen, h.title, offsetX+panelPadding, panelPadding, color.RGBA{R: 120, G: 255, B: 140, A: 255})
	if len(h.controls) == 0 {
		h.drawText(screen, "No adjustable parameters", offsetX+panelPadding, panelPadding+infoSpacing, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		labelY := float64(state.top + (lineHeight-13)/2)
		h.drawText(screen, state.control.Label, offsetX+panelPadding, labelY, color.RGBA{R: 220, G: 230, B: 220, A: 255})

		valueColor := color.RGBA{R: 220, G: 230, B: 220, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		valueWidth, _ := text.Measure(state.value, h.face, 0)
		valueX := offsetX + float64(state.minusRect.Min.X-buttonGap) - valueWidth
		h.drawText(screen, state.value, valueX, labelY, valueColor)

		h.drawButton(screen, offsetX, state.minusRect, "-", state.hasValue && h.canAdjust(state, -1))
		h.drawButton(screen, offsetX, state.plusRect, "+", state.hasValue && h.canAdjust(state, 1))
	}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}

func (h *HUD) drawButton(screen *ebiten.Image, offsetX float64, rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 30, G: 70, B: 40, A: 255}
	fg := color.RGBA{R: 230, G: 255, B: 230, A: 255}
	if !enabled {
		bg = color.RGBA{R: 24, G: 30, B: 26, A: 255}
		fg = color.RGBA{R: 110, G: 120, B: 110, A: 255}
	}
	x := offsetX + float64(rect.Min.X)
	vector.DrawFilledRect(screen, float32(x), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x+float64(rect.Dx())/2, float64(rect.Min.Y)+float64(rect.Dy())/2)
	op.ColorScale.ScaleWithColor(fg)
	text.Draw(screen, label, h.face, op)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func nextInt(state *hudControlState, direction int) (int, bool) {
	step := max(int(math.Round(state.control.Step)), 1)
	target := state.intValue + direction*step
	if state.control.HasMin {
		target = max(target, int(math.Round(state.control.Min)))
	}
	if state.control.HasMax {
		target = min(target, int(math.Round(state.control.Max)))
	}
	return target, target != state.intValue
}

func nextFloat(state *hudControlState, direction int) (float64, bool) {
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := state.floatValue + float64(direction)*step
	if state.control.HasMin {
		target = math.Max(target, state.control.Min)
	}
	if state.control.HasMax {
		target = math.Min(target, state.control.Max)
	}
	return target, math.Abs(target-state.floatValue) >= 1e-9
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	infoSpacing    = 32
	controlsTop    = panelPadding + headerBaseline + 14
)
