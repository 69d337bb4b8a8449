package gioplot

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type anchor int

const (
	anchorTopLeft anchor = iota
	anchorTopCenter
	anchorTopRight
	anchorBottomLeft
	anchorBottomRight
	anchorMiddleLeft
)

func (f *Figure) drawAxes(gtx layout.Context, shaper *text.Shaper, a *Axes, bottomRow bool) {
	vp := a.viewport
	rect := vp.Rect
	if rect.Empty() {
		return
	}
	pal := f.opts.Palette
	small := f.opts.TextSize * 0.85

	if a.grid && vp.Valid() {
		for _, x := range Ticks(vp.Bounds.MinX, vp.Bounds.MaxX, max(rect.Dx()/gtx.Dp(80), 2)) {
			p := vp.DataToScreen(x, vp.Bounds.MinY)
			drawLine(gtx, f32.Pt(p.X, float32(rect.Min.Y)), f32.Pt(p.X, float32(rect.Max.Y)), 1, pal.Grid)
			if bottomRow {
				drawText(gtx, shaper, image.Pt(int(p.X)+gtx.Dp(2), rect.Max.Y-gtx.Dp(1)), anchorBottomLeft, small, formatTick(x), pal.Text)
			}
		}
		for _, y := range Ticks(vp.Bounds.MinY, vp.Bounds.MaxY, max(rect.Dy()/gtx.Dp(30), 2)) {
			p := vp.DataToScreen(vp.Bounds.MinX, y)
			drawLine(gtx, f32.Pt(float32(rect.Min.X), p.Y), f32.Pt(float32(rect.Max.X), p.Y), 1, pal.Grid)
			drawText(gtx, shaper, image.Pt(rect.Min.X+gtx.Dp(2), int(p.Y)), anchorMiddleLeft, small, formatTick(y), pal.Text)
		}
	}

	if vp.Valid() && len(a.xs) > 0 {
		area := clip.Rect(rect).Push(gtx.Ops)
		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(vp.DataToScreen(a.xs[0], a.ys[0]))
		for i := 1; i < len(a.xs); i++ {
			path.LineTo(vp.DataToScreen(a.xs[i], a.ys[i]))
		}
		stroke := clip.Stroke{
			Path:  path.End(),
			Width: f.dp(f.opts.LineWidth),
		}.Op()
		paint.FillShape(gtx.Ops, pal.Line, stroke)

		r := f.dp(f.opts.MarkerRadius)
		for _, m := range a.markers {
			c := m.Screen()
			paint.FillShape(gtx.Ops, pal.Marker, clip.Ellipse{
				Min: image.Pt(int(c.X-r), int(c.Y-r)),
				Max: image.Pt(int(c.X+r), int(c.Y+r)),
			}.Op(gtx.Ops))
		}
		area.Pop()
	}

	paint.FillShape(gtx.Ops, pal.Frame, clip.Stroke{Path: clip.Rect(rect).Path(), Width: 1}.Op())

	pad := gtx.Dp(3)
	if a.title != "" {
		drawText(gtx, shaper, image.Pt((rect.Min.X+rect.Max.X)/2, rect.Min.Y+pad), anchorTopCenter, f.opts.TextSize, a.title, pal.Text)
	}
	if a.yLabel != "" {
		drawText(gtx, shaper, image.Pt(rect.Min.X+gtx.Dp(36), rect.Min.Y+pad), anchorTopLeft, small, a.yLabel, pal.Text)
	}
	if a.xLabel != "" {
		drawText(gtx, shaper, image.Pt(rect.Max.X-pad, rect.Max.Y-pad), anchorBottomRight, small, a.xLabel, pal.Text)
	}
}

// drawAnnotation draws a rounded label box centered above the marker, or
// below it when there is no room, kept inside the figure.
func (f *Figure) drawAnnotation(gtx layout.Context, shaper *text.Shaper, a *Axes, an *Annotation) {
	pal := f.opts.Palette
	anchorPt := a.viewport.DataToScreen(an.X, an.Y)
	if an.marker != nil {
		anchorPt = an.marker.Screen()
	}

	label, size := textCall(gtx, shaper, f.opts.TextSize, an.Label, pal.Text)
	pad := gtx.Dp(4)
	gap := int(f.dp(f.opts.MarkerRadius)) + gtx.Dp(6)
	box := image.Rectangle{Max: size.Add(image.Pt(2*pad, 2*pad))}

	pos := image.Pt(int(anchorPt.X)-box.Dx()/2, int(anchorPt.Y)-gap-box.Dy())
	tip := f32.Pt(anchorPt.X, float32(pos.Y+box.Dy()))
	if pos.Y < 0 {
		pos.Y = int(anchorPt.Y) + gap
		tip.Y = float32(pos.Y)
	}
	pos.X = min(max(pos.X, 0), max(f.size.X-box.Dx(), 0))
	box = box.Add(pos)

	drawLine(gtx, tip, anchorPt, 1, pal.BoxEdge)

	radius := gtx.Dp(5)
	paint.FillShape(gtx.Ops, pal.BoxFill, clip.UniformRRect(box, radius).Op(gtx.Ops))
	paint.FillShape(gtx.Ops, pal.BoxEdge, clip.Stroke{
		Path:  clip.UniformRRect(box, radius).Path(gtx.Ops),
		Width: 1,
	}.Op())

	stack := op.Offset(box.Min.Add(image.Pt(pad, pad))).Push(gtx.Ops)
	label.Add(gtx.Ops)
	stack.Pop()
}

// drawLine renders a line with given width
func drawLine(gtx layout.Context, from, to f32.Point, width float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(from)
	path.LineTo(to)

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op()

	paint.FillShape(gtx.Ops, col, stroke)
}

// textCall records a single line label and returns it with its size.
func textCall(gtx layout.Context, shaper *text.Shaper, size unit.Sp, txt string, col color.NRGBA) (op.CallOp, image.Point) {
	colorMacro := op.Record(gtx.Ops)
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	material := colorMacro.Stop()

	macro := op.Record(gtx.Ops)
	gtx.Constraints.Min = image.Point{}
	label := widget.Label{
		Alignment: text.Start,
		MaxLines:  1,
	}
	dims := label.Layout(gtx, shaper, font.Font{}, size, txt, material)
	return macro.Stop(), dims.Size
}

func drawText(gtx layout.Context, shaper *text.Shaper, at image.Point, an anchor, size unit.Sp, txt string, col color.NRGBA) {
	call, dims := textCall(gtx, shaper, size, txt, col)
	switch an {
	case anchorTopCenter:
		at.X -= dims.X / 2
	case anchorTopRight:
		at.X -= dims.X
	case anchorBottomLeft:
		at.Y -= dims.Y
	case anchorBottomRight:
		at = at.Sub(dims)
	case anchorMiddleLeft:
		at.Y -= dims.Y / 2
	}
	stack := op.Offset(at).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
