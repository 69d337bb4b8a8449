package gioplot

import (
	"image"
	"math"

	"gioui.org/f32"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// Viewport maps the data bounds of one subplot onto its screen rectangle.
// Screen y grows downwards, data y upwards.
type Viewport struct {
	Bounds plot.Bounds
	Rect   image.Rectangle
}

// Valid reports whether the viewport has been laid out with a usable area.
func (v Viewport) Valid() bool {
	return !v.Rect.Empty() && v.Bounds.MaxX > v.Bounds.MinX && v.Bounds.MaxY > v.Bounds.MinY
}

// nonsingular widens an empty x or y range around its value so a lone
// sample, such as a single one at x=0, still gets an area to be drawn in.
func nonsingular(b plot.Bounds) plot.Bounds {
	b.MinX, b.MaxX = widen(b.MinX, b.MaxX)
	b.MinY, b.MaxY = widen(b.MinY, b.MaxY)
	return b
}

func widen(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	mid := (lo + hi) / 2
	pad := math.Max(math.Abs(mid)*0.05, 0.5)
	return mid - pad, mid + pad
}

// DataToScreen converts data coordinates to screen coordinates (pixels)
func (v Viewport) DataToScreen(x, y float64) f32.Point {
	if !v.Valid() {
		return f32.Point{X: float32(v.Rect.Min.X), Y: float32(v.Rect.Max.Y)}
	}
	sx := float64(v.Rect.Min.X) + (x-v.Bounds.MinX)*v.scaleX()
	sy := float64(v.Rect.Max.Y) - (y-v.Bounds.MinY)*v.scaleY()
	return f32.Pt(float32(sx), float32(sy))
}

// ScreenToData converts screen coordinates (pixels) to data coordinates
func (v Viewport) ScreenToData(p f32.Point) (x, y float64) {
	if !v.Valid() {
		return v.Bounds.MinX, v.Bounds.MinY
	}
	x = v.Bounds.MinX + (float64(p.X)-float64(v.Rect.Min.X))/v.scaleX()
	y = v.Bounds.MinY + (float64(v.Rect.Max.Y)-float64(p.Y))/v.scaleY()
	return x, y
}

// Contains reports whether p lies inside the screen rectangle.
func (v Viewport) Contains(p f32.Point) bool {
	return p.X >= float32(v.Rect.Min.X) && p.X <= float32(v.Rect.Max.X) &&
		p.Y >= float32(v.Rect.Min.Y) && p.Y <= float32(v.Rect.Max.Y)
}

func (v Viewport) scaleX() float64 {
	return float64(v.Rect.Dx()) / (v.Bounds.MaxX - v.Bounds.MinX)
}

func (v Viewport) scaleY() float64 {
	return float64(v.Rect.Dy()) / (v.Bounds.MaxY - v.Bounds.MinY)
}

// CellRect returns the screen rectangle of cell index in a rows x cols grid
// laid out on a figure of the given size. Margins are fractions of the figure
// measured from its bottom-left corner; spacing is a fraction of the average
// cell size.
func CellRect(size image.Point, l plot.Layout, rows, cols, index int) image.Rectangle {
	if rows <= 0 || cols <= 0 || index < 0 || index >= rows*cols {
		return image.Rectangle{}
	}
	w, h := float64(size.X), float64(size.Y)
	left := float64(l.Left) * w
	right := float64(l.Right) * w
	top := (1 - float64(l.Top)) * h
	bottom := (1 - float64(l.Bottom)) * h
	if right <= left || bottom <= top {
		return image.Rectangle{}
	}

	cellW := (right - left) / (float64(cols) + float64(l.WSpace)*float64(cols-1))
	cellH := (bottom - top) / (float64(rows) + float64(l.HSpace)*float64(rows-1))
	row, col := index/cols, index%cols

	x0 := left + float64(col)*cellW*(1+float64(l.WSpace))
	y0 := top + float64(row)*cellH*(1+float64(l.HSpace))
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+cellW)), int(math.Round(y0+cellH)),
	)
}

// Ticks returns evenly spaced round values covering [min, max], aiming for
// about n of them.
func Ticks(min, max float64, n int) []float64 {
	if n < 1 || !(max > min) || math.IsInf(max-min, 0) {
		return nil
	}
	step := niceStep((max - min) / float64(n))
	first := math.Ceil(min/step) * step
	var ticks []float64
	for t := first; t <= max+step*1e-9; t += step {
		// avoid -0 and accumulated float noise in labels
		v := math.Round(t/step) * step
		if v == 0 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	switch frac := raw / base; {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}
