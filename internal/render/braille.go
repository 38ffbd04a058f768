package render

import (
	"math"
	"strconv"
)

// labelEvery thins ruler labels; a terminal row cannot fit one per tick.
const labelEvery = 50

// raster maps surface pixels onto the dot grid of a canvas. Everything is
// clipped in float space first, so only on-canvas dots are ever visited.
type raster struct {
	c      *Canvas
	sx, sy float64
	w, h   float64 // last dot column and row
}

// segment draws from (x0, y0) to (x1, y1) in dot coordinates.
func (r raster) segment(x0, y0, x1, y1 float64) {
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, r.w, r.h)
	if !ok {
		return
	}
	r.c.Line(int(x0), int(y0), int(x1), int(y1))
}

// clipSegment clips a segment to [0, w] x [0, h] (Liang-Barsky). Segments
// with a non-finite endpoint, or none of their length inside, are rejected.
func clipSegment(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if !finite(v) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	if !finite(dx) || !finite(dy) {
		return 0, 0, 0, 0, false
	}

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{{-dx, x0}, {dx, w - x0}, {-dy, y0}, {dy, h - y0}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return clamp(x0+t0*dx, w), clamp(y0+t0*dy, h), clamp(x0+t1*dx, w), clamp(y0+t1*dy, h), true
}

func clamp(v, hi float64) float64 {
	return math.Min(math.Max(v, 0), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Braille rasterizes sc onto a cols x rows character canvas, scaling the
// surface to fit. Points that overflowed to Inf or NaN are left out.
func Braille(sc Scene, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows)
	if sc.Width <= 0 || sc.Height <= 0 || cols <= 0 || rows <= 0 {
		return c
	}

	r := raster{
		c:  c,
		sx: float64(cols*2) / sc.Width,
		sy: float64(rows*4) / sc.Height,
		w:  float64(cols*2 - 1),
		h:  float64(rows*4 - 1),
	}

	for _, tick := range sc.Ruler {
		y := math.Floor(tick.Y * r.sy)
		if tick.Y == sc.Height {
			y = r.h
		}
		r.segment(0, y, math.Floor(10*r.sx), y)
	}

	for i := 1; i < len(sc.Path); i++ {
		a, b := sc.Path[i-1], sc.Path[i]
		r.segment(a.X*r.sx, a.Y*r.sy, b.X*r.sx, b.Y*r.sy)
	}

	if sc.Apex != nil {
		y := math.Floor(*sc.Apex * r.sy)
		r.segment(0, y, r.w, y)
	}

	radius := max(int(math.Round(sc.Ball.R*math.Min(r.sx, r.sy))), 1)
	bx, by := math.Floor(sc.Ball.X*r.sx), math.Floor(sc.Ball.Y*r.sy)
	rr := float64(radius)
	if finite(bx) && finite(by) && bx >= -rr && bx <= r.w+rr && by >= -rr && by <= r.h+rr {
		c.Disc(int(bx), int(by), radius)
	}

	for _, tick := range sc.Ruler {
		if tick.Label%labelEvery != 0 {
			continue
		}
		row := int(math.Floor(tick.Y*r.sy)) / 4
		if row >= rows {
			row = rows - 1
		}
		c.Label(1, row, strconv.Itoa(tick.Label))
	}

	return c
}
