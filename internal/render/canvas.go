package render

import "strings"

// blank is the empty braille cell. A cell holds a 2x4 grid of dots, so the
// canvas has cols*2 by rows*4 addressable dots.
const blank = '⠀'

// dotBit returns the braille bit for dot (dx, dy) within a cell. Dots 1-3
// and 4-6 run down the two columns, dots 7 and 8 sit on the bottom row.
func dotBit(dx, dy int) rune {
	if dy == 3 {
		return 0x40 << dx
	}
	return 1 << (dy + 3*dx)
}

type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		cols:  max(cols, 0),
		rows:  max(rows, 0),
		cells: make([]rune, max(cols, 0)*max(rows, 0)),
	}
	c.Clear()
	return c
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// Cell returns the glyph at a character position, or blank outside.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return blank
	}
	return c.cells[row*c.cols+col]
}

// Plot inks one dot. Dots off the canvas or under a label are dropped.
func (c *Canvas) Plot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	i := row*c.cols + col
	if c.cells[i] < blank || c.cells[i] > blank+0xff {
		return
	}
	c.cells[i] |= dotBit(x%2, y%4)
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// Line inks the dots between two points (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.Plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Disc inks every dot within r of (cx, cy).
func (c *Canvas) Disc(cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Plot(cx+x, cy+y)
			}
		}
	}
}

// Label writes s over whole cells starting at (col, row), clipped.
func (c *Canvas) Label(col, row int, s string) {
	if row < 0 || row >= c.rows {
		return
	}
	for i, r := range []rune(s) {
		if x := col + i; x >= 0 && x < c.cols {
			c.cells[row*c.cols+x] = r
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(len(c.cells)*3 + c.rows)
	for row := 0; row < c.rows; row++ {
		b.WriteString(string(c.cells[row*c.cols : (row+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
