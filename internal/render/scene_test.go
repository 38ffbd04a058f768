package render

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/dragsim/internal/sim"
)

var surf = sim.Surface{Width: 800, Height: 600}

func runTicks(t *testing.T, p sim.Params, n int) sim.State {
	t.Helper()
	eng, err := sim.New(p, surf)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n && !eng.Done(); i++ {
		eng.Step()
	}
	return eng.State()
}

func TestBuildRuler(t *testing.T) {
	sc := Build(sim.Init(sim.Params{}, surf), surf)

	if len(sc.Ruler) != 51 {
		t.Fatalf("expected 51 ruler ticks, got %d", len(sc.Ruler))
	}
	if sc.Ruler[0].Y != 600 || sc.Ruler[0].Label != 0 {
		t.Errorf("first tick = %+v", sc.Ruler[0])
	}
	last := sc.Ruler[50]
	if last.Label != 500 || last.Y != 600-500*sim.ScaleFactor {
		t.Errorf("last tick = %+v", last)
	}
}

func TestBuildBeforeFirstTick(t *testing.T) {
	s := sim.Init(sim.Params{Height: 10, Speed: 5, Angle: 45}, surf)
	sc := Build(s, surf)

	if sc.Apex != nil {
		t.Error("apex drawn before any tick")
	}
	if len(sc.Path) != 1 || sc.Path[0] != s.Start {
		t.Errorf("path = %v, want launch point only", sc.Path)
	}
	if sc.Ball.X != 400 || sc.Ball.Y != 550 || sc.Ball.R != sim.BallRadius {
		t.Errorf("ball = %+v", sc.Ball)
	}
}

func TestBuildFollowsState(t *testing.T) {
	s := runTicks(t, sim.Params{Height: 10, Speed: 20, Angle: 45}, 30)
	sc := Build(s, surf)

	if len(sc.Path) != len(s.Trajectory)+1 {
		t.Errorf("path length %d, trajectory %d", len(sc.Path), len(s.Trajectory))
	}
	if sc.Apex == nil || *sc.Apex != *s.Apex {
		t.Error("apex line does not match state")
	}
	*sc.Apex = 0
	if *s.Apex == 0 {
		t.Error("scene apex aliases state")
	}
}

func TestBrailleDrawsBall(t *testing.T) {
	s := runTicks(t, sim.Params{Height: 60, Speed: 10, Angle: 30}, 10)
	c := Braille(Build(s, surf), 80, 24)

	if c.Cols() != 80 || c.Rows() != 24 {
		t.Fatalf("canvas %dx%d", c.Cols(), c.Rows())
	}
	col := int(s.Pos.X*float64(80*2)/surf.Width) / 2
	row := int(s.Pos.Y*float64(24*4)/surf.Height) / 4
	if c.Cell(col, row) == blank {
		t.Errorf("no ink at ball cell (%d, %d)", col, row)
	}

	out := c.String()
	if !strings.Contains(out, "0") || !strings.Contains(out, "50") {
		t.Error("ruler labels missing")
	}
	if strings.Count(out, "\n") != 24 {
		t.Errorf("expected 24 rows")
	}
}

func TestBrailleDegenerateSize(t *testing.T) {
	c := Braille(Scene{}, 10, 5)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != blank && r != '\n' }) {
		t.Error("empty scene produced ink")
	}
}

func TestCanvasClipsAndClears(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot(-1, 0)
	c.Plot(100, 100)
	c.Line(0, 0, 7, 7)
	if c.Cell(0, 0) == blank {
		t.Error("line start not drawn")
	}
	c.Label(0, 1, "abcdef")
	if got := strings.Split(c.String(), "\n")[1]; got != "abcd" {
		t.Errorf("label row = %q", got)
	}
	c.Plot(1, 5)
	if c.Cell(0, 1) != 'a' {
		t.Error("dot overwrote a label")
	}
	c.Clear()
	for row := 0; row < c.Rows(); row++ {
		for col := 0; col < c.Cols(); col++ {
			if c.Cell(col, row) != blank {
				t.Fatal("clear left ink")
			}
		}
	}
}

func TestDotBits(t *testing.T) {
	// Full cell is U+28FF.
	var all rune
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			all |= dotBit(dx, dy)
		}
	}
	if all != 0xff {
		t.Errorf("dot bits cover %#x, want 0xff", all)
	}
	if dotBit(0, 0) != 0x1 || dotBit(1, 0) != 0x8 || dotBit(0, 3) != 0x40 || dotBit(1, 3) != 0x80 {
		t.Error("dot bits do not follow braille numbering")
	}
}

// brailleWithin fails the test if rasterizing sc takes longer than d.
func brailleWithin(t *testing.T, sc Scene, d time.Duration) *Canvas {
	t.Helper()
	done := make(chan *Canvas, 1)
	go func() { done <- Braille(sc, 60, 24) }()
	select {
	case c := <-done:
		return c
	case <-time.After(d):
		t.Fatalf("Braille did not return within %v", d)
		return nil
	}
}

func TestBrailleSkipsOverflowedState(t *testing.T) {
	s := runTicks(t, sim.Params{Height: 10, Speed: 20, Angle: 45, Drag: -1000}, 400)
	if !math.IsInf(s.Pos.X, 0) || !math.IsInf(s.Pos.Y, 0) {
		t.Fatalf("expected overflow after 400 ticks, got %+v", s.Pos)
	}

	c := brailleWithin(t, Build(s, surf), 5*time.Second)
	if c.Cell(0, 23) == blank {
		t.Error("ruler missing at ground row")
	}
}

func TestBrailleHugeFiniteCoordinates(t *testing.T) {
	s := runTicks(t, sim.Params{Height: 60, Speed: 1e9, Angle: 0}, 60)
	if !(s.Pos.X > 1e9) {
		t.Fatalf("expected far off-canvas x, got %f", s.Pos.X)
	}
	sc := Build(s, surf)
	sc.Path = append(sc.Path, sim.Vec2{X: -1e300, Y: 1e300}, sim.Vec2{X: math.NaN(), Y: 0})

	c := brailleWithin(t, sc, 5*time.Second)
	startCol, startRow := 400*60*2/800/2, 300*24*4/600/4
	if c.Cell(startCol, startRow) == blank {
		t.Error("on-canvas start of the path was not drawn")
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		ok             bool
		want           [4]float64
	}{
		{"inside", 1, 1, 5, 5, true, [4]float64{1, 1, 5, 5}},
		{"crosses right edge", 5, 5, 15, 5, true, [4]float64{5, 5, 9, 5}},
		{"crosses both edges", -10, 2, 20, 2, true, [4]float64{0, 2, 9, 2}},
		{"fully outside", 20, 20, 30, 30, false, [4]float64{}},
		{"huge endpoint", 5, 5, 1e300, 5, true, [4]float64{5, 5, 9, 5}},
		{"infinite endpoint", 5, 5, math.Inf(1), 5, false, [4]float64{}},
		{"nan endpoint", 5, 5, math.NaN(), 5, false, [4]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(tt.x0, tt.y0, tt.x1, tt.y1, 9, 9)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got := [4]float64{x0, y0, x1, y1}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("clipped to %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSceneJSONCarriesOverflow(t *testing.T) {
	s := runTicks(t, sim.Params{Height: 10, Speed: 20, Angle: 45, Drag: -1000}, 400)
	data, err := json.Marshal(Build(s, surf))
	if err != nil {
		t.Fatalf("marshal overflowed scene: %v", err)
	}
	if !strings.Contains(string(data), `"apex":"-Infinity"`) {
		t.Errorf("apex not encoded as -Infinity: %.200s", data)
	}

	var back Scene
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Apex == nil || !math.IsInf(*back.Apex, -1) || !math.IsInf(back.Ball.X, 1) {
		t.Errorf("round trip lost non-finite values: apex %v ball %+v", back.Apex, back.Ball)
	}
	if len(back.Ruler) != 51 || len(back.Path) != len(s.Trajectory)+1 {
		t.Errorf("round trip lost fields: %d ticks, %d points", len(back.Ruler), len(back.Path))
	}
}

func TestSeriesGapsOverflow(t *testing.T) {
	out, ok := Series([]float64{1, 2, 1e300, math.Inf(1), math.NaN()})
	if !ok {
		t.Fatal("two finite samples should be chartable")
	}
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("finite samples changed: %v", out)
	}
	for _, v := range out[2:] {
		if !math.IsNaN(v) {
			t.Errorf("expected gaps, got %v", out)
		}
	}

	if _, ok := Series([]float64{3, math.Inf(-1)}); ok {
		t.Error("a single real sample is not chartable")
	}
}
