package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/dragsim/internal/render"
)

// SceneToSVG renders a scene with the same layers and colors as the
// browser canvas: ruler, trajectory, apex line, ball.
func SceneToSVG(sc render.Scene) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, sc.Width, sc.Height, sc.Width, sc.Height))

	sb.WriteString(`<g id="ruler" stroke="black" fill="black" font-family="Arial" font-size="12">
`)
	for _, tick := range sc.Ruler {
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="10" y2="%.1f"/><text x="15" y="%.1f" stroke="none">%d</text>
`, tick.Y, tick.Y, tick.Y+4, tick.Label))
	}
	sb.WriteString("</g>\n")

	// Overflowed points have no coordinates; the path restarts after them.
	var d strings.Builder
	pen := false
	for _, p := range sc.Path {
		if !finite(p.X) || !finite(p.Y) {
			pen = false
			continue
		}
		cmd := " L"
		if !pen {
			cmd = " M"
		}
		d.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, p.X, p.Y))
		pen = true
	}
	if len(sc.Path) > 1 && d.Len() > 0 {
		sb.WriteString(fmt.Sprintf(`<path id="trajectory" fill="none" stroke="blue" stroke-width="1" d="%s"/>
`, strings.TrimSpace(d.String())))
	}

	if sc.Apex != nil && finite(*sc.Apex) {
		sb.WriteString(fmt.Sprintf(`<line id="apex" x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="red"/>
`, *sc.Apex, sc.Width, *sc.Apex))
	}

	if finite(sc.Ball.X) && finite(sc.Ball.Y) {
		sb.WriteString(fmt.Sprintf(`<circle id="ball" cx="%.1f" cy="%.1f" r="%.1f" fill="blue"/>
`, sc.Ball.X, sc.Ball.Y, sc.Ball.R))
	}
	sb.WriteString("</svg>")

	return sb.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func WriteSVG(w io.Writer, sc render.Scene) error {
	_, err := io.WriteString(w, SceneToSVG(sc))
	return err
}
