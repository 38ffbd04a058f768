// Package render turns a run's state into a display list and rasterizes it.
//
// [Build] is a pure function of [sim.State] and [sim.Surface]; every output
// surface (terminal, browser, SVG) paints the same [Scene]. The terminal
// rasterizer draws on a Braille [Canvas], where each character cell holds a
// 2x4 block of sub-pixels.
package render
