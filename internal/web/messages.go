package web

import (
	"github.com/san-kum/dragsim/internal/render"
	"github.com/san-kum/dragsim/internal/sim"
)

const (
	typeStart = "start"
	typeStop  = "stop"
	typeReset = "reset"
	typeFrame = "frame"
	typeError = "error"
)

// clientMessage carries the raw form text so parsing errors can name the
// offending field.
type clientMessage struct {
	Type          string  `json:"type"`
	Height        string  `json:"initial_height"`
	Speed         string  `json:"initial_velocity"`
	Angle         string  `json:"launch_angle"`
	Drag          string  `json:"air_resistance"`
	SurfaceWidth  float64 `json:"width"`
	SurfaceHeight float64 `json:"height"`
}

// resetMessage tells the client to clear its history before the frames of
// the next run arrive.
type resetMessage struct {
	Type   string     `json:"type"`
	Params sim.Params `json:"params"`
}

type frameMessage struct {
	Type     string       `json:"type"`
	Run      sim.RunID    `json:"run"`
	Time     string       `json:"time"`
	Velocity string       `json:"velocity"`
	Position string       `json:"position"`
	Frame    sim.Frame    `json:"frame"`
	Scene    render.Scene `json:"scene"`
	Log      string       `json:"log,omitempty"`
	Terminal bool         `json:"terminal"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
