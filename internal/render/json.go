package render

import (
	"encoding/json"

	"github.com/san-kum/dragsim/internal/sim"
)

type ballJSON struct {
	X sim.JSONFloat `json:"x"`
	Y sim.JSONFloat `json:"y"`
	R sim.JSONFloat `json:"r"`
}

func (b Ball) MarshalJSON() ([]byte, error) {
	return json.Marshal(ballJSON{sim.JSONFloat(b.X), sim.JSONFloat(b.Y), sim.JSONFloat(b.R)})
}

func (b *Ball) UnmarshalJSON(data []byte) error {
	var w ballJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Ball{X: float64(w.X), Y: float64(w.Y), R: float64(w.R)}
	return nil
}

// sceneFields is Scene without its methods; the apex field below shadows
// the embedded one.
type sceneFields Scene

type sceneJSON struct {
	*sceneFields
	Apex *sim.JSONFloat `json:"apex,omitempty"`
}

func (sc Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(sceneJSON{
		sceneFields: (*sceneFields)(&sc),
		Apex:        (*sim.JSONFloat)(sc.Apex),
	})
}

func (sc *Scene) UnmarshalJSON(data []byte) error {
	w := sceneJSON{sceneFields: (*sceneFields)(sc)}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	sc.Apex = (*float64)(w.Apex)
	return nil
}
