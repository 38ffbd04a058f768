package sim

import (
	"encoding/json"
	"fmt"
	"math"
)

// JSONFloat encodes like a float64, except that values with no JSON number
// form are written as the strings "NaN", "Infinity" and "-Infinity". Strong
// negative drag overflows a run's state, and those frames still go out.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(v)
}

func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = JSONFloat(math.NaN())
		case "Infinity":
			*f = JSONFloat(math.Inf(1))
		case "-Infinity":
			*f = JSONFloat(math.Inf(-1))
		default:
			return fmt.Errorf("sim: not a number: %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

type vec2JSON struct {
	X JSONFloat `json:"x"`
	Y JSONFloat `json:"y"`
}

func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal(vec2JSON{JSONFloat(v.X), JSONFloat(v.Y)})
}

func (v *Vec2) UnmarshalJSON(data []byte) error {
	var w vec2JSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v.X, v.Y = float64(w.X), float64(w.Y)
	return nil
}

type frameJSON struct {
	Time    JSONFloat `json:"time"`
	Pos     Vec2      `json:"pos"`
	Speed   JSONFloat `json:"speed"`
	Height  JSONFloat `json:"height"`
	XMeters JSONFloat `json:"x_meters"`
}

func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(frameJSON{
		Time:    JSONFloat(f.Time),
		Pos:     f.Pos,
		Speed:   JSONFloat(f.Speed),
		Height:  JSONFloat(f.Height),
		XMeters: JSONFloat(f.XMeters),
	})
}

func (f *Frame) UnmarshalJSON(data []byte) error {
	var w frameJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = Frame{
		Time:    float64(w.Time),
		Pos:     w.Pos,
		Speed:   float64(w.Speed),
		Height:  float64(w.Height),
		XMeters: float64(w.XMeters),
	}
	return nil
}

type logEntryJSON struct {
	Time   JSONFloat `json:"time"`
	Speed  JSONFloat `json:"speed"`
	Height JSONFloat `json:"height"`
}

func (e LogEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(logEntryJSON{JSONFloat(e.Time), JSONFloat(e.Speed), JSONFloat(e.Height)})
}

func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var w logEntryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = LogEntry{Time: float64(w.Time), Speed: float64(w.Speed), Height: float64(w.Height)}
	return nil
}
