package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form field names shared by every input surface.
const (
	FieldHeight = "initial_height"
	FieldSpeed  = "initial_velocity"
	FieldAngle  = "launch_angle"
	FieldDrag   = "air_resistance"
)

// FormFields lists the launch fields in display order.
var FormFields = []string{FieldHeight, FieldSpeed, FieldAngle, FieldDrag}

// ParseParams parses the four launch fields. Any field that is empty or not
// a finite number yields a *FieldError. No range checks are applied.
func ParseParams(height, speed, angle, drag string) (Params, error) {
	var p Params
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{FieldHeight, height, &p.Height},
		{FieldSpeed, speed, &p.Speed},
		{FieldAngle, angle, &p.Angle},
		{FieldDrag, drag, &p.Drag},
	}

	for _, f := range fields {
		v, err := parseFinite(f.raw)
		if err != nil {
			return Params{}, &FieldError{Field: f.name, Value: f.raw}
		}
		*f.dst = v
	}
	return p, nil
}

// ParseForm reads the launch fields from a name/value map.
func ParseForm(form map[string]string) (Params, error) {
	return ParseParams(form[FieldHeight], form[FieldSpeed], form[FieldAngle], form[FieldDrag])
}

func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidParams
	}
	return v, nil
}

// Validate rejects non-finite values.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{FieldHeight, p.Height},
		{FieldSpeed, p.Speed},
		{FieldAngle, p.Angle},
		{FieldDrag, p.Drag},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &FieldError{Field: f.name, Value: strconv.FormatFloat(f.v, 'g', -1, 64)}
		}
	}
	return nil
}

// Form renders p back into field values.
func (p Params) Form() map[string]string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		FieldHeight: format(p.Height),
		FieldSpeed:  format(p.Speed),
		FieldAngle:  format(p.Angle),
		FieldDrag:   format(p.Drag),
	}
}

// Set assigns one launch field by its short name (height, speed, angle,
// drag) or its form name.
func (p *Params) Set(name string, value float64) error {
	switch name {
	case "height", FieldHeight:
		p.Height = value
	case "speed", FieldSpeed:
		p.Speed = value
	case "angle", FieldAngle:
		p.Angle = value
	case "drag", FieldDrag:
		p.Drag = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
