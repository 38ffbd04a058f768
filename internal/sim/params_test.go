package sim

import (
	"errors"
	"testing"
)

func TestParseParams(t *testing.T) {
	p, err := ParseParams("10", " 20.5 ", "45", "0.1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := Params{Height: 10, Speed: 20.5, Angle: 45, Drag: 0.1}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}

func TestParseParamsPassesOutOfRangeValues(t *testing.T) {
	p, err := ParseParams("-3", "-1", "720", "-0.5")
	if err != nil {
		t.Fatalf("out-of-range but finite values rejected: %v", err)
	}
	if p.Drag != -0.5 || p.Angle != 720 {
		t.Errorf("values altered: %+v", p)
	}
}

func TestParseParamsRejects(t *testing.T) {
	tests := []struct {
		name  string
		in    [4]string
		field string
	}{
		{"empty height", [4]string{"", "1", "1", "1"}, FieldHeight},
		{"garbage speed", [4]string{"1", "fast", "1", "1"}, FieldSpeed},
		{"nan angle", [4]string{"1", "1", "NaN", "1"}, FieldAngle},
		{"inf drag", [4]string{"1", "1", "1", "+Inf"}, FieldDrag},
		{"trailing junk", [4]string{"1", "1", "1", "0.1x"}, FieldDrag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParams(tt.in[0], tt.in[1], tt.in[2], tt.in[3])
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("error = %v, want ErrInvalidParams", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error is not a FieldError: %T", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %s, want %s", fe.Field, tt.field)
			}
		})
	}
}

func TestParseFormRoundTrip(t *testing.T) {
	want := Params{Height: 12.5, Speed: 3, Angle: 80, Drag: 0.25}
	got, err := ParseForm(want.Form())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseFormMissingField(t *testing.T) {
	_, err := ParseForm(map[string]string{FieldHeight: "1", FieldSpeed: "1", FieldAngle: "1"})
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("missing field accepted: %v", err)
	}
}

func TestParamsSet(t *testing.T) {
	var p Params
	for _, name := range []string{"height", "speed", FieldAngle, FieldDrag} {
		if err := p.Set(name, 7); err != nil {
			t.Fatalf("Set(%q): %v", name, err)
		}
	}
	if p != (Params{Height: 7, Speed: 7, Angle: 7, Drag: 7}) {
		t.Errorf("got %+v", p)
	}
	if err := p.Set("gravity", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}
