package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/dragsim/internal/sim"
)

type ExportData struct {
	Params    sim.Params     `json:"params"`
	Surface   sim.Surface    `json:"surface"`
	Dt        float64        `json:"dt"`
	Steps     int            `json:"steps"`
	Completed bool           `json:"completed"`
	Apex      *sim.JSONFloat `json:"apex_y,omitempty"`
	Frames    []sim.Frame    `json:"frames"`
	History   []sim.LogEntry `json:"history"`
}

func newExportData(result *sim.Result) ExportData {
	return ExportData{
		Params:    result.Params,
		Surface:   result.Surface,
		Dt:        sim.Dt,
		Steps:     result.Ticks,
		Completed: result.Completed,
		Apex:      (*sim.JSONFloat)(result.Final.Apex),
		Frames:    result.Frames,
		History:   result.Log,
	}
}

func WriteJSON(w io.Writer, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(result))
}

// WriteCSV writes one row per tick.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"time", "x_px", "y_px", "x_m", "height_m", "speed"}
	if err := cw.Write(header); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, f := range result.Frames {
		row := []string{
			format(f.Time),
			format(f.Pos.X),
			format(f.Pos.Y),
			format(f.XMeters),
			format(f.Height),
			format(f.Speed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
