// Package viz is the terminal front-end: a Bubble Tea model with the launch
// form, a braille canvas of the flight and the telemetry panel.
//
// Each launch gets a new generation number. [TickMsg] carries the generation
// it was scheduled for and ticks from a superseded run are dropped, so at
// most one run ever advances.
//
// # Key Bindings
//
//	Tab/Down   - Next field
//	Shift+Tab  - Previous field
//	Enter      - Launch with the current form values
//	Ctrl+U     - Clear the focused field
//	Esc        - Quit
package viz
