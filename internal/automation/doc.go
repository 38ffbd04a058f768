// Package automation runs batches of launches: YAML scenarios with optional
// per-step exports, and one-parameter sweeps.
//
// A scenario file looks like:
//
//	name: drag study
//	surface: {width: 800, height: 600}
//	steps:
//	  - preset: classic
//	  - name: draggy
//	    preset: classic
//	    params: {drag: 0.5}
//	    save_as: draggy.csv
package automation
