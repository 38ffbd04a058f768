// Package analysis summarizes finished runs and measures how well the
// integrators reproduce the closed-form flight.
//
//   - [Summarize]: apex, flight time, range and impact speed of a headless run
//   - [Compare]: apex and landing error of each integrator against
//     [physics.LinearDrag.Exact]
//   - [Trace]: fixed-step integration until the ground
//
// # Ground
//
// The engine stops when the ball's edge touches the ground, so a summarized
// run lands at one ball radius. The comparison works on the point mass and
// lands at zero height.
package analysis
