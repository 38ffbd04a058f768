// Package sim implements the projectile engine: launch parameters, the
// fixed-step integration loop with linear drag, apex tracking, telemetry
// formatting and the scheduler that drives one run at a time.
//
// A run is built with [New] and advanced with [Engine.Step]; [Advance] is the
// same tick as a pure function over [State]. [Scheduler] replays ticks on a
// fixed wall-clock cadence, and [Run] executes a whole run headless.
//
// # Units
//
// Positions are screen pixels with y increasing downward. Velocities are in
// m/s using the same sign convention, so a positive vertical velocity moves
// the ball toward the ground. [ScaleFactor] converts meters to pixels.
package sim
