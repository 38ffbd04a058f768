// Package physics provides the continuous projectile model used as a
// reference for the fixed-step engine.
//
// [LinearDrag] implements [dynamo.System] with state (x, y, vx, vy) in
// meters, y measured upward from the ground. It also implements
// [dynamo.Exact], so integrator output can be checked against the
// analytic solution:
//
//	dyn := physics.NewLinearDrag(0.5)
//	x0 := dyn.Initial(10, 20, 45)
//	exact := dyn.Exact(x0, 1.2)
package physics
