// Package dynamo provides the vector primitives shared by the reference
// integrators and the closed-form projectile model.
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//
// The live engine in package sim does not go through these interfaces; it
// advances its pixel-space state directly. dynamo exists so that the same
// launch can be integrated with other schemes and compared.
//
// # Example
//
//	dyn := physics.NewLinearDrag(0.1)
//	integ := integrators.NewRK4()
//	x := dyn.Initial(10, 20, 45)
//	x = integ.Step(dyn, x, 0, 0.02)
package dynamo
