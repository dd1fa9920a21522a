// Package analysis provides accuracy and sensitivity studies for the
// fixed-step integrators.
//
//   - [Convergence]: error at the final time over successively halved steps,
//     with the observed order of accuracy
//   - [Sensitivity]: finite-time exponent of the divergence of two nearby
//     trajectories
//
// # Order Check
//
// Halving h divides the global error by about 2^p for a method of order p:
//
//	study, _ := analysis.Convergence(ctx, integrators.NewRK4(), eq, 1, 0, 1, 10, 4)
//	fmt.Println(study.Levels[3].ObservedOrder) // ~4
package analysis
