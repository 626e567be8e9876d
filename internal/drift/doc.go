// Package drift integrates Lagrangian particle ensembles through the
// sea-surface fields served by a field.Provider.
//
// Each particle follows an Euler-Maruyama step in local meters,
//
//	dx = (u_current + windage*u_wind) * dt + N(0, sqrt(2*D*|dt|))
//
// converted to degrees through the small-angle approximations in the
// geo package. The fundamental pieces are:
//
//   - [Request]: release point, horizon and physics parameters
//   - [Ensemble]: struct-of-slices particle positions
//   - [Stepper]: advances a single run one time step per call
//   - [Simulator]: orchestrates runs and collects metrics
//   - [Result]: centroid track plus terminal particle cloud
//
// # Example
//
//	p := field.NewProvider(geo.GulfOfOman(), nil, logger)
//	sim := drift.New(p, logger)
//	res, _ := sim.Run(ctx, drift.DefaultRequest())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Run one request at a time
// per Simulator; build one Simulator per goroutine for sweeps.
package drift
