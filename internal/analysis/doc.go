// Package analysis provides post-run diagnostics for drift results.
//
// The package reduces tracks and particle clouds to scalar summaries:
//
//   - [Track]: path length, net displacement, tortuosity and bearing
//   - [Cloud]: centroid and dispersion of a terminal particle cloud
//   - [EstimateDiffusivity]: recovers the eddy diffusivity from the
//     growth rate of ensemble position variance
//
// # Diffusivity Recovery
//
// For a pure random walk the position variance grows as 2*D*t, so a
// linear fit of variance against time gives D back:
//
//	rec := analysis.NewVarianceRecorder()
//	sim.AddObserver(rec)
//	sim.Run(ctx, req)
//	d, _ := analysis.EstimateDiffusivity(rec.Times, rec.Vars)
package analysis
