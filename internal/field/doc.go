// Package field supplies ocean-current and 10 m wind velocities to the
// drift integrator.
//
// Two sources exist:
//
//   - [Dataset]: gridded (time, lat, lon) NetCDF data, sampled with
//     bilinear interpolation over possibly irregular axes
//   - [Model]: analytic synthetic fields that are always available
//
// [Provider] front-ends both. It prefers a loaded dataset and falls
// back to the synthetic model independently per call, so one bad
// sample never disables the dataset for later calls.
//
// # Thread Safety
//
// Datasets are immutable once loaded and the dataset time index is a
// per-call argument, so Provider sampling methods are safe for
// concurrent use. Load datasets before sharing the provider.
package field
