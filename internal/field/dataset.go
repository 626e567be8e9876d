package field

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
)

// Dataset is a gridded vector field on (time, lat, lon) axes, loaded
// wholly into memory at open and immutable afterwards.
type Dataset struct {
	uName, vName string
	lats, lons   []float64
	nt           int
	u, v         []Grid2D // one slab per time index
}

// OpenDataset reads a NetCDF file holding the named u/v component
// variables with (time, lat, lon) dimensions plus lat/lon/time
// coordinates. Any missing variable or coordinate, a non-increasing
// axis, or a shape mismatch fails the whole load.
func OpenDataset(path, uName, vName string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("field: open %s: %w", path, err)
	}

	lats, err := readCoord(ff, "lat")
	if err != nil {
		return nil, err
	}
	lons, err := readCoord(ff, "lon")
	if err != nil {
		return nil, err
	}
	if len(ff.Header.Lengths("time")) == 0 {
		return nil, fmt.Errorf("%w: time", ErrMissingVariable)
	}

	ds := &Dataset{uName: uName, vName: vName, lats: lats, lons: lons}
	ds.u, ds.nt, err = readSlabs(ff, uName, len(lats), len(lons))
	if err != nil {
		return nil, err
	}
	var ntV int
	ds.v, ntV, err = readSlabs(ff, vName, len(lats), len(lons))
	if err != nil {
		return nil, err
	}
	if ntV != ds.nt {
		return nil, fmt.Errorf("field: %s and %s disagree on time extent (%d vs %d)", uName, vName, ds.nt, ntV)
	}
	return ds, nil
}

// NumTimes returns the number of time slices in the dataset.
func (d *Dataset) NumTimes() int { return d.nt }

// SampleUV bilinearly interpolates both components at (lat, lon) on
// the tidx time slice. A time index outside the dataset or a NaN in
// the result yields ErrUnavailable.
func (d *Dataset) SampleUV(lat, lon float64, tidx int) (float64, float64, error) {
	if tidx < 0 || tidx >= d.nt {
		return 0, 0, fmt.Errorf("%w: time index %d of %d", ErrUnavailable, tidx, d.nt)
	}
	x := FracIndex(d.lons, lon)
	y := FracIndex(d.lats, lat)
	u := d.u[tidx].Bilinear(x, y)
	v := d.v[tidx].Bilinear(x, y)
	if math.IsNaN(u) || math.IsNaN(v) {
		return 0, 0, fmt.Errorf("%w: NaN near (%.4f, %.4f)", ErrUnavailable, lat, lon)
	}
	return u, v, nil
}

func readCoord(ff *cdf.File, name string) ([]float64, error) {
	dims := ff.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingVariable, name)
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	vals, err := readFloats(ff, name, n)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			return nil, fmt.Errorf("%w: %s", ErrNotMonotonic, name)
		}
	}
	return vals, nil
}

func readSlabs(ff *cdf.File, name string, ny, nx int) ([]Grid2D, int, error) {
	dims := ff.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingVariable, name)
	}
	if len(dims) != 3 || dims[1] != ny || dims[2] != nx {
		return nil, 0, fmt.Errorf("field: %s has dimensions %v, want (time, lat=%d, lon=%d)", name, dims, ny, nx)
	}
	nt := dims[0]

	vals, err := readFloats(ff, name, nt*ny*nx)
	if err != nil {
		return nil, 0, err
	}
	slabs := make([]Grid2D, nt)
	for t := 0; t < nt; t++ {
		g, err := NewGrid2D(vals[t*ny*nx:(t+1)*ny*nx], ny, nx)
		if err != nil {
			return nil, 0, err
		}
		slabs[t] = g
	}
	return slabs, nt, nil
}

func readFloats(ff *cdf.File, name string, n int) ([]float64, error) {
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("field: read %s: %w", name, err)
	}
	out := make([]float64, 0, n)
	switch b := buf.(type) {
	case []float32:
		for _, v := range b {
			out = append(out, float64(v))
		}
	case []float64:
		out = append(out, b...)
	default:
		return nil, fmt.Errorf("field: %s has unsupported element type %T", name, buf)
	}
	return out, nil
}
