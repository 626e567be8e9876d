package field

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
)

type ncFixture struct {
	times        []float64
	lats, lons   []float64
	u, v         []float32 // row-major (time, lat, lon); nil omits the variable
	uName, vName string    // default "u"/"v"
}

func writeFixture(t *testing.T, fx ncFixture) string {
	t.Helper()

	if fx.uName == "" {
		fx.uName = "u"
	}
	if fx.vName == "" {
		fx.vName = "v"
	}
	path := filepath.Join(t.TempDir(), "field.nc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	h := cdf.NewHeader(
		[]string{"time", "lat", "lon"},
		[]int{len(fx.times), len(fx.lats), len(fx.lons)},
	)
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	if fx.u != nil {
		h.AddVariable(fx.uName, []string{"time", "lat", "lon"}, []float32{0})
	}
	if fx.v != nil {
		h.AddVariable(fx.vName, []string{"time", "lat", "lon"}, []float32{0})
	}
	h.Define()

	ff, err := cdf.Create(f, h)
	if err != nil {
		t.Fatalf("write header: %v", err)
	}
	write := func(name string, data interface{}) {
		end := ff.Header.Lengths(name)
		w := ff.Writer(name, make([]int, len(end)), end)
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("time", fx.times)
	write("lat", fx.lats)
	write("lon", fx.lons)
	if fx.u != nil {
		write(fx.uName, fx.u)
	}
	if fx.v != nil {
		write(fx.vName, fx.v)
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		t.Fatalf("update numrecs: %v", err)
	}
	return path
}

// goodFixture holds u[t][y][x] = 100t + 10y + x and v = u + 0.5 on a
// 2x3x4 grid, every value exact in float32.
func goodFixture() ncFixture {
	fx := ncFixture{
		times: []float64{0, 3600},
		lats:  []float64{23, 24, 25},
		lons:  []float64{57, 58, 59, 60},
	}
	for ti := 0; ti < 2; ti++ {
		for yi := 0; yi < 3; yi++ {
			for xi := 0; xi < 4; xi++ {
				val := float32(100*ti + 10*yi + xi)
				fx.u = append(fx.u, val)
				fx.v = append(fx.v, val+0.5)
			}
		}
	}
	return fx
}

func TestOpenDataset(t *testing.T) {
	path := writeFixture(t, goodFixture())

	ds, err := OpenDataset(path, "u", "v")
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}
	if ds.NumTimes() != 2 {
		t.Errorf("NumTimes: got %d, want 2", ds.NumTimes())
	}
}

func TestSampleUV(t *testing.T) {
	path := writeFixture(t, goodFixture())
	ds, err := OpenDataset(path, "u", "v")
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}

	tests := []struct {
		name     string
		lat, lon float64
		tidx     int
		u, v     float64
	}{
		{"vertex", 24, 59, 0, 12, 12.5},
		{"last vertex second slice", 25, 60, 1, 123, 123.5},
		{"midpoint between rows", 23.5, 57, 0, 5, 5.5},
		{"south of grid clamps", 10, 57, 0, 0, 0.5},
		{"east of grid clamps", 24, 99, 0, 13, 13.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v, err := ds.SampleUV(tt.lat, tt.lon, tt.tidx)
			if err != nil {
				t.Fatalf("SampleUV: %v", err)
			}
			if u != tt.u || v != tt.v {
				t.Errorf("got (%v, %v), want (%v, %v)", u, v, tt.u, tt.v)
			}
		})
	}
}

func TestSampleUVTimeOutOfRange(t *testing.T) {
	path := writeFixture(t, goodFixture())
	ds, err := OpenDataset(path, "u", "v")
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}

	for _, tidx := range []int{-1, 2, 100} {
		if _, _, err := ds.SampleUV(24, 58, tidx); !errors.Is(err, ErrUnavailable) {
			t.Errorf("tidx %d: expected ErrUnavailable, got %v", tidx, err)
		}
	}
}

func TestSampleUVNaN(t *testing.T) {
	fx := goodFixture()
	fx.u[0] = float32(math.NaN())
	path := writeFixture(t, fx)

	ds, err := OpenDataset(path, "u", "v")
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}
	if _, _, err := ds.SampleUV(23, 57, 0); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable on NaN cell, got %v", err)
	}
}

func TestOpenDatasetMissingVariable(t *testing.T) {
	fx := goodFixture()
	fx.v = nil
	path := writeFixture(t, fx)

	if _, err := OpenDataset(path, "u", "v"); !errors.Is(err, ErrMissingVariable) {
		t.Errorf("expected ErrMissingVariable, got %v", err)
	}
}

func TestOpenDatasetNotMonotonic(t *testing.T) {
	fx := goodFixture()
	fx.lats = []float64{25, 24, 23}
	path := writeFixture(t, fx)

	if _, err := OpenDataset(path, "u", "v"); !errors.Is(err, ErrNotMonotonic) {
		t.Errorf("expected ErrNotMonotonic, got %v", err)
	}
}

func TestOpenDatasetNoFile(t *testing.T) {
	if _, err := OpenDataset(filepath.Join(t.TempDir(), "nope.nc"), "u", "v"); err == nil {
		t.Error("expected error for missing file")
	}
}
