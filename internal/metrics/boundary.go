package metrics

import (
	"github.com/san-kum/seadrift/internal/geo"
)

const edgeEps = 1e-9

// BoundaryContact reports the fraction of observed particle positions
// pinned to a domain edge. Values near 1 mean the cloud has piled up
// on the boundary and the domain is too small for the run.
type BoundaryContact struct {
	name  string
	dom   geo.Domain
	hits  int
	total int
}

func NewBoundaryContact(dom geo.Domain) *BoundaryContact {
	return &BoundaryContact{name: "boundary_contact", dom: dom}
}

func (b *BoundaryContact) Name() string { return b.name }

func (b *BoundaryContact) Observe(lats, lons []float64, tsec float64) {
	for i := range lats {
		b.total++
		if b.onEdge(lats[i], lons[i]) {
			b.hits++
		}
	}
}

func (b *BoundaryContact) onEdge(lat, lon float64) bool {
	return lat-b.dom.LatMin < edgeEps || b.dom.LatMax-lat < edgeEps ||
		lon-b.dom.LonMin < edgeEps || b.dom.LonMax-lon < edgeEps
}

func (b *BoundaryContact) Value() float64 {
	if b.total == 0 {
		return 0
	}
	return float64(b.hits) / float64(b.total)
}

func (b *BoundaryContact) Reset() {
	b.hits = 0
	b.total = 0
}
