// Package geo provides the geometric primitives behind marker placement on
// the coverage map: a ray-casting point-in-polygon test and a bounded
// rejection sampler that picks a representative point inside an irregular
// administrative boundary.
//
// All functions are pure and perform no I/O.
package geo

import (
	"math/rand"

	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ring is an ordered list of vertices describing a polygon boundary.
// It may be given open or explicitly closed; the algorithms below wrap
// around the last vertex either way.
type Ring []LatLng

// BoundingBox is the axis-aligned extent of a ring.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether p lies within the box, borders included.
func (b BoundingBox) Contains(p LatLng) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// BoundsOf computes the axis-aligned bounding box of all vertices in ring.
// The ring must not be empty.
func BoundsOf(ring Ring) BoundingBox {
	b := BoundingBox{
		MinLat: ring[0].Lat, MaxLat: ring[0].Lat,
		MinLng: ring[0].Lng, MaxLng: ring[0].Lng,
	}
	for _, v := range ring[1:] {
		if v.Lat < b.MinLat {
			b.MinLat = v.Lat
		}
		if v.Lat > b.MaxLat {
			b.MaxLat = v.Lat
		}
		if v.Lng < b.MinLng {
			b.MinLng = v.Lng
		}
		if v.Lng > b.MaxLng {
			b.MaxLng = v.Lng
		}
	}
	return b
}

// Centroid returns the arithmetic mean of all vertices.  For concave rings
// the result is not guaranteed to lie inside the ring; it is the sampler's
// termination fallback, not a true interior point.
func Centroid(ring Ring) LatLng {
	var sumLat, sumLng float64
	for _, v := range ring {
		sumLat += v.Lat
		sumLng += v.Lng
	}
	n := float64(len(ring))
	return LatLng{Lat: sumLat / n, Lng: sumLng / n}
}

// PointInPolygon reports whether point lies inside ring using the even-odd
// ray-casting rule, treating longitude as x and latitude as y.  An edge
// counts as a crossing when its latitude span strictly straddles the test
// point's latitude and its longitude intersection at that latitude exceeds
// the point's longitude.
//
// The result is exact for simple (non-self-intersecting) rings.  Behavior
// for points exactly on the boundary is undefined, and no guarantee is made
// for self-intersecting input.  Rings with fewer than 3 vertices never
// contain anything.
func PointInPolygon(point LatLng, ring Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	x, y := point.Lng, point.Lat
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		if (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// DefaultSampleAttempts is the number of rejection-sampling draws performed
// before falling back to the centroid.
const DefaultSampleAttempts = 1000

// Sampler draws random interior points for rings.  The zero value is not
// usable; construct with NewSampler.
//
// Exact interior-point computation for arbitrary concave polygons is more
// machinery than marker placement needs; rejection sampling over the
// bounding box is fast for typical administrative-boundary shapes and the
// centroid fallback guarantees termination.
type Sampler struct {
	attempts int
	rnd      *rand.Rand
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithAttempts overrides the rejection-sampling attempt cap.
func WithAttempts(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithSource sets the random source, letting tests use a fixed seed.
func WithSource(src rand.Source) SamplerOption {
	return func(s *Sampler) {
		s.rnd = rand.New(src)
	}
}

// NewSampler constructs a Sampler with DefaultSampleAttempts and the shared
// package-level random source unless overridden.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{attempts: DefaultSampleAttempts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sampler) float64() float64 {
	if s.rnd != nil {
		return s.rnd.Float64()
	}
	return rand.Float64()
}

// InteriorPoint returns a point inside ring found by uniform rejection
// sampling over the ring's bounding box.  If no draw lands inside within the
// attempt cap (very thin or strongly concave shapes), the vertex centroid is
// returned instead; that fallback always lies within the bounding box but
// not necessarily within the ring.
//
// Fails with an invalid-input error when ring has fewer than 3 vertices.
func (s *Sampler) InteriorPoint(ring Ring) (LatLng, error) {
	if len(ring) < 3 {
		return LatLng{}, errors.InvalidInput("ring must have at least 3 vertices")
	}

	b := BoundsOf(ring)
	for i := 0; i < s.attempts; i++ {
		p := LatLng{
			Lat: b.MinLat + s.float64()*(b.MaxLat-b.MinLat),
			Lng: b.MinLng + s.float64()*(b.MaxLng-b.MinLng),
		}
		if PointInPolygon(p, ring) {
			return p, nil
		}
	}

	return Centroid(ring), nil
}

// SampleInteriorPoint draws an interior point using a default-configured
// sampler.  See Sampler.InteriorPoint.
func SampleInteriorPoint(ring Ring) (LatLng, error) {
	return NewSampler().InteriorPoint(ring)
}
