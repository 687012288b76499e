package boundary

import (
	"context"
	"encoding/json"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

// geometry is the subset of a GeoJSON geometry object the loader reads.
// Coordinates stays raw until the type tag selects its shape.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// document accepts the three envelope shapes boundary resources come in:
// a bare geometry, a Feature with a geometry field, or a FeatureCollection.
type document struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geometry       `json:"geometry"`
	Features    []struct {
		Geometry *geometry `json:"geometry"`
	} `json:"features"`
}

func (d *document) geometry() *geometry {
	if d.Geometry != nil {
		return d.Geometry
	}
	if len(d.Features) > 0 && d.Features[0].Geometry != nil {
		return d.Features[0].Geometry
	}
	if d.Coordinates != nil {
		return &geometry{Type: d.Type, Coordinates: d.Coordinates}
	}
	return nil
}

// Loader turns a district code into a renderable ring plus a marker point
// somewhere inside it.
type Loader struct {
	store   Store
	sampler *geo.Sampler
	logger  logging.Logger
}

// NewLoader builds a Loader.  A nil sampler uses the default sampling
// budget; a nil logger discards diagnostics.
func NewLoader(store Store, sampler *geo.Sampler, logger logging.Logger) *Loader {
	if sampler == nil {
		sampler = geo.NewSampler()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{store: store, sampler: sampler, logger: logger}
}

// Load fetches and normalizes the boundary for districtCode and samples a
// marker point inside the resulting ring.
//
// Failures map onto the per-record drop codes: a missing resource is
// ErrCodeBoundaryNotFound, a geometry with no coordinate rings is
// ErrCodeMalformedGeometry, a geometry type other than Polygon or
// MultiPolygon is ErrCodeUnsupportedGeometry, and a degenerate ring
// surfaces the sampler's ErrCodeInvalidInput.
func (l *Loader) Load(ctx context.Context, districtCode string) (geo.Ring, geo.LatLng, error) {
	if districtCode == "" {
		return nil, geo.LatLng{}, errors.InvalidInput("district code must not be empty")
	}

	raw, err := l.store.Fetch(ctx, districtCode)
	if err != nil {
		return nil, geo.LatLng{}, err
	}

	ring, err := l.normalize(districtCode, raw)
	if err != nil {
		return nil, geo.LatLng{}, err
	}

	marker, err := l.sampler.InteriorPoint(ring)
	if err != nil {
		return nil, geo.LatLng{}, err
	}
	return ring, marker, nil
}

// normalize decodes the GeoJSON document and flattens its geometry into one
// (lat, lng) ring.  Source coordinates arrive in (lng, lat) order and are
// swapped here.  MultiPolygon parts are concatenated into a single vertex
// list in source order; part topology and holes are intentionally discarded,
// the output is a bounding sketch, not a cartographic rendering.
func (l *Loader) normalize(districtCode string, raw []byte) (geo.Ring, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMalformedGeometry, "boundary document is not valid JSON")
	}

	g := doc.geometry()
	if g == nil {
		return nil, errors.MalformedGeometry("boundary document has no geometry")
	}

	switch g.Type {
	case "Polygon":
		var coords [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMalformedGeometry, "polygon coordinates are malformed")
		}
		if len(coords) == 0 || len(coords[0]) == 0 {
			return nil, errors.MalformedGeometry("polygon has no coordinate rings")
		}
		return swapRing(coords[0]), nil

	case "MultiPolygon":
		var coords [][][][2]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMalformedGeometry, "multipolygon coordinates are malformed")
		}
		ring := geo.Ring{}
		for _, polygon := range coords {
			for _, part := range polygon {
				ring = append(ring, swapRing(part)...)
			}
		}
		if len(ring) == 0 {
			return nil, errors.MalformedGeometry("multipolygon has no coordinate rings")
		}
		return ring, nil

	default:
		l.logger.Warn("unsupported boundary geometry type",
			logging.String("district_code", districtCode),
			logging.String("geometry_type", g.Type),
		)
		return nil, errors.UnsupportedGeometry(g.Type)
	}
}

// swapRing converts (lng, lat) source pairs to LatLng vertices.
func swapRing(coords [][2]float64) geo.Ring {
	ring := make(geo.Ring, 0, len(coords))
	for _, c := range coords {
		ring = append(ring, geo.LatLng{Lat: c[1], Lng: c[0]})
	}
	return ring
}
