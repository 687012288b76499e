package boundary

import (
	"context"
	"time"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/prometheus"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

// InstrumentedLoader wraps a Loader and records every Load outcome and its
// latency.  It satisfies the same Load contract as the Loader itself.
type InstrumentedLoader struct {
	loader  *Loader
	metrics *prometheus.Metrics
}

// NewInstrumentedLoader wraps loader.  A nil metrics value returns a pass
// through that records nothing, so call sites can wire it unconditionally.
func NewInstrumentedLoader(loader *Loader, metrics *prometheus.Metrics) *InstrumentedLoader {
	return &InstrumentedLoader{loader: loader, metrics: metrics}
}

// Load delegates to the wrapped Loader and observes the result.
func (il *InstrumentedLoader) Load(ctx context.Context, districtCode string) (geo.Ring, geo.LatLng, error) {
	start := time.Now()
	ring, marker, err := il.loader.Load(ctx, districtCode)
	if il.metrics != nil {
		il.metrics.ObserveBoundaryFetch(fetchResult(err), time.Since(start))
	}
	return ring, marker, err
}

// fetchResult maps a Load error onto the boundary fetch result labels.
func fetchResult(err error) string {
	if err == nil {
		return prometheus.ResultOK
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeBoundaryNotFound:
		return prometheus.ResultNotFound
	case errors.ErrCodeMalformedGeometry:
		return prometheus.ResultMalformed
	case errors.ErrCodeUnsupportedGeometry:
		return prometheus.ResultUnsupported
	default:
		return prometheus.ResultError
	}
}
