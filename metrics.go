package audiometry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for all audiometry metrics.
const meterName = "github.com/sky-flux/audiometry"

// Metrics holds the OpenTelemetry instruments recorded by a Controller.
// A nil *Metrics records nothing.
type Metrics struct {
	// Presentations counts tones presented. Attributes: ear, frequency, heard.
	Presentations metric.Int64Counter

	// ThresholdsEstablished counts sessions reaching Complete.
	ThresholdsEstablished metric.Int64Counter

	// ThresholdsMarked counts accepted marks.
	ThresholdsMarked metric.Int64Counter

	// MarksRejected counts marks attempted before a threshold was established.
	MarksRejected metric.Int64Counter

	// PresentationsPerThreshold records how many presentations a session
	// needed to establish its threshold.
	PresentationsPerThreshold metric.Int64Histogram
}

var presentationBuckets = []float64{4, 6, 8, 10, 12, 15, 20, 30, 45, 60}

// NewMetrics creates the instruments on the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Presentations, err = m.Int64Counter("audiometry.presentations",
		metric.WithDescription("Tones presented to the simulated patient."),
	); err != nil {
		return nil, err
	}
	if met.ThresholdsEstablished, err = m.Int64Counter("audiometry.thresholds.established",
		metric.WithDescription("Sessions whose threshold was established."),
	); err != nil {
		return nil, err
	}
	if met.ThresholdsMarked, err = m.Int64Counter("audiometry.thresholds.marked",
		metric.WithDescription("Thresholds marked on the audiogram."),
	); err != nil {
		return nil, err
	}
	if met.MarksRejected, err = m.Int64Counter("audiometry.marks.rejected",
		metric.WithDescription("Marks rejected because no threshold was established."),
	); err != nil {
		return nil, err
	}
	if met.PresentationsPerThreshold, err = m.Int64Histogram("audiometry.presentations_per_threshold",
		metric.WithDescription("Presentations needed to establish a threshold."),
		metric.WithExplicitBucketBoundaries(presentationBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

func pairAttrs(ear Ear, freq Frequency) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("ear", ear.String()),
		attribute.Int("frequency", int(freq)),
	}
}

func (m *Metrics) recordPresentation(ctx context.Context, s Session, heard, established bool) {
	if m == nil {
		return
	}
	attrs := pairAttrs(s.Ear, s.Frequency)
	m.Presentations.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.Bool("heard", heard))...))
	if established {
		m.ThresholdsEstablished.Add(ctx, 1, metric.WithAttributes(attrs...))
		m.PresentationsPerThreshold.Record(ctx, int64(s.ResponseCount()), metric.WithAttributes(attrs...))
	}
}

func (m *Metrics) recordMark(ctx context.Context, ear Ear, freq Frequency, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(pairAttrs(ear, freq)...)
	if err != nil {
		m.MarksRejected.Add(ctx, 1, attrs)
		return
	}
	m.ThresholdsMarked.Add(ctx, 1, attrs)
}
