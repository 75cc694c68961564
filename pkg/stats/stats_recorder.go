// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package stats provides a controller that records the quality decisions
// and transfers of every session and exports them as Prometheus metrics.
package stats

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pion/abr"
	"github.com/pion/abr/internal/types"
	"github.com/pion/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrUnknownSession indicates that a session ID was not assigned.
var ErrUnknownSession = errors.New("unknown session ID")

// Stats contains the statistics recorded for one session.
type Stats struct {
	ManifestRequests int
	SegmentRequests  int
	// Segment requests without a quality attached
	UndecidedRequests int
	// Number of times the quality differed from the previous request
	Switches       int
	DownloadedBits int64
	// Quality attached to the latest segment request
	Quality int
	// Rate of the latest completed transfer in bits per second
	Throughput float64
	// Accumulated time between requests and their responses
	TransferTime time.Duration
}

type collectors struct {
	segments   *prometheus.CounterVec
	switches   *prometheus.CounterVec
	bits       *prometheus.CounterVec
	quality    *prometheus.GaugeVec
	throughput *prometheus.GaugeVec
}

func newCollectors(namespace string) collectors {
	labels := []string{"session"}

	return collectors{
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segment_requests_total",
			Help:      "Total number of segment requests",
		}, labels),
		switches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quality_switches_total",
			Help:      "Total number of segment requests that changed the quality",
		}, labels),
		bits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bits_total",
			Help:      "Total number of bits received in manifest and segment responses",
		}, labels),
		quality: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_bitrate_bps",
			Help:      "Bitrate attached to the latest segment request",
		}, labels),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throughput_bps",
			Help:      "Rate of the latest completed transfer",
		}, labels),
	}
}

func (c collectors) all() []prometheus.Collector {
	return []prometheus.Collector{c.segments, c.switches, c.bits, c.quality, c.throughput}
}

func (c collectors) delete(id abr.SessionID) {
	c.segments.DeleteLabelValues(id)
	c.switches.DeleteLabelValues(id)
	c.bits.DeleteLabelValues(id)
	c.quality.DeleteLabelValues(id)
	c.throughput.DeleteLabelValues(id)
}

// RecorderFactory creates one Recorder per session. All recorders of a
// factory share the same Prometheus collectors, labeled by session.
type RecorderFactory struct {
	log           logging.LeveledLogger
	loggerFactory logging.LoggerFactory
	now           func() time.Time
	namespace     string
	collectors    collectors

	lock      sync.Mutex
	recorders map[abr.SessionID]*Recorder
}

// NewRecorderFactory returns a new RecorderFactory.
func NewRecorderFactory(opts ...Option) (*RecorderFactory, error) {
	f := &RecorderFactory{
		loggerFactory: logging.NewDefaultLoggerFactory(),
		now:           time.Now,
		namespace:     "abr",
		recorders:     map[abr.SessionID]*Recorder{},
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	if f.log == nil {
		f.log = f.loggerFactory.NewLogger("abr_stats")
	}
	f.collectors = newCollectors(f.namespace)

	return f, nil
}

// Register registers the collectors of the factory with reg.
func (f *RecorderFactory) Register(reg prometheus.Registerer) error {
	for _, c := range f.collectors.all() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// NewController returns the recorder of the session, creating it on first
// use.
func (f *RecorderFactory) NewController(id abr.SessionID) (abr.Controller, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if r, ok := f.recorders[id]; ok {
		return r, nil
	}
	r := &Recorder{
		id:      id,
		factory: f,
	}
	f.recorders[id] = r

	return r, nil
}

// GetStats returns the statistics of the session with id.
func (f *RecorderFactory) GetStats(id abr.SessionID) (Stats, error) {
	f.lock.Lock()
	r, ok := f.recorders[id]
	f.lock.Unlock()
	if !ok {
		return Stats{}, fmt.Errorf("%w: %v", ErrUnknownSession, id)
	}

	return r.GetStats(), nil
}

func (f *RecorderFactory) remove(id abr.SessionID) {
	f.lock.Lock()
	defer f.lock.Unlock()

	delete(f.recorders, id)
	f.collectors.delete(id)
}

// Recorder records the events of a single session. Place it after the
// controller that decides the quality so it observes the decision.
type Recorder struct {
	id      abr.SessionID
	factory *RecorderFactory

	lock        sync.Mutex
	stats       Stats
	requestedAt time.Time
}

// OnManifestRequest implements abr.Controller.
func (r *Recorder) OnManifestRequest(abr.Attributes) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.stats.ManifestRequests++
	r.requestedAt = r.factory.now()

	return nil
}

// OnManifestResponse implements abr.Controller.
func (r *Recorder) OnManifestResponse(bits int, _ abr.Ladder, _ abr.Attributes) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.recordTransfer(bits)

	return nil
}

// OnSegmentRequest implements abr.Controller.
func (r *Recorder) OnSegmentRequest(attributes abr.Attributes) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.stats.SegmentRequests++
	r.requestedAt = r.factory.now()
	r.factory.collectors.segments.WithLabelValues(r.id).Inc()

	quality, err := attributes.Quality()
	if err != nil {
		r.stats.UndecidedRequests++
		r.factory.log.Warnf("session %v: segment request %d: %v", r.id, r.stats.SegmentRequests, err)

		return nil
	}
	if r.stats.Quality != 0 && quality != r.stats.Quality {
		r.stats.Switches++
		r.factory.collectors.switches.WithLabelValues(r.id).Inc()
		r.factory.log.Debugf("session %v: quality %v -> %v",
			r.id, types.DataRate(r.stats.Quality), types.DataRate(quality))
	}
	r.stats.Quality = quality
	r.factory.collectors.quality.WithLabelValues(r.id).Set(float64(quality))

	return nil
}

// OnSegmentResponse implements abr.Controller.
func (r *Recorder) OnSegmentResponse(bits int, _ abr.Attributes) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.recordTransfer(bits)

	return nil
}

// Close implements abr.Controller. It removes the session's metrics.
func (r *Recorder) Close() error {
	r.factory.remove(r.id)

	return nil
}

// GetStats returns the statistics recorded so far.
func (r *Recorder) GetStats() Stats {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.stats
}

func (r *Recorder) recordTransfer(bits int) {
	r.stats.DownloadedBits += int64(bits)
	r.factory.collectors.bits.WithLabelValues(r.id).Add(float64(bits))

	if r.requestedAt.IsZero() {
		return
	}
	elapsed := r.factory.now().Sub(r.requestedAt)
	r.requestedAt = time.Time{}
	if elapsed <= 0 {
		return
	}
	r.stats.TransferTime += elapsed
	r.stats.Throughput = float64(bits) / elapsed.Seconds()
	r.factory.collectors.throughput.WithLabelValues(r.id).Set(r.stats.Throughput)
}
