// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package fdash implements a fuzzy-logic rate-adaptation controller for
// segment based adaptive streaming. Before every segment request it rates
// the playback buffer level and trend, fires a small rule base and scales
// a windowed throughput estimate by the defuzzified result to pick the next
// quality from the ladder.
package fdash

import (
	"fmt"
	"sync"
	"time"

	"github.com/pion/abr"
	"github.com/pion/abr/internal/types"
	"github.com/pion/logging"
)

type requestKind int

const (
	requestNone requestKind = iota
	requestManifest
	requestSegment
)

func (k requestKind) String() string {
	switch k {
	case requestNone:
		return "none"
	case requestManifest:
		return "manifest"
	case requestSegment:
		return "segment"
	default:
		return fmt.Sprintf("invalid request kind: %d", k)
	}
}

type pendingRequest struct {
	kind requestKind
	at   time.Time
}

// Controller is the rate-adaptation state of one streaming session. It
// implements abr.Controller.
type Controller struct {
	log           logging.LeveledLogger
	loggerFactory logging.LoggerFactory
	now           func() time.Time
	config        Config

	decisionWriter func(Decision)
	onClose        func()

	lock       sync.Mutex
	ladder     abr.Ladder
	previous   int
	pending    pendingRequest
	throughput throughputEstimator
	buffer     bufferSampler
	latest     *Decision
}

// NewController returns a Controller reading the playback buffer occupancy
// from reporter.
func NewController(reporter BufferReporter, opts ...Option) (*Controller, error) {
	if reporter == nil {
		return nil, errNilBufferReporter
	}
	c := &Controller{
		loggerFactory: logging.NewDefaultLoggerFactory(),
		now:           time.Now,
		config:        DefaultConfig(),
		buffer:        bufferSampler{reporter: reporter},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.config.validate(); err != nil {
		return nil, err
	}
	if c.log == nil {
		c.log = c.loggerFactory.NewLogger("fdash_controller")
	}
	c.previous = c.config.InitialBitrate

	return c, nil
}

// OnManifestRequest implements abr.Controller.
func (c *Controller) OnManifestRequest(abr.Attributes) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.begin(requestManifest, c.now())

	return nil
}

// OnManifestResponse implements abr.Controller. The ladder replaces any
// ladder received earlier in the session.
func (c *Controller) OnManifestResponse(bits int, ladder abr.Ladder, _ abr.Attributes) error {
	if err := ladder.Validate(); err != nil {
		return err
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.complete(requestManifest, bits); err != nil {
		return err
	}
	c.ladder = ladder.Clone()
	c.previous = c.ladder.Floor(c.previous)
	c.log.Debugf("accepted ladder with %d levels, %v to %v, starting at %v",
		len(c.ladder),
		types.DataRate(c.ladder.Lowest()),
		types.DataRate(c.ladder.Highest()),
		types.DataRate(c.previous),
	)

	return nil
}

// OnSegmentRequest implements abr.Controller. It decides the quality of the
// next segment and attaches it to attributes.
func (c *Controller) OnSegmentRequest(attributes abr.Attributes) error {
	c.lock.Lock()
	d, err := c.decide()
	c.lock.Unlock()
	if err != nil {
		return err
	}

	attributes.SetQuality(d.Selected)
	if c.decisionWriter != nil {
		c.decisionWriter(d)
	}

	return nil
}

// OnSegmentResponse implements abr.Controller.
func (c *Controller) OnSegmentResponse(bits int, _ abr.Attributes) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.complete(requestSegment, bits)
}

// Close implements abr.Controller.
func (c *Controller) Close() error {
	c.lock.Lock()
	if c.pending.kind != requestNone {
		c.log.Debugf("closing with pending %v request", c.pending.kind)
	}
	c.pending = pendingRequest{}
	onClose := c.onClose
	c.lock.Unlock()

	if onClose != nil {
		onClose()
	}

	return nil
}

// TargetBitrate returns the quality selected by the latest decision, or the
// initial bitrate before the first one.
func (c *Controller) TargetBitrate() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.previous
}

// Stats returns the latest decision. ok is false before the first one.
func (c *Controller) Stats() (d Decision, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.latest == nil {
		return Decision{}, false
	}

	return *c.latest, true
}

// History returns copies of the recorded throughput and buffer samples.
func (c *Controller) History() ([]ThroughputSample, []BufferSample) {
	c.lock.Lock()
	defer c.lock.Unlock()

	throughput := make([]ThroughputSample, len(c.throughput.history))
	copy(throughput, c.throughput.history)
	buffer := make([]BufferSample, len(c.buffer.history))
	copy(buffer, c.buffer.history)

	return throughput, buffer
}

func (c *Controller) begin(kind requestKind, now time.Time) {
	if c.pending.kind != requestNone {
		c.log.Warnf("no response for %v request sent at %v, dropping its throughput sample",
			c.pending.kind, c.pending.at)
	}
	c.pending = pendingRequest{kind: kind, at: now}
}

func (c *Controller) complete(kind requestKind, bits int) error {
	if c.pending.kind == requestNone {
		return fmt.Errorf("%w: %v response", ErrNoPendingRequest, kind)
	}
	if c.pending.kind != kind {
		return fmt.Errorf("%w: %v response for %v request", ErrUnexpectedResponse, kind, c.pending.kind)
	}
	sample, err := c.throughput.record(c.pending.at, c.now(), bits)
	if err != nil {
		return err
	}
	c.pending = pendingRequest{}
	c.log.Tracef("%v response: bits=%v, elapsed=%v, rate=%v",
		kind, bits, sample.Completed.Sub(sample.Requested), types.DataRate(sample.Rate))

	return nil
}

func (c *Controller) decide() (Decision, error) {
	if c.ladder == nil {
		return Decision{}, ErrNoLadder
	}
	if c.throughput.len() == 0 {
		return Decision{}, ErrNoThroughputSamples
	}

	now := c.now()
	timescale := c.config.BufferTimescale.Seconds()

	buffer := c.buffer.sample(now)
	level := fuzzifyLevel(buffer, timescale)
	trend := neutralTrend
	if delta, ok := c.buffer.delta(); ok {
		trend = fuzzifyTrend(delta, timescale)
	}

	strengths := c.config.RuleBase.evaluate(level, trend)
	factor, err := c.config.Weights.defuzzify(strengths)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: buffer=%v", err, buffer)
	}

	windowed, err := c.throughput.windowedAverage(now, c.config.ThroughputWindow)
	if err != nil {
		return Decision{}, err
	}
	last, err := c.throughput.last()
	if err != nil {
		return Decision{}, err
	}

	sel := selectRate(factor, windowed, last, c.ladder, c.previous, level)
	d := Decision{
		Timestamp:    now,
		Buffer:       buffer,
		Level:        level,
		Trend:        trend,
		Strengths:    strengths,
		Factor:       factor,
		WindowedRate: windowed,
		LastRate:     last,
		Target:       sel.target,
		Candidate:    sel.candidate,
		Previous:     c.previous,
		Selected:     sel.selected,
		Held:         sel.held,
	}
	c.previous = sel.selected
	c.latest = &d
	c.begin(requestSegment, now)

	c.log.Tracef(
		"buffer=%.3f, short=%.3f, close=%.3f, long=%.3f, falling=%.3f, steady=%.3f, rising=%.3f, "+
			"factor=%.4f, windowed=%v, last=%v, target=%v, candidate=%v, selected=%v, held=%v",
		buffer, level.Short, level.Close, level.Long, trend.Falling, trend.Steady, trend.Rising,
		factor, types.DataRate(windowed), types.DataRate(last), types.DataRate(sel.target),
		types.DataRate(sel.candidate), types.DataRate(sel.selected), sel.held,
	)
	if d.Switched() {
		c.log.Debugf("switching quality %v -> %v", types.DataRate(d.Previous), types.DataRate(d.Selected))
	}

	return d, nil
}
