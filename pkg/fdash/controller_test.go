// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import (
	"testing"
	"time"

	"github.com/pion/abr"
	"github.com/pion/abr/internal/test"
	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, buffer BufferReporter, opts ...Option) (*Controller, *test.MockClock) {
	t.Helper()

	clock := test.NewMockClock(testStart)
	opts = append([]Option{
		WithNow(clock.Now),
		Log(logging.NewDefaultLoggerFactory().NewLogger("test")),
	}, opts...)
	c, err := NewController(buffer, opts...)
	require.NoError(t, err)

	return c, clock
}

// fetchManifest runs a manifest request that takes one second.
func fetchManifest(t *testing.T, c *Controller, clock *test.MockClock, bits int) {
	t.Helper()

	require.NoError(t, c.OnManifestRequest(abr.Attributes{}))
	clock.Advance(time.Second)
	require.NoError(t, c.OnManifestResponse(bits, testLadder, abr.Attributes{}))
}

func decideSegment(t *testing.T, c *Controller) (int, Decision) {
	t.Helper()

	attributes := abr.Attributes{}
	require.NoError(t, c.OnSegmentRequest(attributes))
	quality, err := attributes.Quality()
	require.NoError(t, err)
	d, ok := c.Stats()
	require.True(t, ok)
	assert.Equal(t, quality, d.Selected)

	return quality, d
}

func TestController_ComfortableSteadyBuffer(t *testing.T) {
	c, clock := newTestController(t, test.NewMockBuffer(60, 60))
	fetchManifest(t, c, clock, 2_500_000)
	assert.Equal(t, testLadder.Lowest(), c.TargetBitrate())

	// a single buffer sample counts as steady
	quality, d := decideSegment(t, c)
	assert.InDelta(t, 7.0/6.0, d.Factor, 1e-9)
	assert.InDelta(t, 2.0/3.0, d.Level.Close, 1e-9)
	assert.InDelta(t, 1.0/3.0, d.Level.Long, 1e-9)
	assert.Equal(t, neutralTrend, d.Trend)
	assert.Equal(t, 2_500_000.0, d.WindowedRate)
	assert.Equal(t, 1_850_000, d.Candidate)
	assert.True(t, d.Held, "lower than the last rate while the buffer is long")
	assert.Equal(t, testLadder.Lowest(), quality)

	clock.Advance(time.Second)
	require.NoError(t, c.OnSegmentResponse(1_500_000, abr.Attributes{}))

	previous := quality
	quality, d = decideSegment(t, c)
	assert.Greater(t, d.Factor, 1.0)
	assert.Equal(t, TrendMembership{Steady: 1}, d.Trend)
	assert.Equal(t, 2_000_000.0, d.WindowedRate)
	assert.Equal(t, 1_500_000.0, d.LastRate)
	assert.False(t, d.Held)
	assert.Equal(t, 1_850_000, quality)
	assert.GreaterOrEqual(t, quality, previous)
	assert.True(t, d.Switched())
}

func TestController_SharpBufferDrop(t *testing.T) {
	c, clock := newTestController(t, test.NewMockBuffer(40, 5), InitialBitrate(1_850_000))
	fetchManifest(t, c, clock, 2_000_000)
	assert.Equal(t, 1_850_000, c.TargetBitrate())

	quality, d := decideSegment(t, c)
	assert.Equal(t, 1_850_000, quality)
	assert.Greater(t, d.Factor, 1.0)

	clock.Advance(time.Second)
	require.NoError(t, c.OnSegmentResponse(2_000_000, abr.Attributes{}))

	quality, d = decideSegment(t, c)
	assert.Equal(t, 1.0, d.Level.Short)
	assert.Equal(t, 1.0, d.Trend.Falling)
	assert.Equal(t, 0.0, d.Level.Long)
	assert.Equal(t, 1.0, d.Strengths[DecreaseSharply])
	assert.InDelta(t, 0.25, d.Factor, 1e-9)
	assert.False(t, d.Held)
	assert.Equal(t, testLadder.Lowest(), quality)
}

func TestController_SlowTransferOutlastsWindow(t *testing.T) {
	c, clock := newTestController(t, test.NewMockBuffer(30, 30, 30))
	fetchManifest(t, c, clock, 10_000_000)

	quality, _ := decideSegment(t, c)
	assert.Equal(t, 1_850_000, quality)
	clock.Advance(time.Second)
	require.NoError(t, c.OnSegmentResponse(10_000_000, abr.Attributes{}))

	quality, _ = decideSegment(t, c)
	assert.Equal(t, 1_850_000, quality)
	clock.Advance(20 * time.Second)
	require.NoError(t, c.OnSegmentResponse(1_000_000, abr.Attributes{}))

	// every request is older than the window, only the slow transfer counts
	quality, d := decideSegment(t, c)
	assert.Equal(t, 1.0, d.Factor)
	assert.Equal(t, 50_000.0, d.LastRate)
	assert.Equal(t, 50_000.0, d.WindowedRate)
	assert.Equal(t, testLadder.Lowest(), d.Candidate)
	assert.False(t, d.Held)
	assert.Equal(t, testLadder.Lowest(), quality)
}

func TestController_MissingBufferMeasurement(t *testing.T) {
	c, clock := newTestController(t, test.NewMockBuffer())
	fetchManifest(t, c, clock, 2_000_000)

	quality, d := decideSegment(t, c)
	assert.Equal(t, 0.0, d.Buffer)
	assert.Equal(t, 1.0, d.Level.Short)
	assert.InDelta(t, 0.5, d.Factor, 1e-9)
	assert.Equal(t, 750_000, quality)
}

func TestController_BufferReporterFunc(t *testing.T) {
	level := 90 * time.Second
	c, clock := newTestController(t, BufferReporterFunc(func() (time.Duration, bool) {
		return level, true
	}))
	fetchManifest(t, c, clock, 1_000_000)

	_, d := decideSegment(t, c)
	assert.Equal(t, 90.0, d.Buffer)
	_, buffers := c.History()
	require.Len(t, buffers, 1)
	assert.Equal(t, testStart.Add(time.Second), buffers[0].Timestamp)
}

func TestController_Replay(t *testing.T) {
	levels := []float64{0, 4, 9, 15, 22, 31, 38, 45, 44, 30, 12, 8, 16, 35, 70, 110, 130, 125}
	bits := []int{900_000, 1_400_000, 2_200_000, 3_100_000, 2_600_000, 800_000, 400_000, 1_900_000}

	run := func() []Decision {
		var decisions []Decision
		c, clock := newTestController(t, test.NewMockBuffer(levels...),
			WithDecisionWriter(func(d Decision) {
				decisions = append(decisions, d)
			}),
		)
		fetchManifest(t, c, clock, 1_000_000)
		for i := range levels {
			clock.Advance(250 * time.Millisecond)
			decideSegment(t, c)
			clock.Advance(time.Duration(i%3+1) * time.Second)
			require.NoError(t, c.OnSegmentResponse(bits[i%len(bits)], abr.Attributes{}))
		}

		return decisions
	}

	first := run()
	second := run()
	require.Len(t, first, len(levels))
	assert.Equal(t, first, second)
	for _, d := range first {
		assert.Contains(t, testLadder, d.Selected)
		assert.GreaterOrEqual(t, d.Factor, 0.25-1e-12)
		assert.LessOrEqual(t, d.Factor, 2.0+1e-12)
	}
}

func TestController_MissingResponse(t *testing.T) {
	c, clock := newTestController(t, test.NewMockBuffer(10, 12, 14))
	fetchManifest(t, c, clock, 1_000_000)

	decideSegment(t, c)
	clock.Advance(time.Second)
	// the response to the first segment never arrives
	decideSegment(t, c)
	clock.Advance(time.Second)
	require.NoError(t, c.OnSegmentResponse(600_000, abr.Attributes{}))

	throughput, buffers := c.History()
	assert.Len(t, throughput, 2)
	assert.Len(t, buffers, 2)
	assert.Equal(t, 600_000.0, throughput[1].Rate)
	assert.Equal(t, testStart.Add(2*time.Second), throughput[1].Requested)

	decideSegment(t, c)
	throughput, buffers = c.History()
	// one request is in flight
	assert.GreaterOrEqual(t, len(throughput), len(buffers)-1)
}

func TestController_Preconditions(t *testing.T) {
	t.Run("decisionBeforeManifest", func(t *testing.T) {
		c, _ := newTestController(t, test.NewMockBuffer(10))
		assert.ErrorIs(t, c.OnSegmentRequest(abr.Attributes{}), ErrNoLadder)

		_, ok := c.Stats()
		assert.False(t, ok)
		_, buffers := c.History()
		assert.Empty(t, buffers)
	})

	t.Run("responseWithoutRequest", func(t *testing.T) {
		c, _ := newTestController(t, test.NewMockBuffer(10))
		assert.ErrorIs(t, c.OnManifestResponse(1000, testLadder, abr.Attributes{}), ErrNoPendingRequest)
		assert.ErrorIs(t, c.OnSegmentResponse(1000, abr.Attributes{}), ErrNoPendingRequest)
	})

	t.Run("mismatchedResponse", func(t *testing.T) {
		c, clock := newTestController(t, test.NewMockBuffer(10))
		require.NoError(t, c.OnManifestRequest(abr.Attributes{}))
		clock.Advance(time.Second)
		assert.ErrorIs(t, c.OnSegmentResponse(1000, abr.Attributes{}), ErrUnexpectedResponse)
	})

	t.Run("zeroElapsed", func(t *testing.T) {
		c, _ := newTestController(t, test.NewMockBuffer(10))
		require.NoError(t, c.OnManifestRequest(abr.Attributes{}))
		assert.ErrorIs(t, c.OnManifestResponse(1000, testLadder, abr.Attributes{}), ErrNonPositiveElapsed)
		assert.ErrorIs(t, c.OnSegmentRequest(abr.Attributes{}), ErrNoLadder)
	})

	t.Run("emptyLadder", func(t *testing.T) {
		c, clock := newTestController(t, test.NewMockBuffer(10))
		require.NoError(t, c.OnManifestRequest(abr.Attributes{}))
		clock.Advance(time.Second)
		assert.ErrorIs(t, c.OnManifestResponse(1000, abr.Ladder{}, abr.Attributes{}), abr.ErrEmptyLadder)
		assert.ErrorIs(t, c.OnManifestResponse(1000, abr.Ladder{2, 1}, abr.Attributes{}), abr.ErrUnorderedLadder)
		require.NoError(t, c.OnManifestResponse(1000, testLadder, abr.Attributes{}))
	})
}

func TestController_LadderIsCopied(t *testing.T) {
	c, clock := newTestController(t, test.NewMockBuffer(200))
	ladder := abr.Ladder{300_000, 750_000}
	require.NoError(t, c.OnManifestRequest(abr.Attributes{}))
	clock.Advance(time.Second)
	require.NoError(t, c.OnManifestResponse(10_000_000, ladder, abr.Attributes{}))
	ladder[1] = 99_000_000

	_, d := decideSegment(t, c)
	assert.Equal(t, 750_000, d.Candidate)
	assert.Equal(t, 300_000, d.Selected)
}

func TestNewController_Options(t *testing.T) {
	buffer := test.NewMockBuffer(10)

	_, err := NewController(nil)
	assert.ErrorIs(t, err, errNilBufferReporter)

	cases := []struct {
		name string
		opt  Option
		err  error
	}{
		{name: "timescale", opt: BufferTimescale(0), err: errInvalidTimescale},
		{name: "window", opt: ThroughputWindow(-time.Second), err: errInvalidWindow},
		{name: "bitrate", opt: InitialBitrate(0), err: errInvalidBitrate},
		{name: "weights", opt: WithWeights(Weights{}), err: errInvalidWeight},
		{name: "ruleBase", opt: WithRuleBase(RuleBase{{-1}}), err: errInvalidCategory},
		{name: "now", opt: WithNow(nil), err: errNilNow},
		{name: "decisionWriter", opt: WithDecisionWriter(nil), err: errNilDecisionWriter},
		{name: "config", opt: WithConfig(Config{}), err: errInvalidTimescale},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewController(buffer, tc.opt)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	config := DefaultConfig()
	config.BufferTimescale = 10 * time.Second
	config.RuleBase = HoldOnRecoveryRuleBase
	c, err := NewController(buffer,
		WithConfig(config),
		ThroughputWindow(5*time.Second),
		WithLoggerFactory(logging.NewDefaultLoggerFactory()),
	)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, c.config.BufferTimescale)
	assert.Equal(t, 5*time.Second, c.config.ThroughputWindow)
	assert.Equal(t, HoldOnRecoveryRuleBase, c.config.RuleBase)
	assert.Equal(t, DefaultInitialBitrate, c.TargetBitrate())
	assert.NoError(t, c.Close())
}

func TestRequestKindString(t *testing.T) {
	assert.Equal(t, "none", requestNone.String())
	assert.Equal(t, "manifest", requestManifest.String())
	assert.Equal(t, "segment", requestSegment.String())
	assert.Equal(t, "invalid request kind: 9", requestKind(9).String())
}
