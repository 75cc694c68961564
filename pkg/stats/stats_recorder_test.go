// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package stats

import (
	"testing"
	"time"

	"github.com/pion/abr"
	"github.com/pion/abr/internal/test"
	"github.com/pion/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLadder = abr.Ladder{300_000, 750_000, 1_200_000, 1_850_000}

// fixedQuality attaches a scripted sequence of qualities to segment requests.
type fixedQuality struct {
	abr.NoOp
	qualities []int
	i         int
}

func (f *fixedQuality) OnSegmentRequest(attributes abr.Attributes) error {
	attributes.SetQuality(f.qualities[f.i%len(f.qualities)])
	f.i++

	return nil
}

func TestRecorder(t *testing.T) {
	clock := test.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	f, err := NewRecorderFactory(
		WithNow(clock.Now),
		Log(logging.NewDefaultLoggerFactory().NewLogger("test")),
	)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	require.NoError(t, f.Register(reg))

	r := abr.Registry{}
	r.Add(abr.FactoryFunc(func(abr.SessionID) (abr.Controller, error) {
		return &fixedQuality{qualities: []int{300_000, 300_000, 750_000, 300_000}}, nil
	}))
	r.Add(f)
	c, err := r.Build("a")
	require.NoError(t, err)

	require.NoError(t, c.OnManifestRequest(abr.Attributes{}))
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, c.OnManifestResponse(50_000, testLadder, abr.Attributes{}))

	for i := 0; i < 4; i++ {
		require.NoError(t, c.OnSegmentRequest(abr.Attributes{}))
		clock.Advance(time.Second)
		require.NoError(t, c.OnSegmentResponse(1_000_000, abr.Attributes{}))
	}

	stats, err := f.GetStats("a")
	require.NoError(t, err)
	assert.Equal(t, Stats{
		ManifestRequests: 1,
		SegmentRequests:  4,
		Switches:         2,
		DownloadedBits:   4_050_000,
		Quality:          300_000,
		Throughput:       1_000_000,
		TransferTime:     4500 * time.Millisecond,
	}, stats)

	assert.Equal(t, 4.0, testutil.ToFloat64(f.collectors.segments.WithLabelValues("a")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.collectors.switches.WithLabelValues("a")))
	assert.Equal(t, 4_050_000.0, testutil.ToFloat64(f.collectors.bits.WithLabelValues("a")))
	assert.Equal(t, 300_000.0, testutil.ToFloat64(f.collectors.quality.WithLabelValues("a")))
	assert.Equal(t, 1_000_000.0, testutil.ToFloat64(f.collectors.throughput.WithLabelValues("a")))
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	require.NoError(t, c.Close())
	_, err = f.GetStats("a")
	assert.ErrorIs(t, err, ErrUnknownSession)
	count, err = testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecorder_Undecided(t *testing.T) {
	f, err := NewRecorderFactory()
	require.NoError(t, err)
	c, err := f.NewController("a")
	require.NoError(t, err)
	again, err := f.NewController("a")
	require.NoError(t, err)
	assert.Same(t, c, again)

	require.NoError(t, c.OnSegmentRequest(abr.Attributes{}))
	stats, err := f.GetStats("a")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SegmentRequests)
	assert.Equal(t, 1, stats.UndecidedRequests)
	assert.Equal(t, 0, stats.Quality)
}

func TestRecorder_ResponseWithoutRequest(t *testing.T) {
	f, err := NewRecorderFactory()
	require.NoError(t, err)
	c, err := f.NewController("a")
	require.NoError(t, err)

	require.NoError(t, c.OnSegmentResponse(8000, abr.Attributes{}))
	stats, err := f.GetStats("a")
	require.NoError(t, err)
	assert.Equal(t, int64(8000), stats.DownloadedBits)
	assert.Equal(t, 0.0, stats.Throughput)
}

func TestRecorderFactory_Options(t *testing.T) {
	_, err := NewRecorderFactory(WithNow(nil))
	assert.ErrorIs(t, err, errNilNow)

	f, err := NewRecorderFactory(
		Namespace("player"),
		WithLoggerFactory(logging.NewDefaultLoggerFactory()),
	)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	require.NoError(t, f.Register(reg))
	assert.Error(t, f.Register(reg), "registering twice must fail")

	c, err := f.NewController("a")
	require.NoError(t, err)
	attributes := abr.Attributes{}
	attributes.SetQuality(750_000)
	require.NoError(t, c.OnSegmentRequest(attributes))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := []string{}
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "player_segment_requests_total")
	assert.Contains(t, names, "player_selected_bitrate_bps")
}
