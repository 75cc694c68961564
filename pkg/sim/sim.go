// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package sim drives a rate-adaptation controller through a streaming
// session over a simulated link. Time is virtual, so a run is deterministic
// and takes no wall clock time.
package sim

import (
	"fmt"
	"time"

	"github.com/pion/abr"
	"github.com/pion/abr/internal/types"
	"github.com/pion/logging"
)

// Segment describes one downloaded segment.
type Segment struct {
	Index     int
	Requested time.Time
	Completed time.Time
	Bitrate   int
	// Buffer occupancy when the request was sent
	Buffer time.Duration
	// Playback stall accumulated while the segment was downloading
	Stall time.Duration
}

// Result summarizes a simulated session.
type Result struct {
	Segments     []Segment
	Stall        time.Duration
	StallEvents  int
	Switches     int
	MeanBitrate  float64
	StartupDelay time.Duration
	Duration     time.Duration
}

// Session is a simulated player. It owns the virtual clock and the playback
// buffer and implements the buffer reporter the controller reads.
type Session struct {
	log           logging.LeveledLogger
	loggerFactory logging.LoggerFactory
	config        Config

	ladder abr.Ladder
	link   *link

	now     time.Time
	buffer  time.Duration
	playing bool
	stalled bool
	result  Result
}

// NewSession returns a Session streaming ladder over a link following trace.
func NewSession(ladder abr.Ladder, trace Trace, opts ...Option) (*Session, error) {
	if err := ladder.Validate(); err != nil {
		return nil, err
	}
	if err := trace.validate(); err != nil {
		return nil, err
	}
	s := &Session{
		loggerFactory: logging.NewDefaultLoggerFactory(),
		config:        DefaultConfig(),
		ladder:        ladder.Clone(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.log == nil {
		s.log = s.loggerFactory.NewLogger("abr_sim")
	}
	s.now = s.config.Start
	s.link = newLink(append(Trace(nil), trace...), s.config.Start, defaultChunkBits)

	return s, nil
}

// Now returns the virtual time of the session.
func (s *Session) Now() time.Time {
	return s.now
}

// BufferLevel reports the playback buffer occupancy. It has no data until
// the first segment arrived.
func (s *Session) BufferLevel() (time.Duration, bool) {
	return s.buffer, s.playing
}

// Run requests the manifest and all segments through c and returns the
// summary of the session. c must attach a quality to every segment request.
func (s *Session) Run(c abr.Controller) (Result, error) {
	attributes := make(abr.Attributes)
	if err := c.OnManifestRequest(attributes); err != nil {
		return s.result, err
	}
	s.fetch(s.config.ManifestBits)
	if err := c.OnManifestResponse(s.config.ManifestBits, s.ladder.Clone(), attributes); err != nil {
		return s.result, err
	}

	for i := 0; i < s.config.Segments; i++ {
		s.idle()

		attributes = make(abr.Attributes)
		seg := Segment{Index: i, Requested: s.now, Buffer: s.buffer}
		if err := c.OnSegmentRequest(attributes); err != nil {
			return s.result, fmt.Errorf("segment %d: %w", i, err)
		}
		quality, err := attributes.Quality()
		if err != nil {
			return s.result, fmt.Errorf("segment %d: %w", i, err)
		}

		bits := int(float64(quality) * s.config.SegmentDuration.Seconds())
		seg.Stall = s.fetch(bits)
		seg.Completed = s.now
		seg.Bitrate = quality
		s.arrive(seg)

		if err := c.OnSegmentResponse(bits, attributes); err != nil {
			return s.result, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	s.result.Duration = s.now.Sub(s.config.Start)

	s.log.Debugf("session done: %d segments, mean %v, %d switches, stalled %v in %d events",
		len(s.result.Segments),
		types.DataRate(s.result.MeanBitrate),
		s.result.Switches,
		s.result.Stall,
		s.result.StallEvents,
	)

	return s.result, nil
}

// idle waits until the buffer has room for another segment.
func (s *Session) idle() {
	if limit := s.config.MaxBuffer - s.config.SegmentDuration; s.playing && s.buffer > limit {
		s.advance(s.buffer - limit)
	}
}

// fetch downloads bits and returns the stall time it caused.
func (s *Session) fetch(bits int) time.Duration {
	done := s.link.transfer(s.now.Add(s.config.Latency), bits)

	return s.advance(done.Sub(s.now))
}

func (s *Session) arrive(seg Segment) {
	if !s.playing {
		s.playing = true
		s.result.StartupDelay = s.now.Sub(s.config.Start)
	}
	s.stalled = false
	s.buffer += s.config.SegmentDuration

	segments := s.result.Segments
	if n := len(segments); n > 0 && segments[n-1].Bitrate != seg.Bitrate {
		s.result.Switches++
	}
	s.result.MeanBitrate += (float64(seg.Bitrate) - s.result.MeanBitrate) / float64(len(segments)+1)
	s.result.Segments = append(segments, seg)

	s.log.Tracef("segment %d at %v took %v, buffer %v",
		seg.Index, types.DataRate(seg.Bitrate), seg.Completed.Sub(seg.Requested), s.buffer)
}

// advance moves the clock by d while playback drains the buffer.
func (s *Session) advance(d time.Duration) time.Duration {
	s.now = s.now.Add(d)
	if !s.playing {
		return 0
	}
	if d <= s.buffer {
		s.buffer -= d

		return 0
	}

	stall := d - s.buffer
	s.buffer = 0
	if !s.stalled {
		s.stalled = true
		s.result.StallEvents++
		s.log.Warnf("playback stalled at %v", s.now.Sub(s.config.Start)-stall)
	}
	s.result.Stall += stall

	return stall
}
