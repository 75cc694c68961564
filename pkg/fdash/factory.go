// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import (
	"fmt"
	"sync"

	"github.com/pion/abr"
)

// BufferReporterProvider returns the buffer reporter of a session.
type BufferReporterProvider func(abr.SessionID) BufferReporter

// ControllerFactory is a factory for fuzzy rate-adaptation controllers.
type ControllerFactory struct {
	opts    []Option
	buffers BufferReporterProvider

	lock        sync.Mutex
	controllers map[abr.SessionID]*Controller
}

// NewControllerFactory returns a new factory. Every controller it creates
// is configured with opts and reads its buffer level from the reporter
// buffers returns for its session.
func NewControllerFactory(buffers BufferReporterProvider, opts ...Option) (*ControllerFactory, error) {
	if buffers == nil {
		return nil, errNilReporterFactory
	}

	return &ControllerFactory{
		opts:        opts,
		buffers:     buffers,
		controllers: map[abr.SessionID]*Controller{},
	}, nil
}

// NewController returns the controller of the session, creating it on
// first use.
func (f *ControllerFactory) NewController(id abr.SessionID) (abr.Controller, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if c, ok := f.controllers[id]; ok {
		return c, nil
	}
	c, err := NewController(f.buffers(id), f.opts...)
	if err != nil {
		return nil, err
	}
	c.onClose = func() {
		f.lock.Lock()
		defer f.lock.Unlock()
		// a later controller may already own the session
		if f.controllers[id] == c {
			delete(f.controllers, id)
		}
	}
	f.controllers[id] = c

	return c, nil
}

// TargetBitrate returns the latest selected quality of the session with id.
func (f *ControllerFactory) TargetBitrate(id abr.SessionID) (int, error) {
	c, err := f.get(id)
	if err != nil {
		return 0, err
	}

	return c.TargetBitrate(), nil
}

// Stats returns the latest decision of the session with id.
func (f *ControllerFactory) Stats(id abr.SessionID) (Decision, error) {
	c, err := f.get(id)
	if err != nil {
		return Decision{}, err
	}
	d, ok := c.Stats()
	if !ok {
		return Decision{}, fmt.Errorf("%w: %v", ErrNoDecision, id)
	}

	return d, nil
}

func (f *ControllerFactory) get(id abr.SessionID) (*Controller, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if c, ok := f.controllers[id]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnknownSession, id)
}
