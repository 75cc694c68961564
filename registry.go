// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package abr

// Registry is a collector for controller factories.
type Registry struct {
	factories []Factory
}

// Add adds a new Factory to the registry.
func (r *Registry) Add(f Factory) {
	r.factories = append(r.factories, f)
}

// Build constructs a single Controller for the session from the registered
// factories, in the order they were added.
func (r *Registry) Build(sessionID SessionID) (Controller, error) {
	if len(r.factories) == 0 {
		return &NoOp{}, nil
	}

	return NewChainFromFactories(r.factories, sessionID)
}
