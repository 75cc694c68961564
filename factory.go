// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package abr

// Factory creates the Controller of a session.
type Factory interface {
	NewController(SessionID) (Controller, error)
}

// FactoryFunc defines a simpler interface to use when creating a Factory,
// similar to http.HandlerFunc.
type FactoryFunc func(SessionID) (Controller, error)

// NewController implements Factory.
func (f FactoryFunc) NewController(sessionID SessionID) (Controller, error) {
	return f(sessionID)
}
