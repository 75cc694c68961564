// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package abr

import "fmt"

// Chain is a Controller that runs all child controllers in order. Children
// later in the chain see the attributes written by earlier ones, so a
// decision made by the first controller can be observed by the rest.
type Chain struct {
	controllers []Controller
}

// NewChain returns a new Chain controller.
func NewChain(controllers []Controller) *Chain {
	return &Chain{controllers: controllers}
}

// NewChainFromFactories returns a new Chain controller.
func NewChainFromFactories(factories []Factory, sessionID SessionID) (*Chain, error) {
	controllers := make([]Controller, len(factories))

	for i, f := range factories {
		c, err := f.NewController(sessionID)
		if err != nil {
			return nil, fmt.Errorf("creating controller for sessionID: %s: %w", sessionID, err)
		}

		controllers[i] = c
	}

	return NewChain(controllers), nil
}

// OnManifestRequest implements Controller.
func (c *Chain) OnManifestRequest(attributes Attributes) error {
	for _, controller := range c.controllers {
		if err := controller.OnManifestRequest(attributes); err != nil {
			return err
		}
	}

	return nil
}

// OnManifestResponse implements Controller.
func (c *Chain) OnManifestResponse(bits int, ladder Ladder, attributes Attributes) error {
	for _, controller := range c.controllers {
		if err := controller.OnManifestResponse(bits, ladder, attributes); err != nil {
			return err
		}
	}

	return nil
}

// OnSegmentRequest implements Controller.
func (c *Chain) OnSegmentRequest(attributes Attributes) error {
	for _, controller := range c.controllers {
		if err := controller.OnSegmentRequest(attributes); err != nil {
			return err
		}
	}

	return nil
}

// OnSegmentResponse implements Controller.
func (c *Chain) OnSegmentResponse(bits int, attributes Attributes) error {
	for _, controller := range c.controllers {
		if err := controller.OnSegmentResponse(bits, attributes); err != nil {
			return err
		}
	}

	return nil
}

// Close closes all child controllers. Every child is closed even if an
// earlier one fails.
func (c *Chain) Close() error {
	var errs []error
	for _, controller := range c.controllers {
		errs = append(errs, controller.Close())
	}

	return flattenErrs(errs)
}
