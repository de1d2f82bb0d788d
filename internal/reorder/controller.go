// Package reorder translates drag gestures into task moves.
//
// The contract is gesture-agnostic: pointer, touch and keyboard interactions
// all reduce to "a source item and a destination item, or cancellation". A
// completed gesture produces exactly one store reorder call; a cancelled one
// produces none.
package reorder

import "taskmaster/internal/logging"

// Store is the mutation surface the controller drives
type Store interface {
	Reorder(fromID, toID, categoryFilter string) bool
}

// Controller tracks at most one in-flight drag gesture. It is driven from a
// single UI event loop and holds no locks of its own.
type Controller struct {
	store    Store
	sourceID string
	filter   string
	active   bool
}

// NewController creates a controller bound to a store
func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Begin starts a gesture on the given source task. The category filter pins
// the visible pending subsequence the gesture operates on; a Begin while a
// gesture is already active replaces it.
func (c *Controller) Begin(sourceID, categoryFilter string) {
	c.sourceID = sourceID
	c.filter = categoryFilter
	c.active = true
}

// Drop ends the gesture over the given target. Returns whether the store
// order changed. Dropping with no active gesture, over the source itself, or
// over a target outside the visible subsequence mutates nothing.
func (c *Controller) Drop(targetID string) bool {
	if !c.active {
		return false
	}
	source, filter := c.sourceID, c.filter
	c.reset()

	if targetID == "" || targetID == source {
		return false
	}
	moved := c.store.Reorder(source, targetID, filter)
	if moved {
		logging.Debug("reorder", "moved %s to position of %s", source, targetID)
	}
	return moved
}

// Cancel abandons the gesture. The store is guaranteed untouched.
func (c *Controller) Cancel() {
	c.reset()
}

// Active reports whether a gesture is in flight
func (c *Controller) Active() bool {
	return c.active
}

// Source returns the task the active gesture started on, or ""
func (c *Controller) Source() string {
	if !c.active {
		return ""
	}
	return c.sourceID
}

func (c *Controller) reset() {
	c.sourceID = ""
	c.filter = ""
	c.active = false
}
