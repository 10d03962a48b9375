/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "slices"

// Submission is one player's value, in first-submission order.
type Submission[T any] struct {
	PlayerID string
	Value    T
}

// Collector waits for one value per active player.
//
// The active set is a snapshot taken when the collector is opened; players who
// join later sit the phase out, and players who leave are forgotten so the
// phase can still complete without them. Resubmitting overwrites the earlier
// value but keeps its position, which is what ties are broken on.
type Collector[T any] struct {
	active  map[string]bool
	index   map[string]int
	subs    []Submission[T]
	drained bool
}

func NewCollector[T any](ids []string) *Collector[T] {
	c := &Collector[T]{
		active: make(map[string]bool, len(ids)),
		index:  make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		c.active[id] = true
	}
	return c
}

// Submit records v for id. It reports false if id is not part of the active
// set or the collector has already been drained.
func (c *Collector[T]) Submit(id string, v T) bool {
	if c.drained || !c.active[id] {
		return false
	}

	if i, ok := c.index[id]; ok {
		c.subs[i].Value = v
		return true
	}

	c.index[id] = len(c.subs)
	c.subs = append(c.subs, Submission[T]{PlayerID: id, Value: v})
	return true
}

// Forget drops id from the active set along with anything it submitted.
func (c *Collector[T]) Forget(id string) {
	delete(c.active, id)

	i, ok := c.index[id]
	if !ok {
		return
	}
	delete(c.index, id)
	c.subs = slices.Delete(c.subs, i, i+1)
	for j := i; j < len(c.subs); j++ {
		c.index[c.subs[j].PlayerID] = j
	}
}

func (c *Collector[T]) Submitted(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Pending is the number of active players yet to submit.
func (c *Collector[T]) Pending() int {
	if c.drained {
		return 0
	}
	return len(c.active) - len(c.subs)
}

// Complete reports whether every active player has submitted. Submissions are
// always a subset of the active set, so equal sizes mean equal sets.
func (c *Collector[T]) Complete() bool {
	return !c.drained && len(c.subs) == len(c.active)
}

// Drain hands the submissions to the caller and closes the collector.
func (c *Collector[T]) Drain() []Submission[T] {
	out := c.subs
	c.subs = nil
	clear(c.index)
	c.drained = true
	return out
}

func (c *Collector[T]) Drained() bool {
	return c.drained
}
