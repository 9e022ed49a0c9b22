// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// FakeClock is a deterministic Clock for tests. Time stands still
// until Advance is called; Advance fires every sleep and ticker that
// comes due in timestamp order.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
}

// fakeWaiter is a pending sleep or ticker deadline.
type fakeWaiter struct {
	deadline time.Time
	period   time.Duration // zero for one-shot sleeps
	ch       chan time.Time
	stopped  bool
}

// Fake returns a FakeClock frozen at start.
func Fake(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowNS returns the fake current time in Unix nanoseconds.
func (c *FakeClock) NowNS() uint64 {
	return uint64(c.Now().UnixNano())
}

// Sleep blocks until Advance moves the clock past d.
func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	waiter := &fakeWaiter{
		deadline: c.current.Add(d),
		ch:       make(chan time.Time, 1),
	}
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()
	<-waiter.ch
}

// NewTicker returns a ticker driven by Advance.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}
	c.mu.Lock()
	waiter := &fakeWaiter{
		deadline: c.current.Add(d),
		period:   d,
		ch:       make(chan time.Time, 1),
	}
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()

	return &Ticker{
		C: waiter.ch,
		stop: func() {
			c.mu.Lock()
			waiter.stopped = true
			c.mu.Unlock()
		},
	}
}

// Advance moves the clock forward by d, firing due sleeps and tickers.
// Ticker sends are non-blocking (capacity 1, matching time.Ticker):
// a consumer that falls behind drops ticks rather than queueing them.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(d)

	remaining := c.waiters[:0]
	for _, waiter := range c.waiters {
		if waiter.stopped {
			continue
		}
		for !waiter.deadline.After(c.current) {
			select {
			case waiter.ch <- waiter.deadline:
			default:
			}
			if waiter.period == 0 {
				break
			}
			waiter.deadline = waiter.deadline.Add(waiter.period)
		}
		if waiter.period != 0 || waiter.deadline.After(c.current) {
			remaining = append(remaining, waiter)
		}
	}
	c.waiters = remaining
}
