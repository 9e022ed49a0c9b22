// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations Argus uses: reading the current
// time for audit events, sleeping, and periodic ticking for telemetry
// flush loops.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NowNS returns the current time as nanoseconds since the Unix
	// epoch. Event timestamps are stored in this form.
	NowNS() uint64

	// Sleep pauses the calling goroutine for at least d.
	Sleep(d time.Duration)

	// NewTicker returns a ticker delivering on C every d. Callers
	// must Stop it when done. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker wraps a periodic timer. Read ticks from C; call Stop to
// release resources. Stop does not close C.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns off the ticker.
func (t *Ticker) Stop() { t.stop() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NowNS() uint64 { return uint64(time.Now().UnixNano()) }

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

func (realClock) NewTicker(d time.Duration) *Ticker {
	inner := time.NewTicker(d)
	return &Ticker{C: inner.C, stop: inner.Stop}
}
