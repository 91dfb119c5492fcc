// go-nex
// Copyright (c) 2026 The go-nex Authors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-nex.
//
// go-nex is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-nex is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-nex; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package nex

import (
	"fmt"

	"go.uber.org/atomic"
)

// Stats holds per-port frame counters. The counters are atomics so a
// monitoring goroutine can read them while primitives run.
type Stats struct {
	framesSent     atomic.Uint64
	framesReceived atomic.Uint64
	timeouts       atomic.Uint64
	dropped        atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of a port's counters.
type StatsSnapshot struct {
	FramesSent     uint64
	FramesReceived uint64
	Timeouts       uint64
	Dropped        uint64
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("sent: %d received: %d timeouts: %d dropped: %d",
		s.FramesSent, s.FramesReceived, s.Timeouts, s.Dropped)
}

// Stats returns a snapshot of the port counters.
func (p *Port) Stats() StatsSnapshot {
	return StatsSnapshot{
		FramesSent:     p.stats.framesSent.Load(),
		FramesReceived: p.stats.framesReceived.Load(),
		Timeouts:       p.stats.timeouts.Load(),
		Dropped:        p.stats.dropped.Load(),
	}
}
