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
	"os"
	"sync/atomic"
)

// Debug output is off by default and only ever emitted from the setup
// and teardown paths. The datagram hot path does not log.
var debugEnabled atomic.Bool

// SetDebugEnabled toggles debug output to stderr.
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

func debugf(format string, args ...any) {
	if debugEnabled.Load() {
		fmt.Fprintf(os.Stderr, "nex: "+format+"\n", args...)
	}
}
