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

//go:build !linux

// Package rawsock provides the AF_PACKET link layer for a nex.Port on
// Linux. On other systems New reports an error; use the udp link layer
// instead.
package rawsock

import (
	"errors"
	"net"
	"time"

	nex "github.com/WangJhone/go-nex"
)

// ErrUnsupported is returned by New on platforms without AF_PACKET.
var ErrUnsupported = errors.New("raw socket link requires linux")

// Link is unavailable on this platform.
type Link struct{}

// New reports ErrUnsupported.
func New(string) (*Link, error) {
	return nil, ErrUnsupported
}

// Send is unreachable; New never returns a Link here.
func (*Link) Send([]byte) error { return ErrUnsupported }

// Receive is unreachable; New never returns a Link here.
func (*Link) Receive([]byte, time.Time) (int, error) { return 0, ErrUnsupported }

// HardwareAddr returns nil.
func (*Link) HardwareAddr() net.HardwareAddr { return nil }

// Close is a no-op.
func (*Link) Close() error { return nil }

// Type returns nex.LinkRawSocket.
func (*Link) Type() nex.LinkType { return nex.LinkRawSocket }
