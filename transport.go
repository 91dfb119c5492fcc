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
	"net"
	"time"
)

// Link is the raw frame transport under a Port. Implementations send and
// receive whole Ethernet frames carrying the EtherCAT EtherType; framing,
// addressing and working counters are the Port's business.
//
// Send must transmit the frame as-is, including the 14 byte Ethernet
// header. Receive must store exactly one frame into buf, again including
// an Ethernet header, and return its length. When no frame arrives
// before the deadline, Receive returns an error satisfying IsTimeout.
type Link interface {
	// Send transmits one Ethernet frame.
	Send(buf []byte) error

	// Receive reads one Ethernet frame into buf, waiting at most until
	// deadline. Returns the number of bytes stored.
	Receive(buf []byte, deadline time.Time) (int, error)

	// Close shuts the link down. Blocked Receive calls return an error.
	Close() error

	// Type returns the link type.
	Type() LinkType
}

// LinkType identifies the kind of link layer below a Port.
type LinkType string

const (
	// LinkRawSocket is an AF_PACKET socket bound to one interface.
	LinkRawSocket LinkType = "rawsock"
	// LinkUDP carries EtherCAT segments over UDP port 0x88A4.
	LinkUDP LinkType = "udp"
	// LinkMock is an in-process link for testing.
	LinkMock LinkType = "mock"
)

// HardwareAddresser is implemented by links that know the MAC address of
// their underlying interface. Open uses it to preset the source address
// of the transmit buffers; links without one fall back to the
// conventional master address.
type HardwareAddresser interface {
	HardwareAddr() net.HardwareAddr
}
