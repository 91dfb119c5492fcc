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

/*
Package nex implements the base datagram layer of an EtherCAT master.

EtherCAT is a deterministic fieldbus built on standard Ethernet framing:
one master transmits frames that the slaves modify on the fly as the
bits flow past. This package assembles one or more EtherCAT datagrams
inside preallocated frame buffers, transmits them through a pluggable
link layer, and couples each transmit buffer, receive buffer and
datagram index through a small pool of transaction slots so concurrent
callers can share a single port.

All transfers are blocking: a primitive occupies its caller from
invocation until the frame returns or the timeout expires, and reports
the working counter the slaves incremented, or NoFrame. Within one
call's timeout, SrConfirm retransmits the frame once per receive window
of TimeoutRet; beyond that, higher layers own retries, slave
configuration, mailbox protocols and clock synchronization; callers that need custom multi-datagram frames can
build them with SetupDatagram and AddDatagram and dispatch them with
SrConfirm.

Basic usage:

	import (
	    nex "github.com/WangJhone/go-nex"
	    "github.com/WangJhone/go-nex/transport/rawsock"
	)

	link, err := rawsock.New("eth0")
	if err != nil {
	    log.Fatal(err)
	}

	port, err := nex.Open(link)
	if err != nil {
	    log.Fatal(err)
	}
	defer port.Close()

	// count the slaves in the segment
	var typ [2]byte
	wkc := port.BRD(0, 0x0000, typ[:], nex.TimeoutRet)
	if wkc == nex.NoFrame {
	    log.Fatal("no response from segment")
	}
	fmt.Printf("%d slaves\n", wkc)

Link layers:

  - rawsock: AF_PACKET socket bound to one interface (Linux)
  - udp: EtherCAT over UDP port 0x88A4, for wired test setups

Thread safety:

Port methods are safe for concurrent use. Two concurrent primitives
occupy two transaction slots; the receive path demultiplexes returned
frames by the datagram index byte. The working counter is the only
result channel, matching the layer below slave enumeration: partial
working counters are reported as-is for the caller to interpret.
*/
package nex
