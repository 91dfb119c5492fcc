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

// Package frame holds the EtherCAT wire-format constants shared by the
// datagram builder, the port receive path and the link layers.
package frame

// EtherType carried by every EtherCAT frame on the wire. The same value
// doubles as the UDP port number for EtherCAT-over-UDP segments.
const EtherType = 0x88A4

// Byte layout of a frame as it leaves the master:
//
//	0..13   Ethernet header (preset once at port open)
//	14..15  EtherCAT header word: low 11 bits datagram area length,
//	        bits 12..15 protocol type (1 for datagrams), little-endian
//	16..25  first datagram sub-header
//	26..    payload, 2-byte working counter, further datagrams
const (
	// EthHeaderSize is the length of the Ethernet header prefix.
	EthHeaderSize = 14

	// ElengthSize is the size of the EtherCAT header word.
	ElengthSize = 2

	// HeaderSize is the EtherCAT header word plus one datagram
	// sub-header. It equals the per-datagram growth of the non-payload
	// frame area, which is why the builder accounts in these units.
	HeaderSize = 12

	// SubHeaderSize is the size of one datagram sub-header.
	SubHeaderSize = HeaderSize - ElengthSize

	// WkcSize is the size of the working counter trailing each datagram.
	WkcSize = 2

	// CmdOffset locates the first datagram's command byte in a receive
	// buffer, which stores frames with the Ethernet header stripped.
	CmdOffset = 2

	// MaxFrameSize is the largest Ethernet frame the port buffers hold.
	MaxFrameSize = 1518

	// MaxDataLength is the largest single-datagram payload that still
	// fits a standard 1500 byte Ethernet payload together with the
	// EtherCAT header word, one sub-header and the working counter.
	MaxDataLength = 1486

	// EcatType is the protocol type nibble, pre-shifted into the
	// EtherCAT header word.
	EcatType = 0x1000
)

// Sub-header field offsets relative to the start of a datagram.
const (
	OffCommand = 0
	OffIndex   = 1
	OffADP     = 2
	OffADO     = 4
	OffDlength = 6
	OffIRQ     = 8
)

// DatagramFollows is the bit in the dlength word announcing that another
// datagram trails this one in the same frame.
const DatagramFollows = uint16(1) << 15

// DlengthMask extracts the payload length from a dlength word.
const DlengthMask = uint16(1)<<11 - 1

// ElengthMask extracts the datagram area length from the EtherCAT
// header word.
const ElengthMask = uint16(1)<<12 - 1
