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
	"encoding/binary"

	"github.com/WangJhone/go-nex/internal/frame"
)

// writeDatagramData fills the payload region of a datagram. Read
// commands carry no master data; the region is zeroed so no stale buffer
// contents leak onto the wire before the slaves overwrite it.
func writeDatagramData(dst []byte, com Command, length int, data []byte) {
	if length <= 0 {
		return
	}
	if com.isRead() {
		for i := range dst[:length] {
			dst[i] = 0
		}
		return
	}
	copy(dst[:length], data[:length])
}

// SetupDatagram initializes the transmit buffer of slot idx with a frame
// containing exactly one datagram. The Ethernet header preset at Open is
// untouched. length may exceed len(data) only for read commands, whose
// payload region is zero-filled.
func (p *Port) SetupDatagram(idx uint8, com Command, adp, ado uint16, length int, data []byte) error {
	if length < 0 || length > frame.MaxDataLength {
		return ErrDataTooLong
	}

	b := p.txbuf[idx][:]
	binary.LittleEndian.PutUint16(b[frame.EthHeaderSize:],
		uint16(frame.EcatType+frame.HeaderSize+length))

	d := b[frame.EthHeaderSize+frame.ElengthSize:]
	d[frame.OffCommand] = byte(com)
	d[frame.OffIndex] = idx
	binary.LittleEndian.PutUint16(d[frame.OffADP:], adp)
	binary.LittleEndian.PutUint16(d[frame.OffADO:], ado)
	binary.LittleEndian.PutUint16(d[frame.OffDlength:], uint16(length))
	binary.LittleEndian.PutUint16(d[frame.OffIRQ:], 0)

	writeDatagramData(d[frame.SubHeaderSize:], com, length, data)

	// working counter placeholder
	wkcAt := frame.EthHeaderSize + frame.HeaderSize + length
	b[wkcAt] = 0
	b[wkcAt+1] = 0

	p.txbuflength[idx] = frame.EthHeaderSize + frame.HeaderSize + frame.WkcSize + length
	return nil
}

// AddDatagram appends another datagram to the frame previously set up in
// slot idx. The chain-continuation bit of the first datagram is set, and
// the appended datagram carries it only when more is true. Returns the
// byte offset, relative to the receive buffer (which lacks the Ethernet
// header), at which the new datagram's response payload will be found.
func (p *Port) AddDatagram(idx uint8, com Command, more bool, adp, ado uint16, length int, data []byte) (int, error) {
	prev := p.txbuflength[idx]
	if length < 0 || prev+frame.SubHeaderSize+length+frame.WkcSize > frame.MaxFrameSize {
		return 0, ErrDataTooLong
	}

	b := p.txbuf[idx][:]

	// grow the datagram area announced by the EtherCAT header word
	eh := binary.LittleEndian.Uint16(b[frame.EthHeaderSize:])
	binary.LittleEndian.PutUint16(b[frame.EthHeaderSize:],
		eh+uint16(frame.HeaderSize+length))

	// flag the first datagram as not-last
	firstDlen := frame.EthHeaderSize + frame.ElengthSize + frame.OffDlength
	dl := binary.LittleEndian.Uint16(b[firstDlen:])
	binary.LittleEndian.PutUint16(b[firstDlen:], dl|frame.DatagramFollows)

	// new sub-header directly after the previous working counter
	d := b[prev:]
	d[frame.OffCommand] = byte(com)
	d[frame.OffIndex] = idx
	binary.LittleEndian.PutUint16(d[frame.OffADP:], adp)
	binary.LittleEndian.PutUint16(d[frame.OffADO:], ado)
	dlength := uint16(length)
	if more {
		dlength |= frame.DatagramFollows
	}
	binary.LittleEndian.PutUint16(d[frame.OffDlength:], dlength)
	binary.LittleEndian.PutUint16(d[frame.OffIRQ:], 0)

	writeDatagramData(d[frame.SubHeaderSize:], com, length, data)

	wkcAt := prev + frame.SubHeaderSize + length
	b[wkcAt] = 0
	b[wkcAt+1] = 0

	p.txbuflength[idx] = prev + frame.SubHeaderSize + frame.WkcSize + length

	// offset of the response payload in the receive buffer, which is 14
	// bytes shorter than the transmit frame
	return prev + frame.SubHeaderSize - frame.EthHeaderSize, nil
}
