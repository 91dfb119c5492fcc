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
	"time"

	"github.com/WangJhone/go-nex/internal/frame"
)

// The datagram primitives are all blocking: each claims a transaction
// slot, builds a single-datagram frame, transmits it and waits for the
// returned frame or the timeout. The return value is the working counter
// incremented by the slaves, or NoFrame on timeout. A timeout of zero
// selects the port's default.

func loWord(v uint32) uint16 { return uint16(v) }
func hiWord(v uint32) uint16 { return uint16(v >> 16) }

func (p *Port) timeoutOr(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return p.config.defaultTimeout
	}
	return timeout
}

// roundtrip runs the shared primitive skeleton: claim a slot, build the
// frame, send and wait, optionally copy the response payload back, and
// release the slot.
func (p *Port) roundtrip(com Command, adp, ado uint16, data []byte, readBack bool, timeout time.Duration) int {
	idx := p.GetIndex()
	if err := p.SetupDatagram(idx, com, adp, ado, len(data), data); err != nil {
		p.SetBufStat(idx, BufEmpty)
		return NoFrame
	}
	wkc := p.SrConfirm(idx, p.timeoutOr(timeout))
	if readBack && wkc > 0 {
		copy(data, p.rxbuf[idx][frame.HeaderSize:frame.HeaderSize+len(data)])
	}
	p.SetBufStat(idx, BufEmpty)
	return wkc
}

// BWR broadcast write. Every slave in the segment writes data at offset
// ado of its local address space; adp is normally 0.
func (p *Port) BWR(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdBWR, adp, ado, data, false, timeout)
}

// BRD broadcast read. Every slave ORs its memory at ado into the
// payload; data receives the result.
func (p *Port) BRD(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdBRD, adp, ado, data, true, timeout)
}

// APRD auto increment read. Each slave increments adp; the slave that
// sees zero executes the read.
func (p *Port) APRD(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdAPRD, adp, ado, data, true, timeout)
}

// APRDw reads one word with auto increment addressing. The returned
// value is the little-endian wire payload; a timeout reads as zero.
func (p *Port) APRDw(adp, ado uint16, timeout time.Duration) uint16 {
	var w [2]byte
	p.APRD(adp, ado, w[:], timeout)
	return binary.LittleEndian.Uint16(w[:])
}

// APWR auto increment write.
func (p *Port) APWR(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdAPWR, adp, ado, data, false, timeout)
}

// APWRw writes one word with auto increment addressing.
func (p *Port) APWRw(adp, ado, data uint16, timeout time.Duration) int {
	var w [2]byte
	binary.LittleEndian.PutUint16(w[:], data)
	return p.APWR(adp, ado, w[:], timeout)
}

// FPRD configured address read. The slave whose station address equals
// adp executes the read.
func (p *Port) FPRD(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdFPRD, adp, ado, data, true, timeout)
}

// FPRDw reads one word from a configured station address.
func (p *Port) FPRDw(adp, ado uint16, timeout time.Duration) uint16 {
	var w [2]byte
	p.FPRD(adp, ado, w[:], timeout)
	return binary.LittleEndian.Uint16(w[:])
}

// FPWR configured address write.
func (p *Port) FPWR(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdFPWR, adp, ado, data, false, timeout)
}

// FPWRw writes one word to a configured station address.
func (p *Port) FPWRw(adp, ado, data uint16, timeout time.Duration) int {
	var w [2]byte
	binary.LittleEndian.PutUint16(w[:], data)
	return p.FPWR(adp, ado, w[:], timeout)
}

// ARMW auto increment read, multiple write. The addressed slave is read;
// all following slaves write the value as it passes.
func (p *Port) ARMW(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdARMW, adp, ado, data, true, timeout)
}

// FRMW configured address read, multiple write.
func (p *Port) FRMW(adp, ado uint16, data []byte, timeout time.Duration) int {
	return p.roundtrip(CmdFRMW, adp, ado, data, true, timeout)
}

// logical runs the skeleton for the logically addressed primitives. The
// response payload is only copied back when the returned command matches
// the one sent: a logical transfer shares its slot with whatever else
// was chained into the frame, so the reply is verified before data is
// trusted.
func (p *Port) logical(com Command, logAdr uint32, data []byte, readBack bool, timeout time.Duration) int {
	idx := p.GetIndex()
	if err := p.SetupDatagram(idx, com, loWord(logAdr), hiWord(logAdr), len(data), data); err != nil {
		p.SetBufStat(idx, BufEmpty)
		return NoFrame
	}
	wkc := p.SrConfirm(idx, p.timeoutOr(timeout))
	if readBack && wkc > 0 && Command(p.rxbuf[idx][frame.CmdOffset]) == com {
		copy(data, p.rxbuf[idx][frame.HeaderSize:frame.HeaderSize+len(data)])
	}
	p.SetBufStat(idx, BufEmpty)
	return wkc
}

// LRD logical memory read.
func (p *Port) LRD(logAdr uint32, data []byte, timeout time.Duration) int {
	return p.logical(CmdLRD, logAdr, data, true, timeout)
}

// LWR logical memory write.
func (p *Port) LWR(logAdr uint32, data []byte, timeout time.Duration) int {
	return p.logical(CmdLWR, logAdr, data, false, timeout)
}

// LRW logical memory read/write. Slaves mapped for output read the
// payload, slaves mapped for input write it.
func (p *Port) LRW(logAdr uint32, data []byte, timeout time.Duration) int {
	return p.logical(CmdLRW, logAdr, data, true, timeout)
}

// LRWDC performs a logical read/write plus a distributed clock read in a
// single frame: an LRW datagram for process data chained with an FRMW of
// the reference slave's system time register. On success dcTime receives
// the reference clock, and the returned working counter is the LRW
// datagram's own, not the one SrConfirm reports for the frame's last
// (DC) datagram: callers compare it against the expected process data
// slave count.
func (p *Port) LRWDC(logAdr uint32, data []byte, dcrs uint16, dcTime *int64, timeout time.Duration) int {
	idx := p.GetIndex()
	length := len(data)

	if err := p.SetupDatagram(idx, CmdLRW, loWord(logAdr), hiWord(logAdr), length, data); err != nil {
		p.SetBufStat(idx, BufEmpty)
		return NoFrame
	}

	var dcte [8]byte
	binary.LittleEndian.PutUint64(dcte[:], uint64(*dcTime))
	dcto, err := p.AddDatagram(idx, CmdFRMW, false, dcrs, RegDCSysTime, len(dcte), dcte[:])
	if err != nil {
		p.SetBufStat(idx, BufEmpty)
		return NoFrame
	}

	wkc := p.SrConfirm(idx, p.timeoutOr(timeout))
	if wkc > 0 && Command(p.rxbuf[idx][frame.CmdOffset]) == CmdLRW {
		rx := p.rxbuf[idx][:]
		copy(data, rx[frame.HeaderSize:frame.HeaderSize+length])
		wkc = int(binary.LittleEndian.Uint16(rx[frame.HeaderSize+length:]))
		*dcTime = int64(binary.LittleEndian.Uint64(rx[dcto:]))
	}
	p.SetBufStat(idx, BufEmpty)
	return wkc
}
