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
	"net"
	"sync"
	"time"

	"github.com/WangJhone/go-nex/internal/frame"
)

// BufState is the lifecycle state of one transaction slot.
type BufState uint8

// Slot states. A slot moves EMPTY -> ALLOC on GetIndex, ALLOC -> TX on
// transmit, TX -> RCVD when its response is parked by another waiter,
// RCVD/TX -> COMPLETE when its owner consumes the response, and back to
// EMPTY on SetBufStat.
const (
	BufEmpty BufState = iota
	BufAlloc
	BufTx
	BufRcvd
	BufComplete
)

// MaxBufCount is the number of transaction slots per port. The datagram
// index field is 8 bits wide but in-flight transactions are bounded by
// the slot pool, not the index space.
const MaxBufCount = 16

// defaultMAC is the conventional master source address used when the
// link does not expose a hardware address of its own.
var defaultMAC = net.HardwareAddr{0x01, 0x01, 0x01, 0x01, 0x01, 0x01}

// broadcastMAC is the destination of every master frame. Slaves process
// frames on the fly; there is no point-to-point addressing at layer 2.
var broadcastMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// Port is the context of one EtherCAT master port: a pool of transaction
// slots, each coupling a transmit buffer, a receive buffer and a datagram
// index, on top of a single frame link.
//
// All exported methods are safe for concurrent use. Two concurrent
// primitives hold two different slots; the receive path demultiplexes
// returned frames by the index byte and parks frames belonging to other
// in-flight slots.
type Port struct {
	link Link

	// mu serializes slot state and index allocation.
	mu      sync.Mutex
	lastIdx uint8
	bufstat [MaxBufCount]BufState

	// sendMu serializes transmits, rxMu the shared receive path.
	sendMu sync.Mutex
	rxMu   sync.Mutex

	txbuf       [MaxBufCount][frame.MaxFrameSize]byte
	txbuflength [MaxBufCount]int
	rxbuf       [MaxBufCount][frame.MaxFrameSize]byte
	rxsa        [MaxBufCount][6]byte

	tempbuf [frame.MaxFrameSize]byte

	stats  Stats
	config *PortConfig

	closed bool
}

// Open creates a Port on top of the given link and presets the Ethernet
// headers of all transmit buffers. The headers are never rewritten
// afterwards; the datagram layer only touches bytes 14 and up.
func Open(link Link, opts ...Option) (*Port, error) {
	if link == nil {
		return nil, ErrNoLink
	}

	p := &Port{
		link:   link,
		config: defaultPortConfig(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	src := p.config.sourceMAC
	if src == nil {
		if ha, ok := link.(HardwareAddresser); ok {
			src = ha.HardwareAddr()
		}
	}
	if len(src) != 6 {
		src = defaultMAC
	}

	for i := range p.txbuf {
		b := p.txbuf[i][:]
		copy(b[0:6], broadcastMAC)
		copy(b[6:12], src)
		binary.BigEndian.PutUint16(b[12:14], frame.EtherType)
	}

	debugf("port open on %s link", link.Type())
	return p, nil
}

// Close releases the port and closes the underlying link.
func (p *Port) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	debugf("port close")
	if err := p.link.Close(); err != nil {
		return NewTransportError("close", p.link.Type(), err)
	}
	return nil
}

// GetIndex claims a free transaction slot and returns its index. The
// search starts one past the previously handed out slot so responses
// still in flight are not overwritten prematurely. The slot is returned
// in ALLOC state; SetBufStat(idx, BufEmpty) releases it.
func (p *Port) GetIndex() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.lastIdx + 1
	if idx >= MaxBufCount {
		idx = 0
	}
	for cnt := 0; p.bufstat[idx] != BufEmpty && cnt < MaxBufCount; cnt++ {
		idx++
		if idx >= MaxBufCount {
			idx = 0
		}
	}
	p.bufstat[idx] = BufAlloc
	p.lastIdx = idx
	return idx
}

// SetBufStat sets the state of slot idx, releasing it when the state is
// BufEmpty.
func (p *Port) SetBufStat(idx uint8, state BufState) {
	p.mu.Lock()
	p.bufstat[idx] = state
	p.mu.Unlock()
}

func (p *Port) bufStat(idx uint8) BufState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bufstat[idx]
}

// TxBuf exposes the transmit buffer of slot idx so higher layers can
// compose their own frames with SetupDatagram and AddDatagram before
// calling SrConfirm.
func (p *Port) TxBuf(idx uint8) []byte {
	return p.txbuf[idx][:]
}

// RxBuf exposes the receive buffer of slot idx. It holds the returned
// frame with the Ethernet header stripped: the EtherCAT header word at
// offset 0, the first datagram sub-header at offset 2.
func (p *Port) RxBuf(idx uint8) []byte {
	return p.rxbuf[idx][:]
}

// ReceiveSource returns the source MAC of the last frame received into
// slot idx.
func (p *Port) ReceiveSource(idx uint8) net.HardwareAddr {
	sa := make(net.HardwareAddr, 6)
	copy(sa, p.rxsa[idx][:])
	return sa
}

// outFrame transmits the frame in slot idx and marks the slot TX.
func (p *Port) outFrame(idx uint8) error {
	p.SetBufStat(idx, BufTx)

	p.sendMu.Lock()
	err := p.link.Send(p.txbuf[idx][:p.txbuflength[idx]])
	p.sendMu.Unlock()
	if err != nil {
		return NewTransportError("send", p.link.Type(), err)
	}
	p.stats.framesSent.Inc()
	return nil
}

// inFrame makes one attempt to obtain the response for slot idx. It
// first consumes a parked response, otherwise it pulls one frame off the
// link: a frame for idx carrying the command sent is claimed directly, a
// frame for any slot in TX state (idx itself included, when the command
// byte differs) is parked into that slot's receive buffer, anything else
// is dropped. Returns the working counter of the last datagram in the
// frame, or NoFrame.
func (p *Port) inFrame(idx uint8, deadline time.Time) int {
	rxbuf := p.rxbuf[idx][:]

	// response may have been parked by another waiter
	if p.bufStat(idx) == BufRcvd {
		p.SetBufStat(idx, BufComplete)
		return wkcOf(rxbuf)
	}

	p.rxMu.Lock()
	defer p.rxMu.Unlock()

	n, err := p.link.Receive(p.tempbuf[:], deadline)
	if err != nil || n < frame.EthHeaderSize+frame.HeaderSize+frame.WkcSize {
		return NoFrame
	}
	p.stats.framesReceived.Inc()

	buf := p.tempbuf[:n]
	if binary.BigEndian.Uint16(buf[12:14]) != frame.EtherType {
		p.stats.dropped.Inc()
		return NoFrame
	}

	elength := binary.LittleEndian.Uint16(buf[frame.EthHeaderSize:]) & frame.ElengthMask
	if int(elength)+frame.EthHeaderSize+frame.ElengthSize > n {
		p.stats.dropped.Inc()
		return NoFrame
	}
	idxf := buf[frame.EthHeaderSize+frame.ElengthSize+frame.OffIndex]

	if idxf == idx &&
		buf[frame.EthHeaderSize+frame.ElengthSize] == p.txbuf[idx][frame.EthHeaderSize+frame.ElengthSize] {
		// response for the requesting slot, strip the Ethernet header
		copy(rxbuf, buf[frame.EthHeaderSize:])
		copy(p.rxsa[idx][:], buf[6:12])
		p.SetBufStat(idx, BufComplete)
		return wkcOf(rxbuf)
	}

	if int(idxf) < MaxBufCount && p.bufStat(idxf) == BufTx {
		// response for another in-flight slot, park it there
		copy(p.rxbuf[idxf][:], buf[frame.EthHeaderSize:])
		copy(p.rxsa[idxf][:], buf[6:12])
		p.SetBufStat(idxf, BufRcvd)
		return NoFrame
	}

	p.stats.dropped.Inc()
	return NoFrame
}

// waitInFrame polls for the response of slot idx until deadline.
func (p *Port) waitInFrame(idx uint8, deadline time.Time) int {
	for {
		wkc := p.inFrame(idx, deadline)
		if wkc != NoFrame {
			return wkc
		}
		if !time.Now().Before(deadline) {
			return NoFrame
		}
	}
}

// SrConfirm transmits the frame in slot idx and blocks until the
// matching response arrives or timeout expires. The frame is
// retransmitted once per receive window of TimeoutRet when the overall
// timeout allows more than one round. Returns the working counter of the
// last datagram, or NoFrame.
func (p *Port) SrConfirm(idx uint8, timeout time.Duration) int {
	wkc := NoFrame
	deadline := time.Now().Add(timeout)

	for {
		window := timeout
		if window > TimeoutRet {
			window = TimeoutRet
		}
		if err := p.outFrame(idx); err == nil {
			wkc = p.waitInFrame(idx, time.Now().Add(window))
		}
		if wkc != NoFrame || !time.Now().Before(deadline) {
			break
		}
	}

	if wkc == NoFrame {
		p.stats.timeouts.Inc()
		p.SetBufStat(idx, BufEmpty)
	}
	return wkc
}

// wkcOf extracts the working counter of the last datagram from a receive
// buffer: the two bytes directly after the datagram area announced by
// the EtherCAT header word.
func wkcOf(rxbuf []byte) int {
	l := binary.LittleEndian.Uint16(rxbuf) & frame.ElengthMask
	return int(binary.LittleEndian.Uint16(rxbuf[l:]))
}
