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
	"sync"
	"time"

	"github.com/WangJhone/go-nex/internal/frame"
)

// MockLink is an in-process Link for tests. Frames passed to Send are
// recorded and handed to ResponseFunc; whatever it returns is queued for
// Receive. Responses can also be injected directly to exercise
// out-of-order and unsolicited frame handling.
type MockLink struct {
	// ResponseFunc maps a transmitted frame to the response the segment
	// would return. A nil ResponseFunc or a nil return queues nothing,
	// which makes Receive run into its deadline.
	ResponseFunc func(tx []byte) []byte

	mu     sync.Mutex
	sent   [][]byte
	queue  chan []byte
	closed bool
}

// NewMockLink creates a MockLink with the given responder.
func NewMockLink(respond func(tx []byte) []byte) *MockLink {
	return &MockLink{
		ResponseFunc: respond,
		queue:        make(chan []byte, MaxBufCount*2),
	}
}

// Send records the frame and queues the responder's answer.
func (m *MockLink) Send(buf []byte) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrLinkClosed
	}
	tx := append([]byte(nil), buf...)
	m.sent = append(m.sent, tx)
	respond := m.ResponseFunc
	m.mu.Unlock()

	if respond != nil {
		if rx := respond(tx); rx != nil {
			m.queue <- rx
		}
	}
	return nil
}

// Receive returns the next queued frame, or ErrReceiveTimeout once the
// deadline passes.
func (m *MockLink) Receive(buf []byte, deadline time.Time) (int, error) {
	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}
	select {
	case rx, ok := <-m.queue:
		if !ok {
			return 0, ErrLinkClosed
		}
		if len(rx) > len(buf) {
			return 0, ErrFrameTooLarge
		}
		return copy(buf, rx), nil
	case <-time.After(wait):
		return 0, ErrReceiveTimeout
	}
}

// Inject queues a frame for Receive without a preceding Send.
func (m *MockLink) Inject(rx []byte) {
	m.queue <- append([]byte(nil), rx...)
}

// Sent returns copies of all frames transmitted so far.
func (m *MockLink) Sent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.sent))
	copy(out, m.sent)
	return out
}

// Close marks the link closed.
func (m *MockLink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	return nil
}

// Type returns LinkMock.
func (*MockLink) Type() LinkType { return LinkMock }

// EchoConfig shapes the responses produced by EchoResponder.
type EchoConfig struct {
	// Wkc is the working counter written into every datagram.
	Wkc uint16
	// Payload, when non-nil, is called for each datagram in the frame
	// and may overwrite the payload region in place, as slaves do for
	// read commands.
	Payload func(com Command, ado uint16, data []byte)
}

// EchoResponder simulates a slave segment: the transmitted frame comes
// back with every datagram's working counter set and read payloads
// filled in by the configured hook.
func EchoResponder(cfg EchoConfig) func(tx []byte) []byte {
	return func(tx []byte) []byte {
		rx := append([]byte(nil), tx...)
		pos := frame.EthHeaderSize + frame.ElengthSize
		for {
			d := rx[pos:]
			com := Command(d[frame.OffCommand])
			ado := binary.LittleEndian.Uint16(d[frame.OffADO:])
			dlen := binary.LittleEndian.Uint16(d[frame.OffDlength:])
			length := int(dlen & frame.DlengthMask)

			if cfg.Payload != nil {
				cfg.Payload(com, ado, d[frame.SubHeaderSize:frame.SubHeaderSize+length])
			}
			binary.LittleEndian.PutUint16(d[frame.SubHeaderSize+length:], cfg.Wkc)

			if dlen&frame.DatagramFollows == 0 {
				break
			}
			pos += frame.SubHeaderSize + length + frame.WkcSize
		}
		return rx
	}
}
