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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WangJhone/go-nex/internal/frame"
)

func TestOpenRequiresLink(t *testing.T) {
	t.Parallel()

	_, err := Open(nil)
	require.ErrorIs(t, err, ErrNoLink)
}

func TestOpenPresetsEthernetHeaders(t *testing.T) {
	t.Parallel()

	port, _ := newTestPort(t, nil)

	for i := uint8(0); i < MaxBufCount; i++ {
		b := port.TxBuf(i)
		assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, b[0:6], "destination")
		assert.Equal(t, []byte{0x01, 0x01, 0x01, 0x01, 0x01, 0x01}, b[6:12], "source")
		assert.Equal(t, uint16(frame.EtherType), binary.BigEndian.Uint16(b[12:14]))
	}
}

func TestOpenWithSourceMAC(t *testing.T) {
	t.Parallel()

	mac := net.HardwareAddr{0x02, 0x00, 0x5e, 0x10, 0x20, 0x30}
	link := NewMockLink(nil)
	port, err := Open(link, WithSourceMAC(mac))
	require.NoError(t, err)
	defer port.Close()

	assert.Equal(t, []byte(mac), port.TxBuf(0)[6:12])
}

func TestOpenOptionValidation(t *testing.T) {
	t.Parallel()

	link := NewMockLink(nil)
	_, err := Open(link, WithSourceMAC(net.HardwareAddr{1, 2, 3}))
	require.Error(t, err)

	_, err = Open(link, WithDefaultTimeout(0))
	require.Error(t, err)
}

func TestGetIndexCycles(t *testing.T) {
	t.Parallel()

	port, _ := newTestPort(t, nil)

	seen := make(map[uint8]bool)
	for i := 0; i < MaxBufCount; i++ {
		idx := port.GetIndex()
		assert.False(t, seen[idx], "index %d handed out twice", idx)
		seen[idx] = true
		assert.Equal(t, BufAlloc, port.bufStat(idx))
	}
	assert.Len(t, seen, MaxBufCount)

	// releasing one slot makes exactly that one available again
	var victim uint8 = 5
	port.SetBufStat(victim, BufEmpty)
	assert.Equal(t, victim, port.GetIndex())
}

func TestSetBufStatReleases(t *testing.T) {
	t.Parallel()

	port, _ := newTestPort(t, nil)

	idx := port.GetIndex()
	assert.Equal(t, BufAlloc, port.bufStat(idx))
	port.SetBufStat(idx, BufEmpty)
	assert.Equal(t, BufEmpty, port.bufStat(idx))
}

// responseFor builds the frame a segment would return for the slot's
// current transmit buffer.
func responseFor(port *Port, idx uint8, wkc uint16) []byte {
	tx := port.TxBuf(idx)[:port.txbuflength[idx]]
	return EchoResponder(EchoConfig{Wkc: wkc})(tx)
}

func TestInFrameParksForeignResponses(t *testing.T) {
	t.Parallel()

	port, link := newTestPort(t, nil)

	idxA := port.GetIndex()
	idxB := port.GetIndex()
	require.NoError(t, port.SetupDatagram(idxA, CmdFPRD, 0x1001, 0, 2, nil))
	require.NoError(t, port.SetupDatagram(idxB, CmdFPRD, 0x1002, 0, 2, nil))

	// B is in flight; its response arrives before A's
	port.SetBufStat(idxB, BufTx)
	link.Inject(responseFor(port, idxB, 7))
	link.Inject(responseFor(port, idxA, 5))

	wkc := port.SrConfirm(idxA, testTimeout)
	assert.Equal(t, 5, wkc, "A claims its own response across B's")
	assert.Equal(t, BufRcvd, port.bufStat(idxB), "B's response parked")

	wkc = port.waitInFrame(idxB, time.Now().Add(testTimeout))
	assert.Equal(t, 7, wkc, "B consumes the parked response without touching the link")
	assert.Equal(t, BufComplete, port.bufStat(idxB))
}

func TestInFrameDropsUnsolicited(t *testing.T) {
	t.Parallel()

	port, link := newTestPort(t, nil)

	idx := port.GetIndex()
	require.NoError(t, port.SetupDatagram(idx, CmdBRD, 0, 0, 2, nil))

	// a frame for a slot nobody transmitted on
	foreign := responseFor(port, idx, 1)
	foreign[17] = idx + 1
	link.Inject(foreign)
	link.Inject(responseFor(port, idx, 3))

	wkc := port.SrConfirm(idx, testTimeout)
	assert.Equal(t, 3, wkc)
	assert.Equal(t, uint64(1), port.Stats().Dropped)
}

func TestInFrameIgnoresWrongEtherType(t *testing.T) {
	t.Parallel()

	port, link := newTestPort(t, nil)

	idx := port.GetIndex()
	require.NoError(t, port.SetupDatagram(idx, CmdBRD, 0, 0, 2, nil))

	alien := responseFor(port, idx, 1)
	binary.BigEndian.PutUint16(alien[12:14], 0x0800)
	link.Inject(alien)
	link.Inject(responseFor(port, idx, 2))

	wkc := port.SrConfirm(idx, testTimeout)
	assert.Equal(t, 2, wkc)
}

func TestReceiveSourceBookkeeping(t *testing.T) {
	t.Parallel()

	port, link := newTestPort(t, nil)

	idx := port.GetIndex()
	require.NoError(t, port.SetupDatagram(idx, CmdBRD, 0, 0, 2, nil))

	rx := responseFor(port, idx, 1)
	copy(rx[6:12], []byte{0x02, 0xaa, 0xbb, 0xcc, 0xdd, 0xee})
	link.Inject(rx)

	require.Equal(t, 1, port.SrConfirm(idx, testTimeout))
	assert.Equal(t, net.HardwareAddr{0x02, 0xaa, 0xbb, 0xcc, 0xdd, 0xee},
		port.ReceiveSource(idx))
}

func TestConcurrentPrimitives(t *testing.T) {
	t.Parallel()

	port, _ := newTestPort(t, EchoResponder(EchoConfig{
		Wkc: 1,
		Payload: func(com Command, ado uint16, data []byte) {
			if com.isRead() {
				binary.LittleEndian.PutUint16(data, ado)
			}
		},
	}))

	const workers = 8
	const iterations = 16

	var wg sync.WaitGroup
	wg.Add(workers)
	errs := make(chan string, workers*iterations)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				ado := uint16(w<<8 | i)
				var out [2]byte
				wkc := port.FPRD(0x1000+uint16(w), ado, out[:], testTimeout)
				if wkc != 1 {
					errs <- "bad wkc"
					continue
				}
				if binary.LittleEndian.Uint16(out[:]) != ado {
					errs <- "payload crossed transactions"
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}

	for i := range port.bufstat {
		assert.Equal(t, BufEmpty, port.bufstat[i], "slot %d", i)
	}
}

func TestStatsCounters(t *testing.T) {
	t.Parallel()

	port, _ := newTestPort(t, EchoResponder(EchoConfig{Wkc: 1}))

	var out [2]byte
	require.Equal(t, 1, port.BRD(0, 0, out[:], testTimeout))

	s := port.Stats()
	assert.Equal(t, uint64(1), s.FramesSent)
	assert.Equal(t, uint64(1), s.FramesReceived)
	assert.Zero(t, s.Timeouts)

	port2, _ := newTestPort(t, nil)
	require.Equal(t, NoFrame, port2.BRD(0, 0, out[:], 5*time.Millisecond))
	assert.Equal(t, uint64(1), port2.Stats().Timeouts)
	assert.NotEmpty(t, port2.Stats().String())
}

func TestSrConfirmRetransmits(t *testing.T) {
	t.Parallel()

	// the segment stays silent on the first transmit; the window expiry
	// must retransmit within the overall timeout
	calls := 0
	link := NewMockLink(nil)
	link.ResponseFunc = func(tx []byte) []byte {
		calls++
		if calls < 2 {
			return nil
		}
		return EchoResponder(EchoConfig{Wkc: 1})(tx)
	}
	port, err := Open(link)
	require.NoError(t, err)
	defer port.Close()

	idx := port.GetIndex()
	require.NoError(t, port.SetupDatagram(idx, CmdBRD, 0, 0, 2, nil))

	wkc := port.SrConfirm(idx, testTimeout)
	assert.Equal(t, 1, wkc)
	assert.GreaterOrEqual(t, len(link.Sent()), 2)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	link := NewMockLink(nil)
	port, err := Open(link)
	require.NoError(t, err)

	require.NoError(t, port.Close())
	require.NoError(t, port.Close())
}
