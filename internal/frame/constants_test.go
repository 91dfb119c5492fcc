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

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBudget(t *testing.T) {
	t.Parallel()

	// a max-size single datagram still fits a standard 1500 byte
	// Ethernet payload and the port buffers
	used := ElengthSize + SubHeaderSize + MaxDataLength + WkcSize
	assert.Equal(t, 1500, used)
	assert.LessOrEqual(t, EthHeaderSize+used, MaxFrameSize)
}

func TestHeaderComposition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ElengthSize+SubHeaderSize, HeaderSize)
	assert.Equal(t, 10, SubHeaderSize)
	assert.Equal(t, uint16(0x8000), DatagramFollows)
	assert.Zero(t, EcatType&int(DlengthMask), "type nibble clear of the length bits")
}
