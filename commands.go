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
	"fmt"
	"time"
)

// Command is an EtherCAT datagram command code.
type Command uint8

// Datagram command codes per the EtherCAT specification.
const (
	CmdNOP  Command = 0  // no operation
	CmdAPRD Command = 1  // auto increment read
	CmdAPWR Command = 2  // auto increment write
	CmdAPRW Command = 3  // auto increment read/write
	CmdFPRD Command = 4  // configured address read
	CmdFPWR Command = 5  // configured address write
	CmdFPRW Command = 6  // configured address read/write
	CmdBRD  Command = 7  // broadcast read
	CmdBWR  Command = 8  // broadcast write
	CmdBRW  Command = 9  // broadcast read/write
	CmdLRD  Command = 10 // logical memory read
	CmdLWR  Command = 11 // logical memory write
	CmdLRW  Command = 12 // logical memory read/write
	CmdARMW Command = 13 // auto increment read, multiple write
	CmdFRMW Command = 14 // configured address read, multiple write
)

var commandName = map[Command]string{
	CmdNOP:  "NOP",
	CmdAPRD: "APRD",
	CmdAPWR: "APWR",
	CmdAPRW: "APRW",
	CmdFPRD: "FPRD",
	CmdFPWR: "FPWR",
	CmdFPRW: "FPRW",
	CmdBRD:  "BRD",
	CmdBWR:  "BWR",
	CmdBRW:  "BRW",
	CmdLRD:  "LRD",
	CmdLWR:  "LWR",
	CmdLRW:  "LRW",
	CmdARMW: "ARMW",
	CmdFRMW: "FRMW",
}

func (c Command) String() string {
	if s, ok := commandName[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// isRead reports whether the command carries no master data: the payload
// is zero-filled on transmit and filled in by slaves on the wire pass.
func (c Command) isRead() bool {
	switch c {
	case CmdNOP, CmdAPRD, CmdFPRD, CmdBRD, CmdLRD:
		return true
	default:
		return false
	}
}

// Slave register addresses used by this layer.
const (
	// RegDCSysTime is the distributed clock system time register read
	// by the compound LRWDC primitive.
	RegDCSysTime = 0x0910
)

// NoFrame is returned by the blocking primitives when no matching frame
// arrived within the timeout. All other return values are working
// counters and therefore non-negative.
const NoFrame = -1

// TimeoutRet is the recommended timeout for single register transfers.
const TimeoutRet = 2000 * time.Microsecond
