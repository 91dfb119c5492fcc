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
	"net"
	"time"
)

// PortConfig contains configuration for a Port.
type PortConfig struct {
	// sourceMAC overrides the source address preset into the transmit
	// buffers. Defaults to the link's hardware address, or the
	// conventional master address when the link has none.
	sourceMAC net.HardwareAddr

	// defaultTimeout is used by primitives invoked with timeout zero.
	defaultTimeout time.Duration
}

func defaultPortConfig() *PortConfig {
	return &PortConfig{
		defaultTimeout: TimeoutRet,
	}
}

// Option is a functional option for configuring a Port.
type Option func(*Port) error

// WithSourceMAC sets the source address written into the Ethernet
// header of every transmit buffer.
func WithSourceMAC(addr net.HardwareAddr) Option {
	return func(p *Port) error {
		if len(addr) != 6 {
			return fmt.Errorf("source MAC must be 6 bytes, got %d", len(addr))
		}
		p.config.sourceMAC = addr
		return nil
	}
}

// WithDefaultTimeout sets the timeout substituted when a primitive is
// called with timeout zero.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(p *Port) error {
		if timeout <= 0 {
			return fmt.Errorf("default timeout must be positive, got %v", timeout)
		}
		p.config.defaultTimeout = timeout
		return nil
	}
}
