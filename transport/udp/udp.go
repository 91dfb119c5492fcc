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

// Package udp carries EtherCAT segments over UDP, for wired test setups
// and simulators where a raw socket is unavailable. The UDP payload is
// the EtherCAT frame without its Ethernet header; the link synthesizes
// one on receive so the port sees the same shape on every link type.
package udp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	nex "github.com/WangJhone/go-nex"
	"github.com/WangJhone/go-nex/internal/frame"
)

// Port is the UDP port assigned to EtherCAT, numerically equal to the
// EtherType.
const Port = frame.EtherType

// Link sends EtherCAT segments to a fixed remote address from an
// ephemeral local socket.
type Link struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
}

// New opens a link towards remote, a host or host:port string. The
// EtherCAT port is assumed when none is given.
func New(remote string) (*Link, error) {
	host, portStr, err := net.SplitHostPort(remote)
	if err != nil {
		host, portStr = remote, strconv.Itoa(Port)
	}
	raddr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(host, portStr))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", remote, err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, fmt.Errorf("open udp socket: %w", err)
	}

	return &Link{conn: conn, remote: raddr}, nil
}

// LocalAddr returns the local socket address, useful for pointing a
// simulated segment back at this link.
func (l *Link) LocalAddr() *net.UDPAddr {
	addr, _ := l.conn.LocalAddr().(*net.UDPAddr)
	return addr
}

// Send strips the Ethernet header and transmits the EtherCAT segment.
func (l *Link) Send(buf []byte) error {
	if len(buf) < frame.EthHeaderSize {
		return fmt.Errorf("frame of %d bytes is shorter than the Ethernet header", len(buf))
	}
	if _, err := l.conn.WriteToUDP(buf[frame.EthHeaderSize:], l.remote); err != nil {
		return fmt.Errorf("send to %v: %w", l.remote, err)
	}
	return nil
}

// Receive reads one segment and rebuilds an Ethernet header in front of
// it so the port's demultiplexer sees an ordinary frame.
func (l *Link) Receive(buf []byte, deadline time.Time) (int, error) {
	if err := l.conn.SetReadDeadline(deadline); err != nil {
		return 0, fmt.Errorf("arm read deadline: %w", err)
	}

	if len(buf) <= frame.EthHeaderSize {
		return 0, nex.ErrFrameTooLarge
	}
	n, _, err := l.conn.ReadFromUDP(buf[frame.EthHeaderSize:])
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return 0, nex.ErrReceiveTimeout
		}
		return 0, fmt.Errorf("receive: %w", err)
	}

	for i := 0; i < 12; i++ {
		buf[i] = 0
	}
	binary.BigEndian.PutUint16(buf[12:frame.EthHeaderSize], frame.EtherType)

	return frame.EthHeaderSize + n, nil
}

// Close shuts the socket down.
func (l *Link) Close() error {
	if err := l.conn.Close(); err != nil {
		return fmt.Errorf("close udp socket: %w", err)
	}
	return nil
}

// Type returns nex.LinkUDP.
func (*Link) Type() nex.LinkType { return nex.LinkUDP }
