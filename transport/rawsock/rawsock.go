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

//go:build linux

// Package rawsock provides the AF_PACKET link layer for a nex.Port: an
// EtherCAT master talking straight Ethernet frames through one network
// interface.
package rawsock

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"

	nex "github.com/WangJhone/go-nex"
	"github.com/WangJhone/go-nex/internal/frame"
)

// Link is an AF_PACKET socket bound to a single interface, receiving
// only frames with the EtherCAT EtherType. The interface is put into
// promiscuous mode for the lifetime of the link: returned frames carry
// the source address of the last slave port, not ours.
type Link struct {
	name   string
	hwaddr net.HardwareAddr
	fd     int
}

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}

// New opens a raw socket on the named interface.
func New(ifname string) (*Link, error) {
	ifi, err := net.InterfaceByName(ifname)
	if err != nil {
		return nil, fmt.Errorf("lookup interface %s: %w", ifname, err)
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(frame.EtherType)))
	if err != nil {
		return nil, fmt.Errorf("open packet socket: %w", err)
	}

	sll := &unix.SockaddrLinklayer{
		Protocol: htons(frame.EtherType),
		Ifindex:  ifi.Index,
	}
	if err := unix.Bind(fd, sll); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("bind to %s: %w", ifname, err)
	}

	mreq := &unix.PacketMreq{
		Ifindex: int32(ifi.Index),
		Type:    unix.PACKET_MR_PROMISC,
	}
	if err := unix.SetsockoptPacketMreq(fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, mreq); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("enable promiscuous mode on %s: %w", ifname, err)
	}

	// frames go out the bound interface, never through a route
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DONTROUTE, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("set SO_DONTROUTE: %w", err)
	}

	hw := make(net.HardwareAddr, len(ifi.HardwareAddr))
	copy(hw, ifi.HardwareAddr)

	return &Link{fd: fd, name: ifname, hwaddr: hw}, nil
}

// Send transmits one Ethernet frame.
func (l *Link) Send(buf []byte) error {
	for {
		_, err := unix.Write(l.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("send on %s: %w", l.name, err)
		}
		return nil
	}
}

// Receive reads one frame, waiting at most until deadline. The kernel
// receive timeout is re-armed on every call with the remaining time.
func (l *Link) Receive(buf []byte, deadline time.Time) (int, error) {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, nex.ErrReceiveTimeout
		}

		tv := unix.NsecToTimeval(remaining.Nanoseconds())
		if err := unix.SetsockoptTimeval(l.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			return 0, fmt.Errorf("arm receive timeout on %s: %w", l.name, err)
		}

		n, _, err := unix.Recvfrom(l.fd, buf, 0)
		switch err {
		case nil:
			return n, nil
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return 0, nex.ErrReceiveTimeout
		default:
			return 0, fmt.Errorf("receive on %s: %w", l.name, err)
		}
	}
}

// HardwareAddr returns the MAC address of the bound interface.
func (l *Link) HardwareAddr() net.HardwareAddr {
	return l.hwaddr
}

// Close shuts the socket down.
func (l *Link) Close() error {
	if err := unix.Close(l.fd); err != nil {
		return fmt.Errorf("close %s: %w", l.name, err)
	}
	return nil
}

// Type returns nex.LinkRawSocket.
func (*Link) Type() nex.LinkType { return nex.LinkRawSocket }
