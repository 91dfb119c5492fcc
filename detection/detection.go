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

// Package detection enumerates network interfaces suitable for opening
// an EtherCAT master port on.
package detection

import (
	"errors"
	"net"
	"strings"
)

// ErrNoInterface is returned when no candidate interface is found.
var ErrNoInterface = errors.New("no suitable network interface found")

// DeviceInfo describes one candidate interface.
type DeviceInfo struct {
	Name string
	MAC  net.HardwareAddr
	MTU  int
	Up   bool
}

// virtualPrefixes filters interface names that never lead to a physical
// segment.
var virtualPrefixes = []string{
	"lo", "docker", "veth", "br-", "virbr", "tap", "tun", "bond", "dummy",
}

func isVirtual(name string) bool {
	for _, p := range virtualPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Interfaces lists the physical Ethernet interfaces of this host,
// candidates for an EtherCAT segment.
func Interfaces() ([]DeviceInfo, error) {
	all, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []DeviceInfo
	for _, ifi := range all {
		if ifi.Flags&net.FlagLoopback != 0 || isVirtual(ifi.Name) {
			continue
		}
		if len(ifi.HardwareAddr) != 6 {
			continue
		}
		out = append(out, DeviceInfo{
			Name: ifi.Name,
			MAC:  ifi.HardwareAddr,
			MTU:  ifi.MTU,
			Up:   ifi.Flags&net.FlagUp != 0,
		})
	}
	return out, nil
}

// FirstUp returns the first candidate interface that is up.
func FirstUp() (DeviceInfo, error) {
	devices, err := Interfaces()
	if err != nil {
		return DeviceInfo{}, err
	}
	for _, d := range devices {
		if d.Up {
			return d, nil
		}
	}
	return DeviceInfo{}, ErrNoInterface
}
