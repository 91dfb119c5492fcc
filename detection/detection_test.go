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

package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVirtual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"lo", true},
		{"docker0", true},
		{"veth12ab", true},
		{"br-e1f2", true},
		{"virbr0", true},
		{"eth0", false},
		{"enp3s0", false},
		{"eno1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isVirtual(tt.name), tt.name)
	}
}

func TestInterfacesFiltersVirtual(t *testing.T) {
	t.Parallel()

	devices, err := Interfaces()
	require.NoError(t, err)
	for _, d := range devices {
		assert.False(t, isVirtual(d.Name))
		assert.Len(t, d.MAC, 6)
	}
}
