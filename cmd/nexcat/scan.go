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

package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	nex "github.com/WangJhone/go-nex"
)

// ESC registers probed during a scan.
const (
	regType          = 0x0000
	regBuild         = 0x0002
	regConfigStation = 0x0010
)

type slaveInfo struct {
	position int
	escType  uint16
	build    uint16
	station  uint16
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Count the slaves in the segment and probe their ESC registers",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		var probe [2]byte
		wkc := port.BRD(0, regType, probe[:], flagTimeout)
		if wkc == nex.NoFrame {
			return errNoResponse
		}
		if wkc == 0 {
			color.Yellow("segment answered, no slaves present")
			return nil
		}
		color.Cyan("%d slaves", wkc)

		// independent datagrams, one transaction slot each
		var (
			mu     sync.Mutex
			slaves []slaveInfo
			g      errgroup.Group
		)
		for i := 1; i <= wkc; i++ {
			position := i
			g.Go(func() error {
				adp := uint16(1 - position)
				info := slaveInfo{
					position: position,
					escType:  port.APRDw(adp, regType, flagTimeout),
					build:    port.APRDw(adp, regBuild, flagTimeout),
					station:  port.APRDw(adp, regConfigStation, flagTimeout),
				}
				mu.Lock()
				slaves = append(slaves, info)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		sort.Slice(slaves, func(a, b int) bool {
			return slaves[a].position < slaves[b].position
		})
		for _, s := range slaves {
			fmt.Printf("slave %3d: type %#04x build %#04x station %#06x\n",
				s.position, s.escType, s.build, s.station)
		}
		fmt.Println(port.Stats())
		return nil
	},
}
