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

// nexcat is a small field tool over the go-nex datagram layer: count
// the slaves in a segment, peek and poke slave registers, read the
// reference clock.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	nex "github.com/WangJhone/go-nex"
	"github.com/WangJhone/go-nex/detection"
	"github.com/WangJhone/go-nex/transport/rawsock"
	"github.com/WangJhone/go-nex/transport/udp"
)

var (
	flagIface   string
	flagUDP     string
	flagTimeout time.Duration
	flagDebug   bool
)

var errNoResponse = errors.New("no response from segment")

var rootCmd = &cobra.Command{
	Use:           "nexcat",
	Short:         "EtherCAT segment probe over the go-nex datagram layer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		nex.SetDebugEnabled(flagDebug)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagIface, "iface", "i", "", "network interface to open a raw socket on")
	pf.StringVar(&flagUDP, "udp", "", "remote address for EtherCAT over UDP instead of a raw socket")
	pf.DurationVarP(&flagTimeout, "timeout", "t", 20*time.Millisecond, "per-frame timeout")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug output")

	rootCmd.AddCommand(scanCmd, readCmd, writeCmd, dctimeCmd, ifacesCmd)
}

var ifacesCmd = &cobra.Command{
	Use:   "ifaces",
	Short: "List network interfaces usable as EtherCAT master ports",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		devices, err := detection.Interfaces()
		if err != nil {
			return err
		}
		for _, d := range devices {
			state := color.RedString("down")
			if d.Up {
				state = color.GreenString("up")
			}
			fmt.Printf("%-12s %s mtu %d %s\n", d.Name, d.MAC, d.MTU, state)
		}
		return nil
	},
}

func openPort() (*nex.Port, error) {
	var (
		link nex.Link
		err  error
	)
	switch {
	case flagUDP != "":
		link, err = udp.New(flagUDP)
	case flagIface != "":
		link, err = rawsock.New(flagIface)
	default:
		var dev detection.DeviceInfo
		dev, err = detection.FirstUp()
		if err != nil {
			return nil, err
		}
		color.Cyan("using %s (%s)", dev.Name, dev.MAC)
		link, err = rawsock.New(dev.Name)
	}
	if err != nil {
		return nil, err
	}
	return nex.Open(link)
}

var readCmd = &cobra.Command{
	Use:   "read <station> <offset> <length>",
	Short: "Read a register region from one slave (configured address)",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		station, err := parseUint16(args[0])
		if err != nil {
			return err
		}
		offset, err := parseUint16(args[1])
		if err != nil {
			return err
		}
		length, err := strconv.Atoi(args[2])
		if err != nil || length <= 0 {
			return fmt.Errorf("bad length %q", args[2])
		}

		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		data := make([]byte, length)
		wkc := port.FPRD(station, offset, data, flagTimeout)
		if wkc == nex.NoFrame {
			return errNoResponse
		}
		fmt.Printf("wkc %d\n%s", wkc, hex.Dump(data))
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <station> <offset> <hexbytes>",
	Short: "Write bytes to one slave register region (configured address)",
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 3 {
			return errors.New("expected <station> <offset> <hexbytes>")
		}
		station, err := parseUint16(args[0])
		if err != nil {
			return err
		}
		offset, err := parseUint16(args[1])
		if err != nil {
			return err
		}
		data, err := hex.DecodeString(args[2])
		if err != nil {
			return fmt.Errorf("bad hex data: %w", err)
		}

		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		wkc := port.FPWR(station, offset, data, flagTimeout)
		if wkc == nex.NoFrame {
			return errNoResponse
		}
		color.Green("wrote %d bytes, wkc %d", len(data), wkc)
		return nil
	},
}

var dctimeCmd = &cobra.Command{
	Use:   "dctime <station>",
	Short: "Read the distributed clock system time of the reference slave",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		station, err := parseUint16(args[0])
		if err != nil {
			return err
		}

		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		var raw [8]byte
		wkc := port.FPRD(station, nex.RegDCSysTime, raw[:], flagTimeout)
		if wkc == nex.NoFrame {
			return errNoResponse
		}
		ns := int64(binary.LittleEndian.Uint64(raw[:]))
		fmt.Printf("dc system time: %d ns (%v)\n", ns, time.Duration(ns))
		return nil
	},
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad 16-bit value %q", s)
	}
	return uint16(v), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}
