// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/biogo/hts/sam"
	"github.com/spf13/cobra"

	"github.com/biogo/mdz/config"
	"github.com/biogo/mdz/internal/batch"
	mdsam "github.com/biogo/mdz/sam"
)

var windowColumns = []string{"name", "ref", "pos", "offset", "length", "cigar", "md"}

var windowCmd = &cobra.Command{
	Use:   "window <input>",
	Short: "Report a window of each record's MD tag",
	Long: `window writes the part of each record's MD tag and CIGAR that falls in
a window of reference positions.

The window is given either as a one-based offset and a length in MD tag
coordinates, where a length of zero extends the window to the end of
each tag, or as a genomic region that is translated into the
coordinates of each record. Records on other references or outside the
region are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], windowColumns, window)
	},
}

func init() {
	f := windowCmd.Flags()
	f.Int("offset", 1, "one-based offset of the window within each MD tag")
	f.Int("length", 0, "number of reference positions in the window, 0 for the rest of the tag")
	f.String("region", "", "genomic region of the window, ref[:start-end]")
	for _, name := range []string{"offset", "length", "region"} {
		if err := v.BindPFlag("window."+name, f.Lookup(name)); err != nil {
			log.Fatalf("failed to bind flag %q: %v", name, err)
		}
	}
}

func window(conf *config.Config) batch.Func {
	return func(r *mdsam.Record) (string, bool, error) {
		if skip(conf, r) {
			return "", false, nil
		}
		md, ok, err := mdFor(conf, r)
		if !ok {
			return "", false, err
		}
		var offset, length int
		if conf.Region != nil {
			offset, length, ok = regionWindow(r, *conf.Region, md.RefLen())
			if !ok {
				return "", false, nil
			}
		} else {
			offset, length = conf.Window.Offset, conf.Window.Length
			if length == 0 {
				length = max(md.RefLen()-max(offset-1, 0), 0)
			}
		}
		sub, err := md.Subregion(offset, length)
		if err != nil {
			return "", false, err
		}
		start := offset - 1
		return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%v\t%s",
			r.Name, r.Ref, r.Pos+1, offset, length, windowCigar(r, start, windowEnd(start, length, md.RefLen())), sub,
		), true, nil
	}
}

// regionWindow returns the one-based MD tag offset and the length of
// the part of reg covered by r, given the reference length of its MD
// tag. It returns false if r does not overlap reg.
func regionWindow(r *mdsam.Record, reg config.Region, mdLen int) (offset, length int, ok bool) {
	if r.Ref != reg.Ref {
		return 0, 0, false
	}
	start := r.MDOffset(reg.Start - 1)
	end := mdLen
	if reg.End-1 < r.End() {
		end = min(r.MDOffset(reg.End), mdLen)
	}
	start = max(start, 0)
	if start >= end {
		return 0, 0, false
	}
	return start + 1, end - start, true
}

// windowEnd returns the end of the window of length positions from
// start, clipped to the MD tag span so that it cannot overflow.
func windowEnd(start, length, mdLen int) int {
	if length <= mdLen-max(start, 0) {
		return start + length
	}
	return mdLen
}

// windowCigar returns the CIGAR of r clipped to the zero-based MD tag
// window [start, end). Skipped regions that lie within the window are
// retained.
func windowCigar(r *mdsam.Record, start, end int) sam.Cigar {
	if start >= end {
		return nil
	}
	from := r.RefPos(start) - r.Pos
	to := r.RefPos(end-1) + 1 - r.Pos
	return mdsam.ClipCigar(r.Cigar, from, to)
}
