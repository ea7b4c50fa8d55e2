// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"github.com/biogo/hts/sam"

	"github.com/biogo/mdz/rle"
)

// ClipCigar returns the CIGAR operations of c that fall within the
// zero-based reference window [start, end), relative to the first
// reference position of c.
//
// Reference consuming operations are clipped to the window. Operations
// that do not consume reference, insertions and clipping, are retained
// only when they lie strictly inside the window. CigarBack operations
// are treated as consuming no reference.
func ClipCigar(c sam.Cigar, start, end int) sam.Cigar {
	runs := make([]rle.Run[sam.CigarOp], len(c))
	for i, co := range c {
		runs[i] = rle.Run[sam.CigarOp]{Op: co, Len: refLen(co)}
	}
	clipped := rle.Coalesce(rle.Clip(runs, start, end, consumesRef), sameRefOp)
	if len(clipped) == 0 {
		return nil
	}
	cc := make(sam.Cigar, len(clipped))
	for i, r := range clipped {
		if consumesRef(r.Op) {
			cc[i] = sam.NewCigarOp(r.Op.Type(), r.Len)
			continue
		}
		cc[i] = r.Op
	}
	return cc
}

func refLen(co sam.CigarOp) int {
	return co.Len() * max(co.Type().Consumes().Reference, 0)
}

func consumesRef(co sam.CigarOp) bool { return refLen(co) > 0 }

func sameRefOp(a, b sam.CigarOp) bool {
	return a.Type() == b.Type() && consumesRef(a) && consumesRef(b)
}
