// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdz

import "strconv"

// An OpType represents the type of operation described by an Op.
type OpType byte

const (
	Match    OpType = iota // Run of reference bases matching the read.
	Mismatch               // Single reference base differing from the read.
	Deletion               // Reference bases absent from the read.
)

var opTypes = []string{"match", "mismatch", "deletion"}

// String returns the name of the OpType.
func (t OpType) String() string {
	if int(t) >= len(opTypes) {
		return "unknown"
	}
	return opTypes[t]
}

// Op is a single MD tag operation.
type Op struct {
	Type OpType

	// N is the number of matching bases of a Match.
	N int

	// Bases holds the reference bases of a Mismatch or Deletion.
	Bases string
}

// NewMatch returns a Match of n reference bases.
func NewMatch(n int) Op { return Op{Type: Match, N: n} }

// NewMismatch returns a Mismatch against the reference base b.
func NewMismatch(b byte) Op { return Op{Type: Mismatch, Bases: string(b)} }

// NewDeletion returns a Deletion of the given reference bases.
func NewDeletion(bases string) Op { return Op{Type: Deletion, Bases: bases} }

// RefLen returns the number of reference positions consumed by the Op.
func (o Op) RefLen() int {
	switch o.Type {
	case Match:
		return o.N
	case Mismatch:
		return 1
	case Deletion:
		return len(o.Bases)
	default:
		panic("mdz: invalid op type")
	}
}

// String returns the MD tag text of the Op.
func (o Op) String() string {
	switch o.Type {
	case Match:
		return strconv.Itoa(o.N)
	case Mismatch:
		return o.Bases
	case Deletion:
		return "^" + o.Bases
	default:
		panic("mdz: invalid op type")
	}
}

// Edit is a Mismatch or Deletion and the zero-based offset of its first
// reference base within a tag's span.
type Edit struct {
	Offset int
	Op     Op
}

var isBase = [256]bool{'A': true, 'C': true, 'G': true, 'T': true, 'N': true}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
