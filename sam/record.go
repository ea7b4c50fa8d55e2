// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sam provides access to the fields and optional tags of SAM
// alignment records for MD tag processing. Record decoding of BAM data is
// delegated to github.com/biogo/hts.
package sam

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/biogo/hts/sam"

	"github.com/biogo/mdz"
)

// MDKey is the tag key of the SAM MD field.
const MDKey = "MD:Z"

// ErrNoTag is returned when a requested tag is absent from a record.
var ErrNoTag = errors.New("sam: no tag")

// Record is a SAM alignment record with its optional fields held as text.
type Record struct {
	Name    string
	Flags   sam.Flags
	Ref     string // Empty when "*".
	Pos     int    // Zero-based; -1 when unplaced.
	MapQ    byte
	Cigar   sam.Cigar
	MateRef string // Empty when "*".
	MatePos int    // Zero-based; -1 when unplaced.
	TempLen int
	Seq     string // Empty when "*".
	Qual    string // Phred+33 text; empty when "*".
	Tags    Tags
}

// Chr returns the reference name of the record.
func (r *Record) Chr() string { return r.Ref }

// Opt returns the optional fields of the record.
func (r *Record) Opt() Tags { return r.Tags }

// Start returns the zero-based lower-coordinate end of the alignment.
func (r *Record) Start() int { return r.Pos }

// End returns the highest reference-consuming coordinate end of the
// alignment.
func (r *Record) End() int {
	pos := r.Pos
	end := pos
	for _, co := range r.Cigar {
		pos += co.Len() * co.Type().Consumes().Reference
		end = max(end, pos)
	}
	return end
}

// RefSpan returns the number of reference positions consumed by the
// record's CIGAR.
func (r *Record) RefSpan() int {
	ref, _ := r.Cigar.Lengths()
	return ref
}

// Strand returns 1 for alignments in the forward orientation and -1
// for those on the reverse strand.
func (r *Record) Strand() int8 {
	if r.Flags&sam.Reverse == sam.Reverse {
		return -1
	}
	return 1
}

// Tag returns the value of the optional field identified by key and
// whether it is present. See Tags.Lookup for key matching.
func (r *Record) Tag(key string) (string, bool) {
	return r.Tags.Lookup(key)
}

// MD returns the parsed MD tag held in the optional field identified by
// key, usually MDKey. If the field is absent the returned error wraps
// ErrNoTag.
func (r *Record) MD(key string) (*mdz.Tag, error) {
	v, ok := r.Tags.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w %q for %q", ErrNoTag, key, r.Name)
	}
	return mdz.Parse(v)
}

// MD tag offsets count the reference positions of alignment matches and
// deletions; skipped regions are not described by the tag.
func inMD(t sam.CigarOpType) bool {
	switch t {
	case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch, sam.CigarDeletion:
		return true
	}
	return false
}

// RefPos returns the zero-based reference position of the base at the
// zero-based offset into the record's MD tag. Offsets past the end of the
// alignment are extrapolated from its end.
func (r *Record) RefPos(offset int) int {
	pos := r.Pos
	for _, co := range r.Cigar {
		t, n := co.Type(), co.Len()
		switch {
		case inMD(t):
			if offset < n {
				return pos + offset
			}
			offset -= n
			pos += n
		case t == sam.CigarSkipped:
			pos += n
		}
	}
	return pos + offset
}

// MDOffset returns the zero-based offset into the record's MD tag
// corresponding to the zero-based reference position pos. Positions
// within a skipped region map to the next described base. Positions
// before the alignment give negative offsets and positions after it
// are extrapolated from its end.
func (r *Record) MDOffset(pos int) int {
	if pos < r.Pos {
		return pos - r.Pos
	}
	var (
		offset int
		p      = r.Pos
	)
	for _, co := range r.Cigar {
		t, n := co.Type(), co.Len()
		switch {
		case inMD(t):
			if pos < p+n {
				return offset + pos - p
			}
			offset += n
			p += n
		case t == sam.CigarSkipped:
			if pos < p+n {
				return offset
			}
			p += n
		}
	}
	return offset + pos - p
}

// UnmarshalText implements the encoding.TextUnmarshaler.
func (r *Record) UnmarshalText(b []byte) error {
	return r.UnmarshalSAM(b)
}

// UnmarshalSAM parses a SAM format alignment line. Fields may be separated
// by any run of white space.
func (r *Record) UnmarshalSAM(b []byte) error {
	f := bytes.Fields(b)
	if len(f) < 11 {
		return errors.New("sam: missing SAM fields")
	}
	*r = Record{Name: string(f[0])}
	flags, err := strconv.ParseUint(string(f[1]), 0, 16)
	if err != nil {
		return fmt.Errorf("sam: failed to parse flags: %v", err)
	}
	r.Flags = sam.Flags(flags)
	r.Ref = refName(f[2])
	r.Pos, err = strconv.Atoi(string(f[3]))
	if err != nil {
		return fmt.Errorf("sam: failed to parse position: %v", err)
	}
	r.Pos--
	mapQ, err := strconv.ParseUint(string(f[4]), 10, 8)
	if err != nil {
		return fmt.Errorf("sam: failed to parse map quality: %v", err)
	}
	r.MapQ = byte(mapQ)
	r.Cigar, err = sam.ParseCigar(f[5])
	if err != nil {
		return fmt.Errorf("sam: failed to parse cigar string: %v", err)
	}
	if bytes.Equal(f[6], []byte{'='}) {
		r.MateRef = r.Ref
	} else {
		r.MateRef = refName(f[6])
	}
	r.MatePos, err = strconv.Atoi(string(f[7]))
	if err != nil {
		return fmt.Errorf("sam: failed to parse mate position: %v", err)
	}
	r.MatePos--
	r.TempLen, err = strconv.Atoi(string(f[8]))
	if err != nil {
		return fmt.Errorf("sam: failed to parse template length: %v", err)
	}
	r.Seq = string(starToEmpty(f[9]))
	r.Qual = string(starToEmpty(f[10]))
	if r.Qual != "" && len(r.Qual) != len(r.Seq) {
		return errors.New("sam: sequence/quality length mismatch")
	}
	for _, aux := range f[11:] {
		t, err := ParseTag(aux)
		if err != nil {
			return err
		}
		r.Tags = append(r.Tags, t)
	}
	return nil
}

func refName(b []byte) string {
	return string(starToEmpty(b))
}

func starToEmpty(b []byte) []byte {
	if len(b) == 1 && b[0] == '*' {
		return nil
	}
	return b
}
