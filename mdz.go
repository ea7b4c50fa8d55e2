// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdz implements parsing and windowing of the SAM MD alignment tag.
// The MD tag is described in the SAM optional fields specification.
//
// http://samtools.github.io/hts-specs/SAMtags.pdf
package mdz

import (
	"math"
	"strconv"
	"strings"

	"github.com/biogo/mdz/rle"
)

// Prefix is the key and type prefix of an MD tag written as a SAM
// optional field.
const Prefix = "MD:Z:"

// Tag is a parsed MD tag. A Tag is immutable and safe for concurrent use.
type Tag struct {
	text string
	ops  []Op
}

// Parse returns a Tag parsed from s. The tag may be given either as the bare
// value, "60^G13", or as a SAM optional field, "MD:Z:60^G13".
func Parse(s string) (*Tag, error) {
	text := strings.TrimPrefix(s, Prefix)
	ops, err := tokenize(s, text)
	if err != nil {
		return nil, err
	}
	return &Tag{text: text, ops: ops}, nil
}

// RefLen parses the MD tag s and returns the number of reference positions
// it describes.
func RefLen(s string) (int, error) {
	t, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return t.RefLen(), nil
}

func tokenize(orig, text string) ([]Op, error) {
	var (
		ops   []Op
		total int
	)
	for i := 0; i < len(text); {
		start := i
		switch b := text[i]; {
		case b == '^':
			j := i + 1
			for j < len(text) && isBase[text[j]] {
				j++
			}
			if j == i+1 {
				return nil, &MalformedTagError{Tag: orig, Pos: i, Text: text[i:min(i+2, len(text))], Reason: "deletion without bases"}
			}
			ops = append(ops, NewDeletion(text[i+1:j]))
			i = j
		case isDigit(b):
			j := i + 1
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			n, err := strconv.Atoi(text[i:j])
			if err != nil {
				return nil, &MalformedTagError{Tag: orig, Pos: i, Text: text[i:j], Reason: "match length out of range"}
			}
			ops = append(ops, NewMatch(n))
			i = j
		case isBase[b]:
			ops = append(ops, NewMismatch(b))
			i++
		default:
			return nil, &MalformedTagError{Tag: orig, Pos: i, Text: text[i : i+1], Reason: "unexpected character"}
		}
		n := ops[len(ops)-1].RefLen()
		if n > math.MaxInt-total {
			return nil, &MalformedTagError{Tag: orig, Pos: start, Text: text[start:i], Reason: "reference length out of range"}
		}
		total += n
	}
	return ops, nil
}

// String returns the bare MD tag value.
func (t *Tag) String() string { return t.text }

// Ops returns a copy of the operations of the tag.
func (t *Tag) Ops() []Op { return append([]Op(nil), t.ops...) }

// RefLen returns the number of reference positions described by the tag.
func (t *Tag) RefLen() int {
	if allDigits(t.text) {
		// Parse has already checked the value is in range.
		n, _ := strconv.Atoi(t.text)
		return n
	}
	var n int
	for _, o := range t.ops {
		n += o.RefLen()
	}
	return n
}

func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// Counts returns the number of reference positions in the tag that are
// matched, mismatched and deleted.
func (t *Tag) Counts() (matched, mismatched, deleted int) {
	for _, o := range t.ops {
		switch o.Type {
		case Match:
			matched += o.N
		case Mismatch:
			mismatched++
		case Deletion:
			deleted += len(o.Bases)
		}
	}
	return matched, mismatched, deleted
}

// Edits returns the mismatches and deletions of the tag in reference order.
func (t *Tag) Edits() []Edit {
	var (
		edits []Edit
		pos   int
	)
	for _, o := range t.ops {
		if o.Type != Match {
			edits = append(edits, Edit{Offset: pos, Op: o})
		}
		pos += o.RefLen()
	}
	return edits
}

// Subregion returns the MD tag describing the window of length reference
// positions starting at offset. Offsets are one-based positions within the
// tag's span, so Subregion(1, t.RefLen()) returns the complete tag.
//
// Match runs are clipped to the window. Mismatches and deletions that
// overlap the window are included whole; a deletion is never split.
// Adjacent clipped matches are merged so the result is a valid MD tag.
// The window is clipped to the tag's span and an empty string is
// returned when they do not overlap. An offset of zero places the
// first position of the window before the start of the span.
func (t *Tag) Subregion(offset, length int) (string, error) {
	if offset < 0 || length < 0 {
		return "", &InvalidWindowError{Offset: offset, Length: length}
	}
	runs := make([]rle.Run[Op], len(t.ops))
	for i, o := range t.ops {
		runs[i] = rle.Run[Op]{Op: o, Len: o.RefLen()}
	}
	start := offset - 1
	end := t.RefLen()
	if length <= end-max(start, 0) {
		end = start + length
	}
	clipped := rle.Coalesce(rle.Clip(runs, start, end, isMatch), bothMatch)

	var sb strings.Builder
	for _, r := range clipped {
		if r.Op.Type == Match {
			sb.WriteString(strconv.Itoa(r.Len))
			continue
		}
		sb.WriteString(r.Op.String())
	}
	return sb.String(), nil
}

func isMatch(o Op) bool { return o.Type == Match }
func bothMatch(a, b Op) bool { return a.Type == Match && b.Type == Match }
