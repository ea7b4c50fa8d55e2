// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdz

import "fmt"

// MalformedTagError is returned when an MD tag does not conform to the
// MD tag grammar.
type MalformedTagError struct {
	// Tag is the complete text passed to Parse.
	Tag string

	// Pos is the byte offset of the offending text within the bare
	// tag value, that is after any "MD:Z:" prefix.
	Pos int

	// Text is the offending substring.
	Text string

	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("mdz: malformed tag %q: %s %q at %d", e.Tag, e.Reason, e.Text, e.Pos)
}

// InvalidWindowError is returned when a window with a negative offset or
// length is requested.
type InvalidWindowError struct {
	Offset, Length int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("mdz: invalid window: offset=%d length=%d", e.Offset, e.Length)
}
