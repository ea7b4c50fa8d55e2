// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Reader implements SAM format reading.
type Reader struct {
	r *bufio.Reader
	h []string

	line int
}

// NewReader returns a new Reader, reading from the given io.Reader.
// Header lines are read immediately and are available from Header.
func NewReader(r io.Reader) (*Reader, error) {
	sr := &Reader{r: bufio.NewReader(r)}
	for {
		p, err := sr.r.Peek(1)
		if err == io.EOF {
			return sr, nil
		}
		if err != nil {
			return nil, err
		}
		if p[0] != '@' {
			return sr, nil
		}
		l, err := sr.r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		sr.line++
		sr.h = append(sr.h, string(trimEOL(l)))
	}
}

// Header returns the SAM header lines held by the Reader.
func (r *Reader) Header() []string {
	return r.h
}

// Read returns the next Record in the SAM stream. Empty lines are skipped.
func (r *Reader) Read() (*Record, error) {
	for {
		b, err := r.r.ReadBytes('\n')
		if len(b) == 0 && err != nil {
			return nil, err
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		r.line++
		b = trimEOL(b)
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		var rec Record
		err = rec.UnmarshalSAM(b)
		if err != nil {
			return nil, &LineError{Line: r.line, Err: err}
		}
		return &rec, nil
	}
}

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}

// LineError is a record parsing error annotated with its line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
