// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rle provides windowing operations on run-length encoded
// sequences of operations such as CIGAR and MD tag operations.
package rle

// Run is a single run of positions labelled by an operation.
type Run[T any] struct {
	Op  T
	Len int
}

// Span returns the total number of positions described by runs.
func Span[T any](runs []Run[T]) int {
	var n int
	for _, r := range runs {
		n += r.Len
	}
	return n
}

// Clip returns the runs of runs that fall within the half-open window
// [start, end), where the first run begins at position zero.
//
// A run that overlaps the window is included. If splittable returns true
// for the run's operation, its length is reduced to the width of the
// overlap, otherwise the run is included unaltered. Zero length runs
// are included only when they lie strictly inside the window, that is
// when positions on both sides of them are included.
//
// The returned slice does not share memory with runs. Clip returns nil if
// start >= end or no run intersects the window.
func Clip[T any](runs []Run[T], start, end int, splittable func(T) bool) []Run[T] {
	if start >= end {
		return nil
	}
	var (
		clipped []Run[T]
		pos     int
	)
	for _, r := range runs {
		if pos >= end {
			break
		}
		if r.Len == 0 {
			if start < pos {
				clipped = append(clipped, r)
			}
			continue
		}
		left, right := max(pos, start), min(pos+r.Len, end)
		pos += r.Len
		if left >= right {
			continue
		}
		if splittable(r.Op) {
			r.Len = right - left
		}
		clipped = append(clipped, r)
	}
	return clipped
}

// Coalesce returns runs with adjacent runs merged where same returns true
// for their operations. The merged run holds the operation of the first
// run and the summed length. The returned slice does not share memory
// with runs.
func Coalesce[T any](runs []Run[T], same func(a, b T) bool) []Run[T] {
	if len(runs) == 0 {
		return nil
	}
	merged := make([]Run[T], 1, len(runs))
	merged[0] = runs[0]
	for _, r := range runs[1:] {
		last := &merged[len(merged)-1]
		if same(last.Op, r.Op) {
			last.Len += r.Len
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
