// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch evaluates alignment records in parallel batches while
// preserving input order in the output.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/exascience/pargo/pipeline"

	"github.com/biogo/mdz/sam"
)

// RecordReader is a source of alignment records. Read returns io.EOF at
// the end of the records.
type RecordReader interface {
	Read() (*sam.Record, error)
}

// Func evaluates a single record. It returns the line of output for the
// record, without a trailing newline, and whether the line should be
// written. A non-nil error stops evaluation.
type Func func(*sam.Record) (line string, ok bool, err error)

// Batch sizes used by the pipeline.
const (
	minBatchSize = 256
	maxBatchSize = 1 << 14
)

// source implements pipeline.Source over a RecordReader.
type source struct {
	r    RecordReader
	data []*sam.Record
	err  error
}

// Err implements the method of the pipeline.Source interface.
func (s *source) Err() error { return s.err }

// Prepare implements the method of the pipeline.Source interface.
func (*source) Prepare(_ context.Context) (size int) { return -1 }

// Fetch implements the method of the pipeline.Source interface.
func (s *source) Fetch(size int) (fetched int) {
	s.data = make([]*sam.Record, 0, size)
	for fetched < size {
		r, err := s.r.Read()
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			break
		}
		s.data = append(s.data, r)
		fetched++
	}
	return fetched
}

// Data implements the method of the pipeline.Source interface.
func (s *source) Data() interface{} { return s.data }

// Run reads all records from r, evaluates them with fn using up to threads
// concurrent workers, or one per processor if threads is zero, and writes
// the resulting lines to w in input order. It returns the number of lines
// written.
func Run(r RecordReader, w io.Writer, threads int, fn Func) (n int, err error) {
	src := &source{r: r}
	bw := bufio.NewWriter(w)

	var p pipeline.Pipeline
	p.Source(src)
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(threads, pipeline.Receive(func(_ int, data interface{}) interface{} {
			recs := data.([]*sam.Record)
			lines := make([]string, 0, len(recs))
			for _, rec := range recs {
				line, ok, err := fn(rec)
				if err != nil {
					p.SetErr(fmt.Errorf("%s: %w", rec.Name, err))
					return lines
				}
				if ok {
					lines = append(lines, line)
				}
			}
			return lines
		})),
		pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, line := range data.([]string) {
				if _, err := bw.WriteString(line); err != nil {
					p.SetErr(err)
					return data
				}
				if err := bw.WriteByte('\n'); err != nil {
					p.SetErr(err)
					return data
				}
				n++
			}
			return data
		})),
	)
	p.Run()
	if err = p.Err(); err != nil {
		return n, err
	}
	if src.err != nil {
		return n, src.err
	}
	return n, bw.Flush()
}
