// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"log"
	"math"
	"os"
	"testing"

	"gopkg.in/check.v1"

	"github.com/biogo/mdz"
	"github.com/biogo/mdz/config"
	"github.com/biogo/mdz/internal/batch"
	"github.com/biogo/mdz/sam"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) SetUpSuite(c *check.C) { log.SetOutput(io.Discard) }

func (s *S) TearDownSuite(c *check.C) { log.SetOutput(os.Stderr) }

const (
	deletionRec = "del\t0\tchr1\t101\t60\t4M1D3M\t*\t0\t0\tACGTACG\t*\tNM:i:1\tMD:Z:4^T3"
	spliceRec   = "spl\t0\tchr1\t201\t60\t2M100N6M\t*\t0\t0\tACGTACGT\t*\tMD:Z:2A0C4"
	unmappedRec = "unm\t4\t*\t0\t0\t*\t*\t0\t0\tACGT\t*"
	noTagRec    = "bare\t0\tchr1\t1\t60\t4M\t*\t0\t0\tACGT\t*\tNM:i:0"
	badTagRec   = "bad\t0\tchr1\t1\t60\t4M\t*\t0\t0\tACGT\t*\tMD:Z:4x"
)

func record(c *check.C, line string) *sam.Record {
	var r sam.Record
	err := r.UnmarshalSAM([]byte(line))
	c.Assert(err, check.Equals, nil, check.Commentf("line: %q", line))
	return &r
}

func defaultConfig() *config.Config {
	return &config.Config{
		Tag:          sam.MDKey,
		SkipUnmapped: true,
		Window:       config.WindowFlags{Offset: 1},
	}
}

type result struct {
	line string
	ok   bool
}

func apply(c *check.C, fn batch.Func, line string) result {
	l, ok, err := fn(record(c, line))
	c.Assert(err, check.Equals, nil, check.Commentf("line: %q", line))
	return result{line: l, ok: ok}
}

func (s *S) TestSpan(c *check.C) {
	fn := span(defaultConfig())
	for _, test := range []struct {
		in   string
		want result
	}{
		{in: deletionRec, want: result{line: "del\tchr1\t101\t4M1D3M\t8\t8\t7\t0\t1", ok: true}},
		{in: spliceRec, want: result{line: "spl\tchr1\t201\t2M100N6M\t108\t8\t6\t2\t0", ok: true}},
		{in: unmappedRec, want: result{}},
		{in: noTagRec, want: result{}},
	} {
		c.Check(apply(c, fn, test.in), check.Equals, test.want)
	}
}

func (s *S) TestEdits(c *check.C) {
	fn := edits(defaultConfig())
	for _, test := range []struct {
		in   string
		want result
	}{
		{in: deletionRec, want: result{line: "del\tchr1\t105\tdeletion\tT", ok: true}},
		{in: spliceRec, want: result{line: "spl\tchr1\t303\tmismatch\tA\nspl\tchr1\t304\tmismatch\tC", ok: true}},
		{in: "m\t0\tchr1\t1\t60\t4M\t*\t0\t0\tACGT\t*\tMD:Z:4", want: result{}},
	} {
		c.Check(apply(c, fn, test.in), check.Equals, test.want)
	}
}

func (s *S) TestWindowOffset(c *check.C) {
	for _, test := range []struct {
		offset, length int
		in             string
		want           result
	}{
		{offset: 3, length: 4, in: deletionRec, want: result{line: "del\tchr1\t101\t3\t4\t2M1D1M\t2^T1", ok: true}},
		{offset: 3, length: 4, in: spliceRec, want: result{line: "spl\tchr1\t201\t3\t4\t4M\tA0C2", ok: true}},
		{offset: 1, length: 0, in: deletionRec, want: result{line: "del\tchr1\t101\t1\t8\t4M1D3M\t4^T3", ok: true}},
		{offset: 6, length: 0, in: deletionRec, want: result{line: "del\tchr1\t101\t6\t3\t3M\t3", ok: true}},
		{offset: 20, length: 5, in: deletionRec, want: result{line: "del\tchr1\t101\t20\t5\t*\t", ok: true}},
		{offset: 3, length: math.MaxInt, in: deletionRec, want: result{line: "del\tchr1\t101\t3\t9223372036854775807\t2M1D3M\t2^T3", ok: true}},
	} {
		conf := defaultConfig()
		conf.Window.Offset, conf.Window.Length = test.offset, test.length
		c.Check(apply(c, window(conf), test.in), check.Equals, test.want,
			check.Commentf("offset=%d length=%d", test.offset, test.length))
	}
}

func (s *S) TestRegionWindow(c *check.C) {
	del := record(c, deletionRec)
	spl := record(c, spliceRec)
	for _, test := range []struct {
		rec            *sam.Record
		reg            config.Region
		offset, length int
		ok             bool
	}{
		{rec: del, reg: config.Region{Ref: "chr1", Start: 103, End: 106}, offset: 3, length: 4, ok: true},
		{rec: del, reg: config.Region{Ref: "chr1", Start: 1, End: math.MaxInt}, offset: 1, length: 8, ok: true},
		{rec: del, reg: config.Region{Ref: "chr1", Start: 90, End: 102}, offset: 1, length: 2, ok: true},
		{rec: del, reg: config.Region{Ref: "chr1", Start: 108, End: 120}, offset: 8, length: 1, ok: true},
		{rec: del, reg: config.Region{Ref: "chr1", Start: 1, End: 100}},
		{rec: del, reg: config.Region{Ref: "chr1", Start: 109, End: 200}},
		{rec: del, reg: config.Region{Ref: "chr2", Start: 1, End: 1000}},
		{rec: spl, reg: config.Region{Ref: "chr1", Start: 250, End: 305}, offset: 3, length: 3, ok: true},
		{rec: spl, reg: config.Region{Ref: "chr1", Start: 204, End: 302}},
	} {
		md, err := test.rec.MD(sam.MDKey)
		c.Assert(err, check.Equals, nil)
		offset, length, ok := regionWindow(test.rec, test.reg, md.RefLen())
		c.Check(ok, check.Equals, test.ok, check.Commentf("%s %+v", test.rec.Name, test.reg))
		if !ok {
			continue
		}
		c.Check(offset, check.Equals, test.offset, check.Commentf("%s %+v", test.rec.Name, test.reg))
		c.Check(length, check.Equals, test.length, check.Commentf("%s %+v", test.rec.Name, test.reg))
	}
}

func (s *S) TestWindowRegion(c *check.C) {
	conf := defaultConfig()
	conf.Region = &config.Region{Ref: "chr1", Start: 250, End: 305}
	fn := window(conf)
	c.Check(apply(c, fn, spliceRec), check.Equals, result{line: "spl\tchr1\t201\t3\t3\t3M\tA0C1", ok: true})
	c.Check(apply(c, fn, deletionRec), check.Equals, result{})
}

func (s *S) TestMalformedTag(c *check.C) {
	conf := defaultConfig()
	_, _, err := span(conf)(record(c, badTagRec))
	var merr *mdz.MalformedTagError
	c.Check(errors.As(err, &merr), check.Equals, true)

	conf.KeepGoing = true
	c.Check(apply(c, span(conf), badTagRec), check.Equals, result{})
}

func (s *S) TestUnmappedKept(c *check.C) {
	conf := defaultConfig()
	conf.SkipUnmapped = false
	_, ok, err := span(conf)(record(c, unmappedRec))
	c.Check(err, check.Equals, nil)
	c.Check(ok, check.Equals, false)
}
