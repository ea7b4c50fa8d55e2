// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input opens alignment inputs for MD tag processing. SAM text,
// BGZF or xz compressed SAM text and BAM are recognised by their content.
package input

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"
	"github.com/ulikunitz/xz"
	"golang.org/x/exp/mmap"

	"github.com/biogo/mdz/sam"
)

// Format is the detected format of an input.
type Format int

const (
	SAM Format = iota
	BGZFSAM
	XZSAM
	BAM
)

func (f Format) String() string {
	switch f {
	case SAM:
		return "sam"
	case BGZFSAM:
		return "sam.gz"
	case XZSAM:
		return "sam.xz"
	case BAM:
		return "bam"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bamMagic  = []byte("BAM\x01")
)

// A BGZF block is never larger than this, so a peek of this size always
// holds the first block of a BGZF stream.
const maxBlockSize = 1 << 16

type recordReader interface {
	Read() (*sam.Record, error)
	Header() []string
}

// File is an opened alignment input.
type File struct {
	Format Format

	r       recordReader
	closers []io.Closer
}

// Open opens the alignment data at path, or stdin if path is "-". Files are
// memory mapped. The rd parameter is the number of concurrent BGZF block
// decompressors to use for compressed input.
func Open(path string, rd int) (*File, error) {
	if path == "-" {
		return NewFile(os.Stdin, rd)
	}
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: %v", err)
	}
	f, err := NewFile(io.NewSectionReader(m, 0, int64(m.Len())), rd)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("input: %s: %v", path, err)
	}
	f.closers = append([]io.Closer{m}, f.closers...)
	return f, nil
}

// NewFile returns a File reading alignment data from r.
func NewFile(r io.Reader, rd int) (*File, error) {
	br := bufio.NewReaderSize(r, 2*maxBlockSize)
	magic, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	f := &File{}
	switch {
	case bytes.HasPrefix(magic, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, err
		}
		f.Format = XZSAM
		f.r, err = sam.NewReader(xr)
		if err != nil {
			return nil, err
		}
	case bytes.HasPrefix(magic, gzipMagic):
		head, err := br.Peek(maxBlockSize)
		if err != nil && err != io.EOF {
			return nil, err
		}
		if isBAM(head) {
			f.Format = BAM
			bamr, err := sam.NewBAMReader(br, rd)
			if err != nil {
				return nil, err
			}
			f.r = bamr
			f.closers = append(f.closers, bamr)
			break
		}
		bg, err := bgzf.NewReader(br, rd)
		if err != nil {
			return nil, err
		}
		f.Format = BGZFSAM
		f.closers = append(f.closers, bg)
		f.r, err = sam.NewReader(bg)
		if err != nil {
			bg.Close()
			return nil, err
		}
	default:
		f.Format = SAM
		f.r, err = sam.NewReader(br)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// isBAM returns whether the first BGZF block in head decompresses to
// data starting with the BAM magic number.
func isBAM(head []byte) bool {
	if len(head) < 18 || head[12] != 'B' || head[13] != 'C' {
		return false
	}
	head = head[:min(int(binary.LittleEndian.Uint16(head[16:18]))+1, len(head))]
	bg, err := bgzf.NewReader(bytes.NewReader(head), 1)
	if err != nil {
		return false
	}
	defer bg.Close()
	magic := make([]byte, len(bamMagic))
	_, err = io.ReadFull(bg, magic)
	return err == nil && bytes.Equal(magic, bamMagic)
}

// Read returns the next record of the input. At the end of the input
// Read returns io.EOF.
func (f *File) Read() (*sam.Record, error) { return f.r.Read() }

// Header returns the SAM header lines of the input.
func (f *File) Header() []string { return f.r.Header() }

// Close releases the resources held by the File.
func (f *File) Close() error {
	var err error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if cerr := f.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}
