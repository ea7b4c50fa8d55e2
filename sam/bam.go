// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"io"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// BAMReader reads Records from BAM data.
type BAMReader struct {
	r *bam.Reader
}

// NewBAMReader returns a BAMReader reading from r. The rd parameter
// specifies the number of concurrent BGZF block decompressors to use, see
// github.com/biogo/hts/bam.NewReader.
func NewBAMReader(r io.Reader, rd int) (*BAMReader, error) {
	br, err := bam.NewReader(r, rd)
	if err != nil {
		return nil, err
	}
	return &BAMReader{r: br}, nil
}

// Header returns the SAM header text lines of the BAM data.
func (r *BAMReader) Header() []string {
	text, err := r.r.Header().MarshalText()
	if err != nil || len(text) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(text), "\n"), "\n")
}

// Read returns the next Record in the BAM stream.
func (r *BAMReader) Read() (*Record, error) {
	rec, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	return FromHTS(rec), nil
}

// Close closes the underlying BAM reader.
func (r *BAMReader) Close() error {
	return r.r.Close()
}

// FromHTS returns a Record holding the fields of a decoded
// github.com/biogo/hts/sam Record.
func FromHTS(r *sam.Record) *Record {
	rec := &Record{
		Name:    r.Name,
		Flags:   r.Flags,
		Ref:     htsRefName(r.Ref),
		Pos:     r.Pos,
		MapQ:    r.MapQ,
		Cigar:   r.Cigar,
		MateRef: htsRefName(r.MateRef),
		MatePos: r.MatePos,
		TempLen: r.TempLen,
		Seq:     string(r.Seq.Expand()),
		Qual:    htsQual(r.Qual),
	}
	for _, aux := range r.AuxFields {
		// Aux.String renders TAG:KIND:VALUE with the integer
		// kinds collapsed to 'i', as SAM text does.
		s := aux.String()
		rec.Tags = append(rec.Tags, Tag{Key: s[:4], Value: s[5:]})
	}
	return rec
}

func htsRefName(ref *sam.Reference) string {
	if ref == nil {
		return ""
	}
	return ref.Name()
}

func htsQual(q []byte) string {
	for _, v := range q {
		if v != 0xff {
			b := make([]byte, len(q))
			for i, p := range q {
				b[i] = p + 33
			}
			return string(b)
		}
	}
	return ""
}
