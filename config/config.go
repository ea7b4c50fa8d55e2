// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the mdslice settings that are unmarshalled
// from Viper (see: /cmd/mdslice).
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Region is a one-based, inclusive genomic interval.
type Region struct {
	Ref        string
	Start, End int
}

// ParseRegion parses a samtools style region, "ref:start-end". A bare
// reference name selects the whole reference.
func ParseRegion(s string) (Region, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		if s == "" {
			return Region{}, errors.New("config: empty region")
		}
		return Region{Ref: s, Start: 1, End: int(^uint(0) >> 1)}, nil
	}
	r := Region{Ref: s[:i]}
	start, end, ok := strings.Cut(s[i+1:], "-")
	if r.Ref == "" || !ok {
		return Region{}, fmt.Errorf("config: invalid region %q", s)
	}
	var err error
	r.Start, err = strconv.Atoi(strings.ReplaceAll(start, ",", ""))
	if err != nil {
		return Region{}, fmt.Errorf("config: invalid region start %q: %v", s, err)
	}
	r.End, err = strconv.Atoi(strings.ReplaceAll(end, ",", ""))
	if err != nil {
		return Region{}, fmt.Errorf("config: invalid region end %q: %v", s, err)
	}
	if r.Start < 1 || r.End < r.Start {
		return Region{}, fmt.Errorf("config: invalid region bounds %q", s)
	}
	return r, nil
}

// Len returns the number of positions in the region.
func (r Region) Len() int { return r.End - r.Start + 1 }

// WindowFlags are those that are passed to the window command.
type WindowFlags struct {
	// one-based offset of the window within each MD tag
	Offset int `mapstructure:"offset"`

	// number of reference positions in the window
	Length int `mapstructure:"length"`

	// genomic region to window each record against, overrides
	// offset and length when set
	Region string `mapstructure:"region"`
}

// Config is the root-level settings struct and is a mix of settings
// available in the config file, the environment and the command line.
type Config struct {
	// number of worker goroutines, zero for GOMAXPROCS
	Threads int `mapstructure:"threads"`

	// key of the MD tag field
	Tag string `mapstructure:"tag"`

	// whether to skip unmapped records
	SkipUnmapped bool `mapstructure:"skip-unmapped"`

	// whether to log and skip records with malformed tags
	KeepGoing bool `mapstructure:"keep-going"`

	// whether to write a column header line
	Header bool `mapstructure:"header"`

	Window WindowFlags `mapstructure:"window"`

	// Region is parsed from Window.Region.
	Region *Region `mapstructure:"-"`
}

// Defaults sets the default settings on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("threads", 0)
	v.SetDefault("tag", "MD:Z")
	v.SetDefault("skip-unmapped", true)
	v.SetDefault("keep-going", false)
	v.SetDefault("header", false)
	v.SetDefault("window.offset", 1)
	v.SetDefault("window.length", 0)
	v.SetDefault("window.region", "")
}

// New returns a validated Config unmarshalled from v.
func New(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: failed to decode settings: %v", err)
	}
	if c.Threads < 0 {
		return nil, fmt.Errorf("config: negative thread count: %d", c.Threads)
	}
	if len(c.Tag) != 2 && (len(c.Tag) != 4 || c.Tag[2] != ':') {
		return nil, fmt.Errorf("config: invalid tag key: %q", c.Tag)
	}
	if c.Window.Offset < 0 || c.Window.Length < 0 {
		return nil, fmt.Errorf("config: invalid window: offset=%d length=%d", c.Window.Offset, c.Window.Length)
	}
	if c.Window.Region != "" {
		r, err := ParseRegion(c.Window.Region)
		if err != nil {
			return nil, err
		}
		c.Region = &r
	}
	return &c, nil
}
