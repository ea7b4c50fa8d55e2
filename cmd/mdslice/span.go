// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biogo/mdz/internal/batch"
	"github.com/biogo/mdz/config"
	"github.com/biogo/mdz/sam"
)

var spanColumns = []string{"name", "ref", "pos", "cigar", "cigar_span", "md_span", "matched", "mismatched", "deleted"}

var spanCmd = &cobra.Command{
	Use:   "span <input>",
	Short: "Report the reference span of each record's MD tag",
	Long: `span writes the reference span of each record's CIGAR and MD tag
with the number of matched, mismatched and deleted reference bases.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], spanColumns, span)
	},
}

func span(conf *config.Config) batch.Func {
	return func(r *sam.Record) (string, bool, error) {
		if skip(conf, r) {
			return "", false, nil
		}
		md, ok, err := mdFor(conf, r)
		if !ok {
			return "", false, err
		}
		m, x, d := md.Counts()
		return fmt.Sprintf("%s\t%s\t%d\t%v\t%d\t%d\t%d\t%d\t%d",
			r.Name, r.Ref, r.Pos+1, r.Cigar, r.RefSpan(), md.RefLen(), m, x, d,
		), true, nil
	}
}
