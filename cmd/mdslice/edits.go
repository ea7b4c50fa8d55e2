// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biogo/mdz/config"
	"github.com/biogo/mdz/internal/batch"
	"github.com/biogo/mdz/sam"
)

var editsColumns = []string{"name", "ref", "pos", "type", "bases"}

var editsCmd = &cobra.Command{
	Use:   "edits <input>",
	Short: "Report the mismatches and deletions of each record",
	Long: `edits writes one line for each mismatch and deletion described by a
record's MD tag, giving its one-based reference position and the
reference bases involved. Records without edits write nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], editsColumns, edits)
	},
}

func edits(conf *config.Config) batch.Func {
	return func(r *sam.Record) (string, bool, error) {
		if skip(conf, r) {
			return "", false, nil
		}
		md, ok, err := mdFor(conf, r)
		if !ok {
			return "", false, err
		}
		e := md.Edits()
		if len(e) == 0 {
			return "", false, nil
		}
		var sb strings.Builder
		for i, ed := range e {
			if i != 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%s\t%s\t%d\t%v\t%s", r.Name, r.Ref, r.RefPos(ed.Offset)+1, ed.Op.Type, ed.Op.Bases)
		}
		return sb.String(), true, nil
	}
}
