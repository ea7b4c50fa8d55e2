// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mdslice reports the reference spans, windowed sub-tags and edits
// described by the MD tags of SAM and BAM alignment records.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	htssam "github.com/biogo/hts/sam"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biogo/mdz"
	"github.com/biogo/mdz/config"
	"github.com/biogo/mdz/internal/batch"
	"github.com/biogo/mdz/internal/input"
	"github.com/biogo/mdz/sam"
)

var (
	v       = viper.New()
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mdslice",
	Short: "Measure and window the MD tags of SAM and BAM records",
	Long: `mdslice reads SAM, bgzipped or xz compressed SAM, or BAM data from a
file or from stdin ("-") and writes one tab separated line per record.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mdslice.yaml)")
	pf.Int("threads", 0, "number of worker goroutines, 0 for one per processor")
	pf.String("tag", sam.MDKey, "key of the MD tag field")
	pf.Bool("skip-unmapped", true, "skip unmapped records")
	pf.Bool("keep-going", false, "log and skip records with malformed MD tags")
	pf.Bool("header", false, "write a column header line")
	for _, name := range []string{"threads", "tag", "skip-unmapped", "keep-going", "header"} {
		if err := v.BindPFlag(name, pf.Lookup(name)); err != nil {
			log.Fatalf("failed to bind flag %q: %v", name, err)
		}
	}

	config.Defaults(v)
	v.SetEnvPrefix("mdslice")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(spanCmd, windowCmd, editsCmd)
}

// loadConfig reads any config file and returns the merged settings.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		return config.New(v)
	}
	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".mdslice")
		v.SetConfigType("yaml")
		err = v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return config.New(v)
}

// run evaluates every record of the input at path with the Func built by
// fn, writing the results to stdout.
func run(path string, columns []string, fn func(*config.Config) batch.Func) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := input.Open(path, conf.Threads)
	if err != nil {
		return err
	}
	defer f.Close()
	if conf.Header {
		fmt.Println(strings.Join(columns, "\t"))
	}
	_, err = batch.Run(f, os.Stdout, conf.Threads, fn(conf))
	return err
}

// skip returns whether the record should not be evaluated.
func skip(conf *config.Config, r *sam.Record) bool {
	return conf.SkipUnmapped && (r.Flags&htssam.Unmapped != 0 || r.Ref == "")
}

// mdFor returns the parsed MD tag of r. Records without the tag are
// logged and skipped, as are records with malformed tags when the
// configuration allows it.
func mdFor(conf *config.Config, r *sam.Record) (md *mdz.Tag, ok bool, err error) {
	t, err := r.MD(conf.Tag)
	if err != nil {
		if errors.Is(err, sam.ErrNoTag) || conf.KeepGoing {
			log.Printf("skipping %s: %v", r.Name, err)
			return nil, false, nil
		}
		return nil, false, err
	}
	return t, true, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
