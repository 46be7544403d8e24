// qbank - a study-question browser with PDF export
// Copyright (C) 2026  The qbank Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Qbank searches a question bank and exports the hits as CSV, text and
// PDF files.
//
// Usage:
//
//	qbank [options] bank.csv
//
// Without -i, the records matching -q are listed and exported once.  With
// -i, an interactive shell is started where every input line is a search
// query.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/db7559/qbank"
	"github.com/db7559/qbank/config"
	"github.com/db7559/qbank/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("qbank", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", config.DefaultConfigPath(), "configuration file")
	query := flags.String("q", "", "search terms, separated by \"&\"")
	interactive := flags.Bool("i", false, "start an interactive search shell")
	answers := flags.Bool("answers", false, "show choices and answers in the hit list")
	formats := flags.String("formats", "csv,txt,pdf", "comma-separated list of export formats")
	outDir := flags.String("o", "", "output directory (overrides the configuration)")
	initConfig := flags.Bool("init", false, "write the default configuration file and exit")
	verbose := flags.Bool("v", false, "verbose logging")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: qbank [options] bank.csv\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	logging.SetLogger(logging.NewText(stderr, *verbose))

	if *initConfig {
		if err := config.Default().Save(*configPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", *configPath)
		return 0
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	table, err := qbank.LoadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a, err := newApp(cfg, table, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	a.showAnswers = *answers
	a.formats, err = parseFormats(*formats)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if *interactive {
		err = a.shell(ctx)
	} else {
		err = a.searchAndExport(ctx, *query)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// format is an export file format.
type format string

const (
	formatCSV format = "csv"
	formatTXT format = "txt"
	formatPDF format = "pdf"
)

func parseFormats(list string) ([]format, error) {
	var res []format
	seen := make(map[format]bool)
	for _, s := range strings.Split(list, ",") {
		f := format(strings.ToLower(strings.TrimSpace(s)))
		switch f {
		case "":
			continue
		case formatCSV, formatTXT, formatPDF:
		default:
			return nil, fmt.Errorf("unknown export format %q", s)
		}
		if !seen[f] {
			seen[f] = true
			res = append(res, f)
		}
	}
	return res, nil
}

// minutes formats d as mm:ss.
func minutes(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
