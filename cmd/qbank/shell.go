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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/db7559/qbank"
)

const shellHelp = `検索語を入力してください ("&" で AND 検索)。
Commands: :export, :answers, :help, :quit`

var errQuit = errors.New("quit")

// shell runs the interactive search loop.  Every input line is a query;
// lines starting with ":" are commands.
func (a *app) shell(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mqbank>\033[0m ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem(":export"),
			readline.PcItem(":answers"),
			readline.PcItem(":help"),
			readline.PcItem(":quit"),
		),
		Stdout: a.out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(a.out, "%d件の問題を読み込みました\n", len(a.table.Records))
	fmt.Fprintln(a.out, shellHelp)

	var query string
	var hits []qbank.Record
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			err := a.command(ctx, line, query, hits)
			if err == errQuit {
				return nil
			} else if err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
			continue
		}

		query = line
		hits = a.search(query)
	}
}

func (a *app) command(ctx context.Context, line, query string, hits []qbank.Record) error {
	switch strings.Fields(line)[0] {
	case ":quit", ":q", ":exit":
		return errQuit
	case ":help", ":h":
		fmt.Fprintln(a.out, shellHelp)
	case ":answers":
		a.showAnswers = !a.showAnswers
		state := "off"
		if a.showAnswers {
			state = "on"
		}
		fmt.Fprintf(a.out, "answers %s\n", state)
	case ":export":
		if query == "" {
			hits = a.table.Records
		}
		if len(hits) == 0 {
			return errors.New("nothing to export")
		}
		return a.export(ctx, query, hits)
	default:
		return fmt.Errorf("unknown command %q", line)
	}
	return nil
}
