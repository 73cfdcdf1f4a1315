// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package query contains the commands that query the documentation index
// from the command line.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rusq/springdocs/cmd/springdocs/internal/cfg"
	"github.com/rusq/springdocs/cmd/springdocs/internal/golang/base"
	"github.com/rusq/springdocs/internal/knowledge"
)

// CmdList is the "springdocs list" command.
var CmdList = &base.Command{
	UsageLine: "springdocs list [flags]",
	Short:     "list documentation categories",
	Long: `
# List Command

Lists the documentation categories in the order they appear in the dataset.
With -all, lists every documentation resource.
`,
	FlagMask:   cfg.OmitTraceFlag,
	PrintFlags: true,
	Run:        runList,
}

// CmdSearch is the "springdocs search" command.
var CmdSearch = &base.Command{
	UsageLine: "springdocs search [flags] <keywords>",
	Short:     "search documentation by keywords",
	Long: `
# Search Command

Searches documentation resources by comma-separated keywords.  A resource
matches if any of its keywords contains any of the given keywords, ignoring
case.

Example:

    springdocs search jpa,security
`,
	FlagMask:   cfg.OmitTraceFlag,
	PrintFlags: true,
	Run:        runSearch,
}

// CmdCategory is the "springdocs category" command.
var CmdCategory = &base.Command{
	UsageLine: "springdocs category [flags] <category>",
	Short:     "list documentation of a category",
	Long: `
# Category Command

Lists the documentation resources of a category.  The category is matched
ignoring case.

Example:

    springdocs category "spring boot"
`,
	FlagMask:   cfg.OmitTraceFlag,
	PrintFlags: true,
	Run:        runCategory,
}

var errNoArgs = errors.New("missing argument")

var (
	listAll    bool
	jsonOutput bool
)

// output is where the commands print to.
var output io.Writer = color.Output

func init() {
	CmdList.Flag.BoolVar(&listAll, "all", false, "list all documentation resources instead of categories")
	for _, cmd := range []*base.Command{CmdList, CmdSearch, CmdCategory} {
		cmd.Flag.BoolVar(&jsonOutput, "json", false, "output in JSON format")
	}
}

// open opens the dataset set in the configuration.
func open() (knowledge.Querier, error) {
	kb, err := knowledge.Open(cfg.Dataset)
	if err != nil {
		base.SetExitStatus(base.SDatasetError)
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return kb, nil
}

func runList(ctx context.Context, cmd *base.Command, args []string) error {
	kb, err := open()
	if err != nil {
		return err
	}
	if listAll {
		return printEntries(output, kb.All())
	}
	return printCategories(output, kb.Categories())
}

func runSearch(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) == 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("%w: keywords", errNoArgs)
	}
	kb, err := open()
	if err != nil {
		return err
	}
	tokens := knowledge.SplitKeywords(strings.Join(args, ","))
	cfg.Log.DebugContext(ctx, "search", "tokens", tokens)
	return printEntries(output, kb.SearchByKeywords(tokens))
}

func runCategory(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) == 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("%w: category", errNoArgs)
	}
	kb, err := open()
	if err != nil {
		return err
	}
	return printEntries(output, kb.ByCategory(strings.Join(args, " ")))
}

var (
	titleColor = color.New(color.FgHiWhite, color.Bold)
	urlColor   = color.New(color.FgCyan, color.Underline)
	dimColor   = color.New(color.FgHiBlack)
)

func printEntries(w io.Writer, entries []knowledge.Entry) error {
	if jsonOutput {
		if entries == nil {
			entries = []knowledge.Entry{}
		}
		return printJSON(w, entries)
	}
	if len(entries) == 0 {
		_, err := dimColor.Fprintln(w, "no documentation found")
		return err
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		titleColor.Fprintln(w, e.Title)
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("category:"), e.Category)
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("version: "), e.Version)
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("url:     "), urlColor.Sprint(e.URL))
		if e.Description != "" {
			fmt.Fprintf(w, "  %s\n", e.Description)
		}
	}
	return nil
}

func printCategories(w io.Writer, cats []string) error {
	if jsonOutput {
		return printJSON(w, cats)
	}
	for _, c := range cats {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
