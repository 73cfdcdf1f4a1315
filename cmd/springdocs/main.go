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

// Command springdocs is the Model Context Protocol server over the Spring
// documentation index.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rusq/springdocs/cmd/springdocs/internal/cfg"
	"github.com/rusq/springdocs/cmd/springdocs/internal/golang/base"
	"github.com/rusq/springdocs/cmd/springdocs/internal/golang/help"
	"github.com/rusq/springdocs/cmd/springdocs/internal/mcp"
	"github.com/rusq/springdocs/cmd/springdocs/internal/query"
)

// set by goreleaser
var (
	version = "dev"
	commit  = "placeholder"
	date    = "unknown"
)

// secrets defines the names of the supported files that we load the
// environment from.  Inexperienced windows users might have bad experience
// trying to create .env file with the notepad as it will battle for having
// the "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func init() {
	base.Springdocs.Commands = []*base.Command{
		mcp.CmdMCP,
		query.CmdList,
		query.CmdSearch,
		query.CmdCategory,
		CmdVersion,
	}
	cfg.Version = cfg.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var errUnknownCommand = errors.New("unknown command")

func main() {
	flag.Usage = mainUsage
	base.Usage = mainUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		mainUsage()
	}
	if args[0] == "help" {
		if err := help.Help(os.Stdout, args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		base.Exit()
	}

	loadSecrets(secrets)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := invoke(ctx, args); err != nil {
		if errors.Is(err, errUnknownCommand) {
			fmt.Fprintf(os.Stderr, "springdocs %s: %s\nRun 'springdocs help' for usage.\n", args[0], err)
		} else {
			slog.ErrorContext(ctx, "command failed", "command", args[0], "error", err)
		}
		base.SetExitStatus(base.SGenericError)
	}
	stop()
	base.Exit()
}

// invoke finds the command and runs it with args.
func invoke(ctx context.Context, args []string) error {
	cmd, cmdArgs := findCommand(base.Springdocs, args)
	if cmd == nil || !cmd.Runnable() {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("%w: %q", errUnknownCommand, args[0])
	}
	if !cmd.CustomFlags {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		cmd.Flag.Usage = func() { cmd.Usage() }
		if err := cmd.Flag.Parse(cmdArgs); err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			return err
		}
		cmdArgs = cmd.Flag.Args()
	}

	lg, err := initLog(cfg.LogFile, cfg.JSONHandler, cfg.Verbose)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	cfg.Log = lg

	stopTrace := initTrace(cfg.TraceFile)
	defer stopTrace()

	lg.DebugContext(ctx, "running command", "command", cmd.LongName(), "version", cfg.Version.Version)
	return cmd.Run(ctx, cmd, cmdArgs)
}

// findCommand walks the command tree by the leading args and returns the
// deepest matching command with the remaining args.
func findCommand(root *base.Command, args []string) (*base.Command, []string) {
	cmd := root
	for len(args) > 0 {
		var next *base.Command
		for _, sub := range cmd.Commands {
			if sub.Name() == args[0] {
				next = sub
				break
			}
		}
		if next == nil {
			break
		}
		cmd, args = next, args[1:]
		if len(cmd.Commands) == 0 {
			break
		}
	}
	if cmd == root {
		return nil, args
	}
	return cmd, args
}

func mainUsage() {
	if err := help.PrintUsage(os.Stderr, base.Springdocs); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	base.SetExitStatus(base.SHelpRequested)
	base.Exit()
}

// loadSecrets load the environment from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
