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

// Package mcp contains the CLI command for starting the springdocs MCP server.
package mcp

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"time"

	"github.com/rusq/osenv/v2"
	"github.com/sosodev/duration"

	"github.com/rusq/springdocs/cmd/springdocs/internal/cfg"
	"github.com/rusq/springdocs/cmd/springdocs/internal/golang/base"
	"github.com/rusq/springdocs/internal/knowledge"
	internalmcp "github.com/rusq/springdocs/internal/mcp"
	"github.com/rusq/springdocs/internal/osext"
	"github.com/rusq/springdocs/internal/viewer"
)

//go:embed assets/mcp.md
var mdMCP string

//go:embed all:assets/layouts/*
var projectsFS embed.FS

// CmdMCP is the "springdocs mcp" command.
var CmdMCP = &base.Command{
	UsageLine:  "springdocs mcp [flags]",
	Short:      "start the MCP server",
	Long:       mdMCP,
	FlagMask:   cfg.DefaultFlags,
	PrintFlags: true,
	Run:        runMCP,
}

const defListenAddr = "127.0.0.1:8484"

var (
	listenAddr       string
	transport        string
	sseTimeout       time.Duration
	rateLimit        float64
	browse           bool
	newProjectLayout string
)

const (
	layoutOpencode = "opencode"
	layoutVSCode   = "vscode"
)

var projectLayouts = []string{
	layoutOpencode,
	layoutVSCode,
}

func init() {
	CmdMCP.Flag.StringVar(&transport, "transport", osenv.Value("SPRINGDOCS_TRANSPORT", string(internalmcp.TransportStdio)), "MCP transport: \"stdio\", \"sse\" or \"both\"")
	CmdMCP.Flag.StringVar(&listenAddr, "listen", osenv.Value("SPRINGDOCS_LISTEN", defListenAddr), "address to listen on when -transport is \"sse\" or \"both\"")
	sseTimeout = envDuration("SPRINGDOCS_SSE_TIMEOUT", 0)
	CmdMCP.Flag.Var((*durationValue)(&sseTimeout), "sse-timeout", "close event streams after this `duration` (\"90s\" or \"PT1M30S\"), 0 keeps them open")
	CmdMCP.Flag.Float64Var(&rateLimit, "rate-limit", 0, "limit POST /mcp/message to `N` requests per second, 0 disables the limit")
	CmdMCP.Flag.BoolVar(&browse, "browse", osenv.Value("SPRINGDOCS_BROWSE", false), "serve the HTML documentation index on \"/\" of the HTTP transport")
	CmdMCP.Flag.StringVar(&newProjectLayout, "new", "", fmt.Sprintf("creates new project layout for AI. Type may be one of: %v", projectLayouts))
}

// parseDuration parses a Go duration ("90s") or an ISO 8601 duration
// ("PT1H30M").
func parseDuration(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	iso, err := duration.Parse(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return iso.ToTimeDuration(), nil
}

// durationValue is a flag.Value that accepts the formats of parseDuration.
type durationValue time.Duration

func (d *durationValue) String() string {
	if d == nil {
		return "0s"
	}
	return time.Duration(*d).String()
}

func (d *durationValue) Set(v string) error {
	dur, err := parseDuration(v)
	if err != nil {
		return err
	}
	*d = durationValue(dur)
	return nil
}

// envDuration returns the duration from the environment variable key, or def
// if it is not set or is not a valid duration.
func envDuration(key string, def time.Duration) time.Duration {
	v := osenv.Value(key, "")
	if v == "" {
		return def
	}
	d, err := parseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func runMCP(ctx context.Context, cmd *base.Command, args []string) error {
	if newProjectLayout != "" {
		if len(args) == 0 {
			base.SetExitStatus(base.SInvalidParameters)
			return errors.New("target directory must be provided (will be created)")
		}
		return runMCPNewProject(ctx, newProjectLayout, args[0])
	}
	return runMCPServer(ctx, cmd, args)
}

func runMCPServer(ctx context.Context, _ *base.Command, _ []string) error {
	lg := cfg.Log

	t, err := internalmcp.ParseTransport(transport)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("mcp: %w", err)
	}

	kb, err := knowledge.Open(cfg.Dataset)
	if err != nil {
		base.SetExitStatus(base.SDatasetError)
		return fmt.Errorf("mcp: open dataset: %w", err)
	}
	lg.InfoContext(ctx, "mcp: dataset loaded", "dataset", datasetName(cfg.Dataset), "entries", kb.Len())

	if t != internalmcp.TransportSSE && osext.IsTerminal(os.Stdin) {
		lg.WarnContext(ctx, "mcp: standard input is a terminal, the stdio transport expects an MCP client to write to it")
	}

	opts := []internalmcp.Option{
		internalmcp.WithLogger(lg),
		internalmcp.WithVersion(cfg.Version.Version),
		internalmcp.WithSSETimeout(sseTimeout),
		internalmcp.WithRateLimit(rateLimit),
	}
	if browse {
		opts = append(opts, internalmcp.WithIndex(viewer.New(kb, viewer.WithLogger(lg))))
	}
	srv := internalmcp.New(kb, opts...)
	if err := srv.Serve(ctx, t, listenAddr); err != nil {
		base.SetExitStatus(base.STransportError)
		return err
	}
	return nil
}

func datasetName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func runMCPNewProject(ctx context.Context, layout string, tgtDir string) error {
	// ensure we know the project type before accessing the FS
	if !slices.Contains(projectLayouts, layout) {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("unknown project layout %q. Use one of %v", layout, projectLayouts)
	}
	subfs, err := fs.Sub(projectsFS, path.Join("assets", "layouts", layout))
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("fs chdir: %w", err)
	}
	if err := confirmNonEmpty(tgtDir); err != nil {
		return err
	}
	if err := initNewProject(tgtDir, subfs); err != nil {
		return err
	}
	lg := cfg.Log
	lg.InfoContext(ctx, "SUCCESS: new project created", "in", tgtDir, "layout", layout)
	return nil
}

// confirmNonEmpty asks the user to confirm writing to a non-empty directory.
// It does nothing if the program is not running in a terminal.
func confirmNonEmpty(tgtDir string) error {
	empty, err := osext.IsEmptyDir(tgtDir)
	if err != nil || empty || !osext.IsInteractive() {
		// the missing directory errors are handled by initNewProject.
		return nil
	}
	ok, err := base.YesNo(fmt.Sprintf("Directory %q is not empty.  Continue", tgtDir))
	if err != nil {
		base.SetExitStatus(base.SUserError)
		return err
	}
	if !ok {
		base.SetExitStatus(base.SUserError)
		return base.ErrOpCancelled
	}
	return nil
}

func initNewProject(tgtDir string, fsys fs.FS) error {
	if err := osext.DirExists(tgtDir); err != nil {
		if errors.Is(err, osext.ErrNotADir) {
			base.SetExitStatus(base.SUserError)
			return fmt.Errorf("%s: %w", tgtDir, err)
		}
		// try creating the dir
		if err := os.MkdirAll(tgtDir, 0o777); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return fmt.Errorf("unable to initialise new project in %q: %w", tgtDir, err)
		}
	}
	if err := os.CopyFS(tgtDir, fsys); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("copy project files: %w", err)
	}
	return nil
}
