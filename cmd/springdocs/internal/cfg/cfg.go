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

// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rusq/osenv/v2"
)

var (
	TraceFile   string
	LogFile     string
	Verbose     bool
	JSONHandler bool

	// Dataset is the path to the dataset file.  Empty means the dataset
	// built into the binary.
	Dataset string

	Log = slog.Default()

	Version BuildInfo // version information, set by main
)

// BuildInfo is the build information of the binary.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// IsReleased returns true if the binary was built from a release.
func (b BuildInfo) IsReleased() bool {
	return b.Version != "" && b.Version != "dev" && !strings.Contains(b.Version, "-")
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s) built on: %s", b.Version, b.Commit, b.Date)
}

type FlagMask int

const (
	DefaultFlags    FlagMask = 0
	OmitDatasetFlag FlagMask = 1 << iota
	OmitTraceFlag

	OmitAll = OmitDatasetFlag | OmitTraceFlag
)

// SetBaseFlags sets base flags.
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&LogFile, "log", osenv.Value("LOG_FILE", ""), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.BoolVar(&JSONHandler, "json-log", osenv.Value("JSON_LOG", false), "log in JSON format")

	if mask&OmitTraceFlag == 0 {
		fs.StringVar(&TraceFile, "trace", osenv.Value("TRACE_FILE", ""), "trace `filename`")
	}
	if mask&OmitDatasetFlag == 0 {
		fs.StringVar(&Dataset, "dataset", osenv.Value("SPRINGDOCS_DATASET", ""), "dataset `file` in TOML format, if not specified, the\nbuilt-in dataset is used")
	}
}

// SetDebugLevel sets the log level of the standard logger to debug.
func SetDebugLevel() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}
