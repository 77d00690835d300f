// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dictd"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeNotFound is the exit code when no definition or match was
	// found.
	ExitCodeNotFound

	// ExitCodeFormatError is the exit code for malformed dictionary files.
	ExitCodeFormatError

	// ExitCodeIOError is the exit code for errors reading dictionary files.
	ExitCodeIOError
)

// ErrDictutil is a parent error for all command errors.
var ErrDictutil = errors.New("dictutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrDictutil)

// ErrConfig indicates an invalid configuration file.
var ErrConfig = fmt.Errorf("%w: invalid config", ErrDictutil)

// ErrNotFound indicates that nothing matched a query.
var ErrNotFound = fmt.Errorf("%w: not found", ErrDictutil)

// ErrNoDictionaries indicates that no dictionary could be opened.
var ErrNoDictionaries = fmt.Errorf("%w: no dictionaries found", ErrDictutil)

var copyrightNames = []string{
	"2021 Google LLC",
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use it.
	//
	// This is done because `dictutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode maps an error returned by the app to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse), errors.Is(err, ErrConfig):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrNotFound):
		return ExitCodeNotFound
	case errors.Is(err, dictd.ErrFormat):
		return ExitCodeFormatError
	case errors.Is(err, dictd.ErrIO), errors.Is(err, ErrNoDictionaries):
		return ExitCodeIOError
	default:
		return ExitCodeUnknownError
	}
}

// newLogger returns the logger for warnings written to w.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "dictutil",
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           level,
	})
}

// logger returns the app's logger.
func logger(c *cli.Context) *log.Logger {
	if l, ok := c.App.Metadata["logger"].(*log.Logger); ok {
		return l
	}
	return newLogger(c.App.ErrWriter, false)
}

// appConfig returns the app's configuration.
func appConfig(c *cli.Context) *config {
	if cfg, ok := c.App.Metadata["config"].(*config); ok {
		return cfg
	}
	return &config{}
}

// openDictionaries opens the dictionaries in the data directories. Failures
// are logged and skipped.
func openDictionaries(c *cli.Context) ([]*dictd.Dictionary, error) {
	cfg := appConfig(c)
	l := logger(c)

	dirs := c.StringSlice("data-dir")
	if !c.IsSet("data-dir") {
		dirs = cfg.DataDirs
		if len(dirs) == 0 {
			dirs = dictLocations()
		}
	}

	flagCfg := *cfg
	if c.IsSet("alphabet") {
		flagCfg.Alphabet = c.String("alphabet")
	}
	opts, err := flagCfg.options()
	if err != nil {
		return nil, err
	}
	if c.Bool("mmap") {
		opts.Mmap = true
	}

	var dicts []*dictd.Dictionary
	for _, dir := range dirs {
		openDicts, openErrs := dictd.OpenAll(dir, opts)
		for _, err := range openErrs {
			// Most default locations do not exist.
			if errors.Is(err, fs.ErrNotExist) && errPath(err) == dir {
				l.Debug("skipping missing directory", "dir", dir)
				continue
			}
			l.Warn("skipping dictionary", "err", err)
		}
		for _, d := range openDicts {
			l.Debug("opened dictionary", "name", d.Name(), "words", d.Len())
		}
		dicts = append(dicts, openDicts...)
	}

	if len(dicts) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDictionaries, strings.Join(dirs, ", "))
	}
	return dicts, nil
}

// errPath returns the path of a file system error.
func errPath(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	return ""
}

func closeAll(dicts []*dictd.Dictionary) {
	for _, d := range dicts {
		_ = d.Close()
	}
}

// displayName returns the name shown for a dictionary.
func displayName(d *dictd.Dictionary) string {
	if s := d.ShortName(); s != "" {
		return s
	}
	return d.Name()
}

func newDictutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search dictd dictionaries.",
		Description: strings.Join([]string{
			"dictd dictionary utility written in Go.",
			"http://github.com/ianlewis/go-dictd",
			"",
			"Index offsets are read with the dictd numeral alphabet 0-9A-Za-z+/ by",
			"default. Indexes written by dictfmt use the RFC 4648 base64 order",
			"A-Za-z0-9+/; read them with --alphabet base64 or the alphabet key in",
			"the configuration file.",
			"",
			"Configuration keys: data_dirs, cache_capacity, case_sensitive_prefix,",
			"limit, mmap, alphabet.",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include dictionaries in `DIR` (default: system dictionary locations)",
				Aliases: []string{"d"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				Value:   defaultConfigPath(),
			},
			&cli.StringFlag{
				Name:  "alphabet",
				Usage: "read index offsets with numeral alphabet `NAME`, \"default\" or \"base64\" (dictfmt indexes use base64)",
			},
			&cli.BoolFlag{
				Name:               "mmap",
				Usage:              "memory map dictionary data files",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "log debug information",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Before: func(c *cli.Context) error {
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			c.App.Metadata["logger"] = newLogger(c.App.ErrWriter, c.Bool("verbose"))

			cfg, err := loadConfig(c.String("config"), logger(c))
			if err != nil {
				return err
			}
			c.App.Metadata["config"] = cfg
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Commands: []*cli.Command{
			listCommand,
			defineCommand,
			matchCommand,
			infoCommand,
		},
	}
}
