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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ianlewis/go-dictd"
	"github.com/ianlewis/go-dictd/numeral"
)

// config is the dictutil configuration file.
type config struct {
	// DataDirs are searched for dictionaries when --data-dir is not given.
	DataDirs []string `toml:"data_dirs"`

	// CacheCapacity is the number of cached lookups per dictionary. A
	// negative value disables the cache.
	CacheCapacity *int `toml:"cache_capacity"`

	// CaseSensitivePrefix makes matching case sensitive.
	CaseSensitivePrefix bool `toml:"case_sensitive_prefix"`

	// Limit is the default number of matches per dictionary.
	Limit int `toml:"limit"`

	// Mmap memory maps dictionary data files.
	Mmap bool `toml:"mmap"`

	// Alphabet is the numeral alphabet of index files, "default" or
	// "base64".
	Alphabet string `toml:"alphabet"`
}

// defaultConfigPath returns the path of the user's configuration file.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dictutil", "config.toml")
}

// loadConfig reads the configuration file at path. A missing file is an
// empty configuration.
func loadConfig(path string, l *log.Logger) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debug("no config file", "path", path)
			return &config{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	for _, key := range md.Undecoded() {
		l.Warn("unknown config key", "path", path, "key", key.String())
	}
	return cfg, nil
}

// options returns the dictionary options for the configuration.
func (cfg *config) options() (*dictd.Options, error) {
	opts := *dictd.DefaultOptions
	if cfg.CacheCapacity != nil {
		opts.CacheCapacity = *cfg.CacheCapacity
	}
	opts.CaseSensitivePrefix = cfg.CaseSensitivePrefix
	opts.Mmap = cfg.Mmap

	switch strings.ToLower(cfg.Alphabet) {
	case "", "default":
		opts.Alphabet = numeral.Default
	case "base64":
		opts.Alphabet = numeral.Base64
	default:
		return nil, fmt.Errorf("%w: unknown numeral alphabet %q", ErrConfig, cfg.Alphabet)
	}
	return &opts, nil
}
