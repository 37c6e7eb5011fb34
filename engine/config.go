// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the merged CLI-and-project configuration a run starts
// from, per SPEC_FULL.md §6's "ambient CLI" expansion. Fields tagged
// `toml` come from an optional mash.toml project file; CLI flags are
// layered on top of (and override) whatever that file sets.
type Config struct {
	Path       string   `toml:"-"`
	Clean      bool     `toml:"-"`
	Keep       string   `toml:"keep"`
	Search     []string `toml:"search"`
	Debug      bool     `toml:"debug"`
	Watch      bool     `toml:"watch"`
	ConfigFile string   `toml:"-"`
}

// LoadFile reads a mash.toml-style project file, returning a zero
// Config (not an error) if path does not exist.
func LoadFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("engine: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("engine: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Merge layers cli over file: a CLI value wins whenever it is
// non-zero; repeatable --search directories are appended to the
// file's list rather than replacing it.
func Merge(file, cli Config) Config {
	out := file
	out.Path = cli.Path
	out.Clean = cli.Clean
	out.ConfigFile = cli.ConfigFile
	if cli.Keep != "" {
		out.Keep = cli.Keep
	}
	if len(cli.Search) > 0 {
		out.Search = append(append([]string{}, file.Search...), cli.Search...)
	}
	if cli.Debug {
		out.Debug = true
	}
	if cli.Watch {
		out.Watch = true
	}
	return out
}
