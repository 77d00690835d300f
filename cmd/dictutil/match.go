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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var matchCommand = &cli.Command{
	Name:      "match",
	Usage:     "List headwords starting with a prefix",
	ArgsUsage: "PREFIX",
	Description: `List the headwords starting with PREFIX in all dictionaries. Case and
diacritics are ignored unless the configuration enables case sensitive
matching.`,
	Flags: []cli.Flag{
		dictFlag,
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "list at most `N` headwords per dictionary, 0 for no limit",
			Aliases: []string{"l"},
		},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("%w: expected a single PREFIX", ErrFlagParse)
		}
		prefix := c.Args().First()
		name := c.String("dict")

		limit := appConfig(c).Limit
		if c.IsSet("limit") {
			limit = c.Int("limit")
		}

		dicts, err := openDictionaries(c)
		if err != nil {
			return err
		}
		defer closeAll(dicts)

		tbl := table.New("Dictionary", "Word").WithWriter(c.App.Writer)
		matches := 0
		for _, d := range dicts {
			if name != "" && d.Name() != name {
				continue
			}

			words, err := d.PrefixSearch(prefix, limit)
			if err != nil {
				return err
			}
			for _, word := range words {
				tbl.AddRow(d.Name(), word)
			}
			matches += len(words)
		}

		if matches == 0 {
			return fmt.Errorf("%w: no matches for %q", ErrNotFound, prefix)
		}
		tbl.Print()
		return nil
	},
}
