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
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"
)

var dictFlag = &cli.StringFlag{
	Name:    "dict",
	Usage:   "only use the dictionary named `NAME`",
	Aliases: []string{"D"},
}

var defineCommand = &cli.Command{
	Name:      "define",
	Aliases:   []string{"query"},
	Usage:     "Look up the definitions of a word",
	ArgsUsage: "WORD",
	Description: `Look up the definitions of WORD in all dictionaries. The word must
match a headword exactly.`,
	Flags: []cli.Flag{
		dictFlag,
		&cli.BoolFlag{
			Name:               "plain",
			Usage:              "convert HTML definitions to plain text",
			Aliases:            []string{"p"},
			DisableDefaultText: true,
		},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("%w: expected a single WORD", ErrFlagParse)
		}
		word := c.Args().First()
		name := c.String("dict")

		dicts, err := openDictionaries(c)
		if err != nil {
			return err
		}
		defer closeAll(dicts)

		w := c.App.Writer
		found := false
		for _, d := range dicts {
			if name != "" && d.Name() != name {
				continue
			}

			e, err := d.Define(word)
			if err != nil {
				return err
			}
			if e == nil {
				continue
			}
			found = true

			_, err = fmt.Fprintf(w, "From %s:\n\n", displayName(d))
			check(err)
			for _, def := range e.Definitions() {
				if c.Bool("plain") {
					def = html2text.HTML2Text(def)
				}
				_, err = fmt.Fprintf(w, "%s\n\n", strings.TrimRight(def, "\n"))
				check(err)
			}
		}

		if !found {
			return fmt.Errorf("%w: no definitions for %q", ErrNotFound, word)
		}
		return nil
	},
}
