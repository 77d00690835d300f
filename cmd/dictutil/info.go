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

	"github.com/urfave/cli/v2"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Show information about a dictionary",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("%w: expected a single dictionary NAME", ErrFlagParse)
		}
		name := c.Args().First()

		dicts, err := openDictionaries(c)
		if err != nil {
			return err
		}
		defer closeAll(dicts)

		w := c.App.Writer
		for _, d := range dicts {
			if d.Name() != name {
				continue
			}

			_, err = fmt.Fprintf(w, "Name:        %s\n", d.Name())
			check(err)
			_, err = fmt.Fprintf(w, "Short Name:  %s\n", d.ShortName())
			check(err)
			_, err = fmt.Fprintf(w, "URL:         %s\n", d.URL())
			check(err)
			_, err = fmt.Fprintf(w, "Words:       %d\n", d.Len())
			check(err)
			if info := d.Info(); info != "" {
				_, err = fmt.Fprintf(w, "\n%s\n", info)
				check(err)
			}
			return nil
		}

		return fmt.Errorf("%w: no dictionary named %q", ErrNotFound, name)
	},
}
