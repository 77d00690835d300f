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

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List dictionaries",
	Description: `List all dictionaries in the data directories with their
short name, number of index entries and URL.`,
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 0 {
			return fmt.Errorf("%w: unexpected arguments", ErrFlagParse)
		}

		dicts, err := openDictionaries(c)
		if err != nil {
			return err
		}
		defer closeAll(dicts)

		tbl := table.New("Name", "Short Name", "Words", "URL").WithWriter(c.App.Writer)
		for _, d := range dicts {
			tbl.AddRow(d.Name(), d.ShortName(), d.Len(), d.URL())
		}
		tbl.Print()

		return nil
	},
}
