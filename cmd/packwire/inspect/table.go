// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/packwire/packwire/cmd/packwire/cli"
	"github.com/packwire/packwire/lib/dedup"
)

// tableParams holds the flags for "packwire table".
type tableParams struct {
	HexInput bool `flag:"hex,x"  desc:"treat input as hex-encoded binary"`
	JSON     bool `flag:"json,j" desc:"emit JSON instead of a table"`
}

func tableCommand() *cli.Command {
	var params tableParams

	return &cli.Command{
		Name:    "table",
		Summary: "Dump the string table of a deduplicated buffer",
		Description: `Parse the string table at the front of a buffer encoded with string
deduplication enabled and print each entry with the index that
references it in the payload.

The payload after the table is not decoded (that requires the
caller's type definitions); its size is reported so truncation is
visible at a glance.`,
		Usage: "packwire table [--hex] [--json] [file]",
		Examples: []cli.Example{
			{
				Description: "Dump the table from an encoded file",
				Command:     "packwire table record.bin",
			},
			{
				Description: "Dump a table from hex input",
				Command:     "echo '02 01 61 01 62 00 01' | packwire table --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("table", &params)
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("table takes no positional arguments, got %q", remainingArgs[0])
			}
			return dumpTable(data, os.Stdout, params.JSON)
		},
	}
}

// tableEntry is one string table entry, as reported by dumpTable.
type tableEntry struct {
	Index  int    `json:"index"`
	Length int    `json:"length"`
	Value  string `json:"value"`
}

// tableReport is the JSON shape of a table dump.
type tableReport struct {
	Entries      []tableEntry `json:"entries"`
	PayloadBytes int          `json:"payload_bytes"`
}

// dumpTable parses the string table at the front of data and writes a
// report to w. Bytes after the table are counted, not decoded.
func dumpTable(data []byte, w io.Writer, asJSON bool) error {
	reader := bytes.NewReader(data)
	table, err := dedup.ReadFrom(reader)
	if err != nil {
		return fmt.Errorf("parse string table: %w", err)
	}

	report := tableReport{
		Entries:      []tableEntry{},
		PayloadBytes: reader.Len(),
	}
	for index := range table.Len() {
		value, err := table.Lookup(uint64(index))
		if err != nil {
			return err
		}
		report.Entries = append(report.Entries, tableEntry{
			Index:  index,
			Length: len(value),
			Value:  value,
		})
	}

	if asJSON {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tLENGTH\tVALUE")
	for _, entry := range report.Entries {
		fmt.Fprintf(tw, "%d\t%d\t%q\n", entry.Index, entry.Length, entry.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%d entries, %d payload bytes after table\n",
		len(report.Entries), report.PayloadBytes)
	return err
}
