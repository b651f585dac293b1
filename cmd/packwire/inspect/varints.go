// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/packwire/packwire/cmd/packwire/cli"
	"github.com/packwire/packwire/lib/varint"
)

// varintsParams holds the flags for "packwire varints".
type varintsParams struct {
	Signed   bool `flag:"signed,s" desc:"show the zig-zag signed interpretation of each value"`
	HexInput bool `flag:"hex,x"    desc:"treat input as hex-encoded binary"`
	JSON     bool `flag:"json,j"   desc:"emit JSON instead of a table"`
}

func varintsCommand() *cli.Command {
	var params varintsParams

	return &cli.Command{
		Name:    "varints",
		Summary: "Decode a byte stream as consecutive varints",
		Description: `Decode the input as a sequence of LEB128 varints and print one line
per value with its byte offset and encoded width.

With --signed, each value is additionally shown after zig-zag
decoding, the interpretation used for signed integers on the wire.

Decoding stops at the end of input. A truncated or over-long group
mid-stream is an error, reported with the offset where it began.`,
		Usage: "packwire varints [--signed] [--hex] [--json] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode varints from a file",
				Command:     "packwire varints lengths.bin",
			},
			{
				Description: "Decode hex input with signed interpretation",
				Command:     "echo '05 45' | packwire varints --hex --signed",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("varints", &params)
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("varints takes no positional arguments, got %q", remainingArgs[0])
			}
			return dumpVarints(data, os.Stdout, params.Signed, params.JSON)
		},
	}
}

// varintEntry is one decoded value, as reported by dumpVarints.
type varintEntry struct {
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
	Value  uint64 `json:"value"`
	Signed *int64 `json:"signed,omitempty"`
}

// dumpVarints decodes data as consecutive varints and writes a report
// to w.
func dumpVarints(data []byte, w io.Writer, signed bool, asJSON bool) error {
	reader := bytes.NewReader(data)
	entries := []varintEntry{}

	for {
		offset := len(data) - reader.Len()
		value, err := varint.ReadUvarint(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("varint at offset %d: %w", offset, err)
		}

		entry := varintEntry{
			Offset: offset,
			Width:  len(data) - reader.Len() - offset,
			Value:  value,
		}
		if signed {
			signedValue := varint.Unzigzag(value)
			entry.Signed = &signedValue
		}
		entries = append(entries, entry)
	}

	if asJSON {
		return writeJSON(w, entries)
	}

	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	if signed {
		fmt.Fprintln(tw, "OFFSET\tWIDTH\tVALUE\tSIGNED")
		for _, entry := range entries {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", entry.Offset, entry.Width, entry.Value, *entry.Signed)
		}
	} else {
		fmt.Fprintln(tw, "OFFSET\tWIDTH\tVALUE")
		for _, entry := range entries {
			fmt.Fprintf(tw, "%d\t%d\t%d\n", entry.Offset, entry.Width, entry.Value)
		}
	}
	return tw.Flush()
}
