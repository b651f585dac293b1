// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"github.com/packwire/packwire/cmd/packwire/cli"
)

// Command returns the root "packwire" command.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "packwire",
		Summary: "Inspect packwire-encoded data",
		Description: `Diagnostic tools for packwire-encoded buffers and container frames.

An encoded buffer is opaque without the type definitions it was
written with, but its building blocks are not: varint sequences, the
string table of a deduplicated buffer, and container frame headers
can all be examined directly.

All subcommands read from an optional trailing file path argument or
from stdin, and accept --hex for hex-encoded input.`,
		Subcommands: []*cli.Command{
			varintsCommand(),
			tableCommand(),
			containerCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Decode a stream of varints",
				Command:     "packwire varints --hex <<< 'ac 02 05 45'",
			},
			{
				Description: "Dump the string table of an encoded record",
				Command:     "packwire table record.bin",
			},
			{
				Description: "Inspect a container frame",
				Command:     "packwire container snapshot.pkw",
			},
		},
	}
}
