// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/packwire/packwire/cmd/packwire/cli"
	"github.com/packwire/packwire/lib/container"
)

// containerParams holds the flags for "packwire container".
type containerParams struct {
	HexInput bool `flag:"hex,x"  desc:"treat input as hex-encoded binary"`
	JSON     bool `flag:"json,j" desc:"emit JSON instead of a table"`
}

func containerCommand() *cli.Command {
	var params containerParams

	return &cli.Command{
		Name:    "container",
		Summary: "Inspect a container frame header",
		Description: `Parse a container frame, verify its payload checksum, and report
the header: format version, compression algorithm, metadata, digest,
and payload sizes.

The payload itself is not written anywhere. A corrupted frame (bad
magic, unknown version, checksum mismatch) is an error.`,
		Usage: "packwire container [--hex] [--json] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a frame",
				Command:     "packwire container snapshot.pkw",
			},
			{
				Description: "Inspect a frame as JSON",
				Command:     "packwire container --json < snapshot.pkw",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("container", &params)
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("container takes no positional arguments, got %q", remainingArgs[0])
			}
			return dumpContainer(data, os.Stdout, params.JSON)
		},
	}
}

// containerReport is the JSON shape of a frame inspection.
type containerReport struct {
	Version     uint8             `json:"version"`
	Compression string            `json:"compression"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Checksum    string            `json:"checksum"`
	PayloadSize int               `json:"payload_size"`
	StoredSize  int               `json:"stored_size"`
}

// dumpContainer inspects a frame and writes a report to w.
func dumpContainer(data []byte, w io.Writer, asJSON bool) error {
	info, err := container.Inspect(data)
	if err != nil {
		return err
	}

	report := containerReport{
		Version:     info.Version,
		Compression: info.Compression.String(),
		Metadata:    info.Metadata,
		Checksum:    info.Checksum.String(),
		PayloadSize: info.PayloadSize,
		StoredSize:  info.StoredSize,
	}

	if asJSON {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "version\t%d\n", report.Version)
	fmt.Fprintf(tw, "compression\t%s\n", report.Compression)
	fmt.Fprintf(tw, "checksum\t%s\n", report.Checksum)
	fmt.Fprintf(tw, "payload size\t%d\n", report.PayloadSize)
	fmt.Fprintf(tw, "stored size\t%d\n", report.StoredSize)
	for key, value := range report.Metadata {
		fmt.Fprintf(tw, "meta %s\t%s\n", key, value)
	}
	return tw.Flush()
}
