// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements the packwire command tree: diagnostic
// tools for looking inside encoded buffers and container frames.
//
// Three subcommands cover the three layers of the format:
//
//   - "varints" decodes a byte stream as consecutive LEB128 varints,
//     showing the offset, width, and value of each.
//   - "table" dumps the string table at the front of a
//     deduplication-mode buffer.
//   - "container" parses a container frame header, verifies its
//     checksum, and reports compression and size information.
//
// All subcommands read from a trailing file path argument or stdin,
// accept --hex for hex-encoded input, and offer --json for
// machine-readable output.
package inspect
