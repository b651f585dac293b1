// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON encodes value as pretty-printed JSON and writes it to w
// with a trailing newline.
func writeJSON(w io.Writer, value any) error {
	output, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
