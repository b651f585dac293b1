// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeHexInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "lowercase hex",
			input: "03616263",
			want:  []byte{0x03, 0x61, 0x62, 0x63},
		},
		{
			name:  "uppercase hex",
			input: "03616263FF",
			want:  []byte{0x03, 0x61, 0x62, 0x63, 0xff},
		},
		{
			name:  "hex with spaces",
			input: "03 61 62 63",
			want:  []byte{0x03, 0x61, 0x62, 0x63},
		},
		{
			name:  "hex with newlines",
			input: "0361\n6263\n",
			want:  []byte{0x03, 0x61, 0x62, 0x63},
		},
		{
			name:  "hex with tabs and mixed whitespace",
			input: "03\t61 62\n63",
			want:  []byte{0x03, 0x61, 0x62, 0x63},
		},
		{
			name:    "invalid hex",
			input:   "not hex data",
			wantErr: true,
		},
		{
			name:    "empty after whitespace",
			input:   "   \n\t  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeHexInput([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestReadInput_FileArg(t *testing.T) {
	content := []byte("test content for file arg")
	tempFile := filepath.Join(t.TempDir(), "test.bin")
	if err := os.WriteFile(tempFile, content, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	data, remainingArgs, err := readInput([]string{tempFile}, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("data = %q, want %q", data, content)
	}
	if len(remainingArgs) != 0 {
		t.Errorf("remainingArgs = %v, want empty", remainingArgs)
	}
}

func TestReadInput_FileArgWithLeadingArgs(t *testing.T) {
	content := []byte("file content")
	tempFile := filepath.Join(t.TempDir(), "input.bin")
	if err := os.WriteFile(tempFile, content, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	data, remainingArgs, err := readInput([]string{"extra", tempFile}, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("data = %q, want %q", data, content)
	}
	if len(remainingArgs) != 1 || remainingArgs[0] != "extra" {
		t.Errorf("remainingArgs = %v, want [\"extra\"]", remainingArgs)
	}
}

func TestReadInput_HexModeFromFile(t *testing.T) {
	hexContent := []byte("03 61 62 63\n")
	tempFile := filepath.Join(t.TempDir(), "test.hex")
	if err := os.WriteFile(tempFile, hexContent, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	data, _, err := readInput([]string{tempFile}, true)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	want := []byte{0x03, 0x61, 0x62, 0x63}
	if !bytes.Equal(data, want) {
		t.Errorf("data = %x, want %x", data, want)
	}
}

func TestReadInput_DirectoryNotTreatedAsFile(t *testing.T) {
	directory := t.TempDir()

	// A directory name as the last arg should not be treated as a
	// file. readInput should fall through to stdin. Since stdin in
	// tests is /dev/null, this will return empty data.
	data, remainingArgs, err := readInput([]string{directory}, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	// The directory arg stays in remainingArgs because it wasn't consumed.
	if len(remainingArgs) != 1 {
		t.Errorf("remainingArgs length = %d, want 1", len(remainingArgs))
	}
	_ = data
}
