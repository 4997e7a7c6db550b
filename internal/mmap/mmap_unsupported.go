//go:build !(linux || darwin) || wasm
// +build !linux,!darwin wasm

// Package mmap provides a read-only memory-mapped view of a log file.
// On platforms without mmap support the whole file is read instead.
package mmap

import (
	"fmt"
	"os"
)

// File holds an immutable byte view of an opened file.
type File struct {
	data []byte
}

// Open reads path fully into memory.
func Open(path string) (*File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{data: buf}, nil
}

// Bytes returns the shared read-only buffer.
func (f *File) Bytes() []byte { return f.data }

// Close releases the buffer.
func (f *File) Close() error {
	f.data = nil
	return nil
}
