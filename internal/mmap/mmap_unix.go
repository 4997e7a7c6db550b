//go:build (linux || darwin) && !wasm
// +build linux darwin
// +build !wasm

// Package mmap provides a read-only memory-mapped view of a log file.
// Mapping makes opening O(1) in file size: the kernel pages bytes in on
// demand, so memory stays proportional to what is actually read.
//
// If mmap fails (network filesystem, special file, permissions, etc.)
// Open falls back to reading the whole file into memory.
package mmap

import (
	"fmt"
	"os"
	"syscall"
)

// File holds an immutable byte view of an opened file. The slice must
// never be written to; it stays valid until Close.
type File struct {
	data   []byte
	mapped bool
}

// Open maps path read-only. Empty files yield an empty, non-nil buffer.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := stat.Size()

	if size == 0 {
		return &File{data: []byte{}}, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		// mmap failed (could be a network filesystem, pipe, etc.);
		// fall back to a plain read.
		buf, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("mmap %s: %w", path, err)
		}
		return &File{data: buf}, nil
	}

	return &File{data: data, mapped: true}, nil
}

// Bytes returns the shared read-only buffer.
func (f *File) Bytes() []byte { return f.data }

// Close unmaps the buffer. The slice returned by Bytes must not be used
// afterwards.
func (f *File) Close() error {
	if !f.mapped {
		f.data = nil
		return nil
	}
	data := f.data
	f.data = nil
	f.mapped = false
	return syscall.Munmap(data)
}
