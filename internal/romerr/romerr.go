// Package romerr defines the sentinel errors a ROM load can fail with, so
// callers can distinguish them with errors.Is instead of parsing messages.
package romerr

import "errors"

var (
	// ErrUnreadable is returned when the ROM path is missing or the file
	// cannot be opened/read.
	ErrUnreadable = errors.New("romerr: rom unreadable")

	// ErrEmpty is returned when the ROM file contains no bytes.
	ErrEmpty = errors.New("romerr: rom empty")

	// ErrTooLarge is returned when the ROM exceeds the 8 MiB maximum
	// cartridge size.
	ErrTooLarge = errors.New("romerr: rom exceeds maximum cartridge size")

	// ErrUnsupportedMBC is returned when the header's cartridge type byte
	// names a controller this module does not implement.
	ErrUnsupportedMBC = errors.New("romerr: unsupported cartridge controller")
)
