// Package romload resolves a CLI ROM argument into raw cartridge bytes:
// a plain image is read directly, a .7z archive has its first entry
// decompressed, and a missing argument falls back to a native file
// picker when one is available.
package romload

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/sevenzip"
	"github.com/nkato/goboy/internal/romerr"
	"github.com/sqweek/dialog"
)

const maxROMSize = 8 * 1024 * 1024

var sevenZipMagic = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}

// Resolve returns the ROM path to load: path if non-empty, otherwise a
// native "choose ROM" dialog when headless is false. An empty path with
// headless true is an error, since there is nothing to load.
func Resolve(path string, headless bool) (string, error) {
	if path != "" {
		return path, nil
	}
	if headless {
		return "", fmt.Errorf("romload: %w: no rom path given", romerr.ErrUnreadable)
	}

	chosen, err := dialog.File().Filter("Game Boy ROM", "gb", "gbc", "7z").Load()
	if err != nil {
		return "", fmt.Errorf("romload: %w: %v", romerr.ErrUnreadable, err)
	}
	return chosen, nil
}

// Load reads path, transparently decompressing it first if it is a .7z
// archive, and returns its raw bytes.
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romload: %w: %v", romerr.ErrUnreadable, err)
	}
	if len(raw) == 0 {
		return nil, romerr.ErrEmpty
	}
	if len(raw) > maxROMSize && !bytes.HasPrefix(raw, sevenZipMagic) {
		return nil, fmt.Errorf("romload: %w: %d bytes", romerr.ErrTooLarge, len(raw))
	}

	if !bytes.HasPrefix(raw, sevenZipMagic) {
		return raw, nil
	}

	return extractFirstEntry(path)
}

func extractFirstEntry(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("romload: %w: opening archive: %v", romerr.ErrUnreadable, err)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return nil, fmt.Errorf("romload: %w: empty archive", romerr.ErrEmpty)
	}

	entry, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("romload: %w: reading archive entry: %v", romerr.ErrUnreadable, err)
	}
	defer entry.Close()

	data, err := io.ReadAll(io.LimitReader(entry, maxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("romload: %w: %v", romerr.ErrUnreadable, err)
	}
	if len(data) > maxROMSize {
		return nil, fmt.Errorf("romload: %w: decompressed size exceeds maximum", romerr.ErrTooLarge)
	}
	return data, nil
}
