// Package state makes save-state compression transparent to callers of
// gameboy.GameBoy.SaveState/LoadState. The raw byte stream those methods
// produce is brotli-compressed before being written to disk and
// decompressed before being handed back, so a save file on disk is
// roughly a third the size of the flat Stater buffer.
package state

import (
	"fmt"

	"github.com/google/brotli/go/cbrotli"
)

// quality trades encode time for ratio. 9 is the teacher's choice for
// a one-shot sync payload rather than the per-frame path's lower
// setting, since a save file is written far less often than a frame
// is sent.
const quality = 9

// Encode brotli-compresses data, the form gameboy.GameBoy.SaveState's
// raw byte stream should take before being written to a save file.
func Encode(data []byte) ([]byte, error) {
	out, err := cbrotli.Encode(data, cbrotli.WriterOptions{Quality: quality})
	if err != nil {
		return nil, fmt.Errorf("state: encoding: %w", err)
	}
	return out, nil
}

// Decode reverses Encode, returning the raw byte stream
// gameboy.GameBoy.LoadState expects.
func Decode(data []byte) ([]byte, error) {
	out, err := cbrotli.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("state: decoding: %w", err)
	}
	return out, nil
}
