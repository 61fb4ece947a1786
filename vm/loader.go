package vm

import (
	"fmt"
	"io"
)

// Load reads each reader in argument order, concatenating them into a
// single contiguous program image written to memory starting at address 0,
// and advances IP to one past the last loaded word. Bytes are consumed two
// at a time and interpreted as big-endian words (first byte is the high 8
// bits), per the wire format. A trailing odd byte across the whole
// concatenated stream is a fatal load error. The loaded word count is also
// recorded on the Machine (see Machine.Loaded) so a decode-to-completion
// loop has a real end-of-image bound instead of relying on a decode error
// that the zero-initialized remainder of memory will never produce.
func Load(m *Machine, readers ...io.Reader) error {
	m.SetIP(0)

	var pending []byte
	for _, r := range readers {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoad, err)
		}
		pending = append(pending, data...)
	}

	if len(pending)%2 != 0 {
		return fmt.Errorf("%w: odd number of bytes (%d)", ErrLoad, len(pending))
	}

	addr := uint16(0)
	for i := 0; i < len(pending); i += 2 {
		word := uint16(pending[i])<<8 | uint16(pending[i+1])
		m.Memory[addr] = word
		addr++
	}
	m.SetIP(addr)
	m.setLoaded(addr)

	return nil
}
