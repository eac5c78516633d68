package codec

import "github.com/lcx/levelsync/buffer"

// RemainderBytes is an opaque trailing payload. Decoding consumes every remaining
// byte of the buffer without validation. The block is immutable once built: it is
// copied in on construction and decode, and must not be modified through Bytes.
type RemainderBytes struct {
	data []byte
}

// NewRemainderBytes copies b into a new block.
func NewRemainderBytes(b []byte) RemainderBytes {
	return RemainderBytes{data: append([]byte(nil), b...)}
}

// Bytes returns the block. Callers must treat it as read-only.
func (rb RemainderBytes) Bytes() []byte {
	return rb.data
}

func (rb RemainderBytes) Len() int {
	return len(rb.data)
}

func (rb RemainderBytes) EncodedSize() int {
	return len(rb.data)
}

func (rb RemainderBytes) Encode(w buffer.Writer) {
	w.WriteBytes(rb.data)
}

func (rb *RemainderBytes) Decode(r buffer.Reader) error {
	rb.data = append([]byte(nil), r.ReadRemaining()...)
	return nil
}
