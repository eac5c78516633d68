package codec

import "github.com/lcx/levelsync/buffer"

// Bits is a set of up to eight flags packed into one byte.
type Bits uint8

// SizeBits is the encoded width of Bits.
const SizeBits = SizeU8

func (b Bits) Get(i uint) bool {
	return b&(1<<i) != 0
}

func (b *Bits) Set(i uint, v bool) {
	if v {
		*b |= 1 << i
		return
	}
	*b &^= 1 << i
}

func (Bits) StaticSize() int {
	return SizeBits
}

func (b Bits) Encode(w buffer.Writer) {
	w.WriteU8(uint8(b))
}

func (b *Bits) Decode(r buffer.Reader) error {
	v, err := r.ReadU8()
	if err != nil {
		return Wrap("Bits", err)
	}
	*b = Bits(v)
	return nil
}
