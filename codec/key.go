package codec

import (
	"golang.org/x/crypto/curve25519"

	"github.com/lcx/levelsync/buffer"
)

// KeySize is the width of an encoded public key.
const KeySize = curve25519.PointSize

// PublicKey is a Curve25519 public key, encoded as its raw bytes with no delimiter.
type PublicKey [KeySize]byte

func (PublicKey) StaticSize() int {
	return KeySize
}

func (k PublicKey) Encode(w buffer.Writer) {
	w.WriteBytes(k[:])
}

func (k *PublicKey) Decode(r buffer.Reader) error {
	b, err := r.ReadBytes(KeySize)
	if err != nil {
		return Wrap("PublicKey", err)
	}
	copy(k[:], b)
	return nil
}

// IsZero reports whether the key was never set.
func (k PublicKey) IsZero() bool {
	return k == PublicKey{}
}
