package net

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/box"

	"github.com/lcx/levelsync/codec"
)

// NonceSize is the width of the random nonce prepended to every sealed body.
const NonceSize = 24

// ErrOpenFailed is returned when a sealed body fails authentication.
var ErrOpenFailed = errors.New("net: sealed body failed to open")

// PrivateKey is the secret half of a session key pair.
type PrivateKey [codec.KeySize]byte

// GenerateKeyPair creates a fresh session key pair.
func GenerateKeyPair() (codec.PublicKey, *PrivateKey, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return codec.PublicKey{}, nil, fmt.Errorf("net: generate key pair: %w", err)
	}
	return codec.PublicKey(*pub), (*PrivateKey)(priv), nil
}

// SessionBox seals and opens the bodies of encrypted packets for one connection.
// The shared key is computed once; key exchange happens elsewhere.
type SessionBox struct {
	shared [32]byte
}

// NewSessionBox precomputes the shared key between our private key and the peer's
// public key.
func NewSessionBox(peer codec.PublicKey, own *PrivateKey) *SessionBox {
	sb := &SessionBox{}
	box.Precompute(&sb.shared, (*[32]byte)(&peer), (*[32]byte)(own))
	return sb
}

// SealedSize returns the width of a sealed body holding n plaintext bytes.
func SealedSize(n int) int {
	return NonceSize + box.Overhead + n
}

// Seal encrypts plain and returns nonce followed by the ciphertext.
func (sb *SessionBox) Seal(plain []byte) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("net: read nonce: %w", err)
	}
	out := make([]byte, NonceSize, SealedSize(len(plain)))
	copy(out, nonce[:])
	return box.SealAfterPrecomputation(out, plain, &nonce, &sb.shared), nil
}

// Open reverses Seal.
func (sb *SessionBox) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < NonceSize+box.Overhead {
		return nil, codec.Wrap("sealed body", codec.ErrUnexpectedEOF)
	}
	var nonce [NonceSize]byte
	copy(nonce[:], sealed[:NonceSize])
	plain, ok := box.OpenAfterPrecomputation(nil, sealed[NonceSize:], &nonce, &sb.shared)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plain, nil
}

// SealPacket seals the body of an encoded packet whose header carries the encrypted
// flag. Other packets are returned unchanged.
func (sb *SessionBox) SealPacket(pkt []byte) ([]byte, error) {
	h, err := DecodeHeader(pkt)
	if err != nil {
		return nil, err
	}
	if !h.Encrypted {
		return pkt, nil
	}
	sealed, err := sb.Seal(pkt[HeaderSize:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, HeaderSize+len(sealed))
	out = append(out, pkt[:HeaderSize]...)
	return append(out, sealed...), nil
}

// OpenPacket returns pkt with its body opened when the header carries the encrypted
// flag. The result can be passed to DecodePacket.
func (sb *SessionBox) OpenPacket(pkt []byte) ([]byte, error) {
	h, err := DecodeHeader(pkt)
	if err != nil {
		return nil, err
	}
	if !h.Encrypted {
		return pkt, nil
	}
	plain, err := sb.Open(pkt[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h, err)
	}
	out := make([]byte, 0, HeaderSize+len(plain))
	out = append(out, pkt[:HeaderSize]...)
	return append(out, plain...), nil
}
