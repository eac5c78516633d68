package net

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lcx/levelsync/codec"
)

var (
	// ErrUnknownPacket is returned when an id has no registration.
	ErrUnknownPacket = errors.New("net: unknown packet id")
	// ErrNotDecodable is returned for a registered packet that has no declared body.
	ErrNotDecodable = errors.New("net: packet has no decodable body")
)

// PacketInfo describes one registered packet type.
type PacketInfo struct {
	ID        uint16
	Name      string
	Reliable  bool
	Encrypted bool
	Kind      SizeKind
	New       func() Packet // returns a zero value ready to decode into
}

// Decodable reports whether bodies of this packet can be parsed generically.
func (pi *PacketInfo) Decodable() bool {
	if pi == nil || pi.New == nil {
		return false
	}
	_, ok := pi.New().(codec.Decoder)
	return ok
}

// PacketRegistry maps packet ids to their descriptions. Registration happens at
// startup; once serving, the registry is only read and is safe to share.
type PacketRegistry struct {
	infos map[uint16]*PacketInfo
}

// NewPacketRegistry creates an empty registry.
func NewPacketRegistry() *PacketRegistry {
	return &PacketRegistry{
		infos: make(map[uint16]*PacketInfo),
	}
}

// Register adds pi. Registering the same name under the same id again replaces the
// entry; a different name on an existing id is an error.
func (r *PacketRegistry) Register(pi *PacketInfo) error {
	if pi == nil || pi.New == nil {
		return errors.New("net: invalid packet info")
	}
	if p, ok := r.infos[pi.ID]; ok && p.Name != pi.Name {
		return fmt.Errorf("net: packet id %d already registered as %s", pi.ID, p.Name)
	}
	r.infos[pi.ID] = pi
	return nil
}

// RegisterPacket registers packet type T under name, deriving the id, channel and
// size kind from its zero value.
func RegisterPacket[T any, P interface {
	*T
	Packet
}](r *PacketRegistry, name string) error {
	p := P(new(T))
	return r.Register(&PacketInfo{
		ID:        p.PacketID(),
		Name:      name,
		Reliable:  p.Reliable(),
		Encrypted: p.Encrypted(),
		Kind:      KindOf(p),
		New:       func() Packet { return P(new(T)) },
	})
}

// Info returns the registration for id.
func (r *PacketRegistry) Info(id uint16) (*PacketInfo, bool) {
	pi, ok := r.infos[id]
	return pi, ok
}

// Contains reports whether id is registered.
func (r *PacketRegistry) Contains(id uint16) bool {
	_, ok := r.infos[id]
	return ok
}

// Create returns a fresh value of the packet registered under id.
func (r *PacketRegistry) Create(id uint16) (Packet, error) {
	pi, ok := r.infos[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPacket, id)
	}
	return pi.New(), nil
}

// Name returns the registered name of id, or its number when unknown.
func (r *PacketRegistry) Name(id uint16) string {
	if pi, ok := r.infos[id]; ok {
		return pi.Name
	}
	return fmt.Sprintf("#%d", id)
}

// IDs returns the ascending ids whose registration passes filter. A nil filter
// accepts everything.
func (r *PacketRegistry) IDs(filter func(pi *PacketInfo) bool) []uint16 {
	ids := make([]uint16, 0, len(r.infos))
	for id, pi := range r.infos {
		if filter != nil && !filter(pi) {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered packets.
func (r *PacketRegistry) Len() int {
	return len(r.infos)
}
