package types

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// SizeLevelEntry is the encoded width of LevelEntry.
const SizeLevelEntry = codec.SizeI32 + codec.SizeU16

// LevelEntry is one row of the level list: a level and how many players are on it.
type LevelEntry struct {
	LevelID int32
	Count   uint16
}

func (LevelEntry) StaticSize() int { return SizeLevelEntry }

func (e LevelEntry) Encode(w buffer.Writer) {
	w.WriteI32(e.LevelID)
	w.WriteU16(e.Count)
}

func (e *LevelEntry) Decode(r buffer.Reader) (err error) {
	if e.LevelID, err = r.ReadI32(); err != nil {
		return codec.Wrap("levelID", err)
	}
	if e.Count, err = r.ReadU16(); err != nil {
		return codec.Wrap("count", err)
	}
	return nil
}

// ClampCount converts a roster size to the wire count, saturating at the u16 max.
func ClampCount(n int) uint16 {
	if n > 0xFFFF {
		return 0xFFFF
	}
	return uint16(n)
}
