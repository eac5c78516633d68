package types

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// SecondIcon is the second icon of a dual-mode player, absent outside dual mode.
type SecondIcon = codec.Option[SpecificIconData, *SpecificIconData]

// SizePlayerData is the encoded width of PlayerData. The second icon always
// reserves its full width.
const SizePlayerData = codec.SizeF32 + codec.SizeU16 + codec.SizeI32 +
	SizeSpecificIconData + codec.SizeBool + SizeSpecificIconData

// PlayerData is one movement snapshot of a player on a level.
type PlayerData struct {
	Timestamp  float32
	Percentage uint16
	Attempts   int32
	Player1    SpecificIconData
	Player2    SecondIcon
}

func (PlayerData) StaticSize() int { return SizePlayerData }

func (d PlayerData) Encode(w buffer.Writer) {
	w.WriteF32(d.Timestamp)
	w.WriteU16(d.Percentage)
	w.WriteI32(d.Attempts)
	d.Player1.Encode(w)
	d.Player2.Encode(w)
}

func (d *PlayerData) Decode(r buffer.Reader) (err error) {
	if d.Timestamp, err = r.ReadF32(); err != nil {
		return codec.Wrap("timestamp", err)
	}
	if d.Percentage, err = r.ReadU16(); err != nil {
		return codec.Wrap("percentage", err)
	}
	if d.Attempts, err = r.ReadI32(); err != nil {
		return codec.Wrap("attempts", err)
	}
	if err = d.Player1.Decode(r); err != nil {
		return codec.Wrap("player1", err)
	}
	return codec.Wrap("player2", d.Player2.Decode(r))
}

// SizeAssociatedPlayerData is the encoded width of AssociatedPlayerData.
const SizeAssociatedPlayerData = codec.SizeI32 + SizePlayerData

// AssociatedPlayerData is a movement snapshot tagged with its owner.
type AssociatedPlayerData struct {
	AccountID int32
	Data      PlayerData
}

func (AssociatedPlayerData) StaticSize() int { return SizeAssociatedPlayerData }

func (d AssociatedPlayerData) Encode(w buffer.Writer) {
	w.WriteI32(d.AccountID)
	d.Data.Encode(w)
}

func (d *AssociatedPlayerData) Decode(r buffer.Reader) (err error) {
	if d.AccountID, err = r.ReadI32(); err != nil {
		return codec.Wrap("accountID", err)
	}
	return codec.Wrap("data", d.Data.Decode(r))
}

// SizePlayerMetadata is the encoded width of PlayerMetadata.
const SizePlayerMetadata = codec.SizeU32 + codec.SizeI32

// PlayerMetadata is the slow-changing part of a player's level state.
type PlayerMetadata struct {
	LocalBest uint32
	Attempts  int32
}

func (PlayerMetadata) StaticSize() int { return SizePlayerMetadata }

func (m PlayerMetadata) Encode(w buffer.Writer) {
	w.WriteU32(m.LocalBest)
	w.WriteI32(m.Attempts)
}

func (m *PlayerMetadata) Decode(r buffer.Reader) (err error) {
	if m.LocalBest, err = r.ReadU32(); err != nil {
		return codec.Wrap("localBest", err)
	}
	if m.Attempts, err = r.ReadI32(); err != nil {
		return codec.Wrap("attempts", err)
	}
	return nil
}

// SizeAssociatedPlayerMetadata is the encoded width of AssociatedPlayerMetadata.
const SizeAssociatedPlayerMetadata = codec.SizeI32 + SizePlayerMetadata

type AssociatedPlayerMetadata struct {
	AccountID int32
	Data      PlayerMetadata
}

func (AssociatedPlayerMetadata) StaticSize() int { return SizeAssociatedPlayerMetadata }

func (m AssociatedPlayerMetadata) Encode(w buffer.Writer) {
	w.WriteI32(m.AccountID)
	m.Data.Encode(w)
}

func (m *AssociatedPlayerMetadata) Decode(r buffer.Reader) (err error) {
	if m.AccountID, err = r.ReadI32(); err != nil {
		return codec.Wrap("accountID", err)
	}
	return codec.Wrap("data", m.Data.Decode(r))
}
