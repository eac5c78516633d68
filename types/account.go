package types

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// SizePlayerAccountData is the encoded width of PlayerAccountData.
const SizePlayerAccountData = codec.SizeI32 + codec.SizeI32 + codec.SizeInlineString + SizePlayerIconData

// PlayerAccountData is the profile of an authenticated player.
type PlayerAccountData struct {
	AccountID int32
	UserID    int32
	Name      codec.InlineString
	Icons     PlayerIconData
}

func (PlayerAccountData) StaticSize() int { return SizePlayerAccountData }

func (a PlayerAccountData) Encode(w buffer.Writer) {
	w.WriteI32(a.AccountID)
	w.WriteI32(a.UserID)
	a.Name.Encode(w)
	a.Icons.Encode(w)
}

func (a *PlayerAccountData) Decode(r buffer.Reader) (err error) {
	if a.AccountID, err = r.ReadI32(); err != nil {
		return codec.Wrap("accountID", err)
	}
	if a.UserID, err = r.ReadI32(); err != nil {
		return codec.Wrap("userID", err)
	}
	if err = a.Name.Decode(r); err != nil {
		return codec.Wrap("name", err)
	}
	return codec.Wrap("icons", a.Icons.Decode(r))
}

// Preview returns the short form of the profile shown in player lists.
func (a PlayerAccountData) Preview(levelID int32) PlayerPreviewAccountData {
	return PlayerPreviewAccountData{
		AccountID: a.AccountID,
		Name:      a.Name,
		Cube:      a.Icons.Cube,
		Color1:    a.Icons.Color1,
		Color2:    a.Icons.Color2,
		GlowColor: a.Icons.GlowColor,
		LevelID:   levelID,
	}
}

// RoomPreview returns the profile form used in room lists and invites.
func (a PlayerAccountData) RoomPreview(levelID int32) PlayerRoomPreviewAccountData {
	return PlayerRoomPreviewAccountData{
		AccountID: a.AccountID,
		UserID:    a.UserID,
		Name:      a.Name,
		Cube:      a.Icons.Cube,
		Color1:    a.Icons.Color1,
		Color2:    a.Icons.Color2,
		GlowColor: a.Icons.GlowColor,
		LevelID:   levelID,
	}
}

const sizePreviewIcons = 4 * codec.SizeI16

// SizePlayerPreviewAccountData is the encoded width of PlayerPreviewAccountData.
const SizePlayerPreviewAccountData = codec.SizeI32 + codec.SizeInlineString + sizePreviewIcons + codec.SizeI32

type PlayerPreviewAccountData struct {
	AccountID int32
	Name      codec.InlineString
	Cube      int16
	Color1    int16
	Color2    int16
	GlowColor int16
	LevelID   int32
}

func (PlayerPreviewAccountData) StaticSize() int { return SizePlayerPreviewAccountData }

func (p PlayerPreviewAccountData) Encode(w buffer.Writer) {
	w.WriteI32(p.AccountID)
	p.Name.Encode(w)
	encodePreviewIcons(w, p.Cube, p.Color1, p.Color2, p.GlowColor)
	w.WriteI32(p.LevelID)
}

func (p *PlayerPreviewAccountData) Decode(r buffer.Reader) (err error) {
	if p.AccountID, err = r.ReadI32(); err != nil {
		return codec.Wrap("accountID", err)
	}
	if err = p.Name.Decode(r); err != nil {
		return codec.Wrap("name", err)
	}
	if err = decodePreviewIcons(r, &p.Cube, &p.Color1, &p.Color2, &p.GlowColor); err != nil {
		return codec.Wrap("icons", err)
	}
	if p.LevelID, err = r.ReadI32(); err != nil {
		return codec.Wrap("levelID", err)
	}
	return nil
}

// SizePlayerRoomPreviewAccountData is the encoded width of PlayerRoomPreviewAccountData.
const SizePlayerRoomPreviewAccountData = codec.SizeI32 + codec.SizeI32 + codec.SizeInlineString +
	sizePreviewIcons + codec.SizeI32

type PlayerRoomPreviewAccountData struct {
	AccountID int32
	UserID    int32
	Name      codec.InlineString
	Cube      int16
	Color1    int16
	Color2    int16
	GlowColor int16
	LevelID   int32
}

func (PlayerRoomPreviewAccountData) StaticSize() int { return SizePlayerRoomPreviewAccountData }

func (p PlayerRoomPreviewAccountData) Encode(w buffer.Writer) {
	w.WriteI32(p.AccountID)
	w.WriteI32(p.UserID)
	p.Name.Encode(w)
	encodePreviewIcons(w, p.Cube, p.Color1, p.Color2, p.GlowColor)
	w.WriteI32(p.LevelID)
}

func (p *PlayerRoomPreviewAccountData) Decode(r buffer.Reader) (err error) {
	if p.AccountID, err = r.ReadI32(); err != nil {
		return codec.Wrap("accountID", err)
	}
	if p.UserID, err = r.ReadI32(); err != nil {
		return codec.Wrap("userID", err)
	}
	if err = p.Name.Decode(r); err != nil {
		return codec.Wrap("name", err)
	}
	if err = decodePreviewIcons(r, &p.Cube, &p.Color1, &p.Color2, &p.GlowColor); err != nil {
		return codec.Wrap("icons", err)
	}
	if p.LevelID, err = r.ReadI32(); err != nil {
		return codec.Wrap("levelID", err)
	}
	return nil
}

func encodePreviewIcons(w buffer.Writer, v ...int16) {
	codec.EncodeArrayWith(w, v, buffer.Writer.WriteI16)
}

func decodePreviewIcons(r buffer.Reader, dst ...*int16) error {
	var v [4]int16
	if err := codec.DecodeArrayWith(r, v[:len(dst)], buffer.Reader.ReadI16); err != nil {
		return err
	}
	for i, p := range dst {
		*p = v[i]
	}
	return nil
}
