package types

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// SizePlayerIconData is the encoded width of PlayerIconData.
const SizePlayerIconData = 10 * codec.SizeI16

// PlayerIconData is the full icon set a player shows to others.
type PlayerIconData struct {
	Cube      int16
	Ship      int16
	Ball      int16
	Ufo       int16
	Wave      int16
	Robot     int16
	Spider    int16
	Color1    int16
	Color2    int16
	GlowColor int16 // -1 disables the glow
}

// DefaultIcons is used for accounts that never synced their icons.
var DefaultIcons = PlayerIconData{
	Cube: 1, Ship: 1, Ball: 1, Ufo: 1, Wave: 1, Robot: 1, Spider: 1,
	Color1: 1, Color2: 3, GlowColor: -1,
}

func (PlayerIconData) StaticSize() int { return SizePlayerIconData }

func (d PlayerIconData) fields() [10]int16 {
	return [10]int16{d.Cube, d.Ship, d.Ball, d.Ufo, d.Wave, d.Robot, d.Spider, d.Color1, d.Color2, d.GlowColor}
}

func (d PlayerIconData) Encode(w buffer.Writer) {
	f := d.fields()
	codec.EncodeArrayWith(w, f[:], buffer.Writer.WriteI16)
}

func (d *PlayerIconData) Decode(r buffer.Reader) error {
	var f [10]int16
	if err := codec.DecodeArrayWith(r, f[:], buffer.Reader.ReadI16); err != nil {
		return codec.Wrap("icons", err)
	}
	*d = PlayerIconData{
		Cube: f[0], Ship: f[1], Ball: f[2], Ufo: f[3], Wave: f[4], Robot: f[5], Spider: f[6],
		Color1: f[7], Color2: f[8], GlowColor: f[9],
	}
	return nil
}

// Icon types a player can be in during a level.
const (
	IconCube uint8 = iota
	IconShip
	IconBall
	IconUfo
	IconWave
	IconRobot
	IconSpider
)

// SpecificIconData flag bits.
const (
	IconVisible = iota
	IconLookingLeft
	IconUpsideDown
	IconDashing
	IconMini
	IconGrounded
)

// SizeSpecificIconData is the encoded width of SpecificIconData.
const SizeSpecificIconData = 3*codec.SizeF32 + codec.SizeU8 + codec.SizeBits

// SpecificIconData is the state of one player icon in one frame.
type SpecificIconData struct {
	X        float32
	Y        float32
	Rotation float32
	IconType uint8
	Flags    codec.Bits
}

func (SpecificIconData) StaticSize() int { return SizeSpecificIconData }

func (d SpecificIconData) Encode(w buffer.Writer) {
	w.WriteF32(d.X)
	w.WriteF32(d.Y)
	w.WriteF32(d.Rotation)
	w.WriteU8(d.IconType)
	d.Flags.Encode(w)
}

func (d *SpecificIconData) Decode(r buffer.Reader) (err error) {
	if d.X, err = r.ReadF32(); err != nil {
		return codec.Wrap("x", err)
	}
	if d.Y, err = r.ReadF32(); err != nil {
		return codec.Wrap("y", err)
	}
	if d.Rotation, err = r.ReadF32(); err != nil {
		return codec.Wrap("rotation", err)
	}
	if d.IconType, err = r.ReadU8(); err != nil {
		return codec.Wrap("iconType", err)
	}
	if d.IconType > IconSpider {
		return codec.Wrap("iconType", codec.ErrInvalidValue)
	}
	return codec.Wrap("flags", d.Flags.Decode(r))
}
