package codec

import "github.com/lcx/levelsync/buffer"

// Option is a value that may be absent. It encodes as a presence byte followed by
// the payload region.
//
// The static width always reserves the full payload width, and an absent value is
// written as zero padding of that width, so present and absent encodings have the
// same length. The payload therefore has to be statically sized, which the StaticPtr
// constraint enforces: fast-buffer sizes computed from StaticSize are only correct
// if absence never shrinks the region.
type Option[T any, P StaticPtr[T]] struct {
	value   T
	present bool
}

// Some returns a present option.
func Some[T any, P StaticPtr[T]](v T) Option[T, P] {
	return Option[T, P]{value: v, present: true}
}

// None returns an absent option.
func None[T any, P StaticPtr[T]]() Option[T, P] {
	return Option[T, P]{}
}

// Get returns the value and whether it is present.
func (o Option[T, P]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is set.
func (o Option[T, P]) IsPresent() bool {
	return o.present
}

func (o *Option[T, P]) Set(v T) {
	o.value, o.present = v, true
}

func (o *Option[T, P]) Clear() {
	var zero T
	o.value, o.present = zero, false
}

func (o Option[T, P]) payloadSize() int {
	return P(&o.value).StaticSize()
}

func (o Option[T, P]) StaticSize() int {
	return SizeBool + o.payloadSize()
}

func (o Option[T, P]) Encode(w buffer.Writer) {
	w.WriteBool(o.present)
	if o.present {
		P(&o.value).Encode(w)
		return
	}
	w.WriteZeros(o.payloadSize())
}

func (o *Option[T, P]) Decode(r buffer.Reader) error {
	present, err := ReadBool(r)
	if err != nil {
		return Wrap("option", err)
	}
	if !present {
		o.Clear()
		return Wrap("option", r.Skip(o.payloadSize()))
	}
	if err := P(&o.value).Decode(r); err != nil {
		return Wrap("option", err)
	}
	o.present = true
	return nil
}
