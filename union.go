package serialize

import "reflect"

// Union2 holds exactly one of two alternatives, or neither. Index 0 means
// "valueless" — the zero value of Union2 is valueless — matching the
// "valueless by exception" state a variant can be left in and which the
// original encode/decode pair explicitly rejects on both ends.
type Union2[A, B any] struct {
	index int
	a     A
	b     B
}

// NewUnion2A builds a Union2 holding an A.
func NewUnion2A[A, B any](v A) Union2[A, B] { return Union2[A, B]{index: 1, a: v} }

// NewUnion2B builds a Union2 holding a B.
func NewUnion2B[A, B any](v B) Union2[A, B] { return Union2[A, B]{index: 2, b: v} }

// Index returns 0 (valueless), 1 (holding A) or 2 (holding B).
func (u Union2[A, B]) Index() int { return u.index }

// A returns the held A and whether it was actually selected.
func (u Union2[A, B]) A() (A, bool) { return u.a, u.index == 1 }

// B returns the held B and whether it was actually selected.
func (u Union2[A, B]) B() (B, bool) { return u.b, u.index == 2 }

func (u Union2[A, B]) EncodeSelf(e *Encoder) error {
	if u.index == 0 {
		return ErrInvalidUnionIndex
	}
	if err := e.w.WriteUint8(uint8(u.index - 1)); err != nil {
		return err
	}
	if u.index == 1 {
		return e.encodeValue(reflect.ValueOf(u.a))
	}
	return e.encodeValue(reflect.ValueOf(u.b))
}

func (u *Union2[A, B]) DecodeSelf(d *Decoder) error {
	idx, err := d.r.ReadUint8()
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		u.index = 1
		return d.decodeValue(reflect.ValueOf(&u.a).Elem())
	case 1:
		u.index = 2
		return d.decodeValue(reflect.ValueOf(&u.b).Elem())
	default:
		return ErrInvalidUnionIndex
	}
}

// Union3 holds exactly one of three alternatives, or neither.
type Union3[A, B, C any] struct {
	index int
	a     A
	b     B
	c     C
}

func NewUnion3A[A, B, C any](v A) Union3[A, B, C] { return Union3[A, B, C]{index: 1, a: v} }
func NewUnion3B[A, B, C any](v B) Union3[A, B, C] { return Union3[A, B, C]{index: 2, b: v} }
func NewUnion3C[A, B, C any](v C) Union3[A, B, C] { return Union3[A, B, C]{index: 3, c: v} }

func (u Union3[A, B, C]) Index() int         { return u.index }
func (u Union3[A, B, C]) A() (A, bool)       { return u.a, u.index == 1 }
func (u Union3[A, B, C]) B() (B, bool)       { return u.b, u.index == 2 }
func (u Union3[A, B, C]) C() (C, bool)       { return u.c, u.index == 3 }

func (u Union3[A, B, C]) EncodeSelf(e *Encoder) error {
	if u.index == 0 {
		return ErrInvalidUnionIndex
	}
	if err := e.w.WriteUint8(uint8(u.index - 1)); err != nil {
		return err
	}
	switch u.index {
	case 1:
		return e.encodeValue(reflect.ValueOf(u.a))
	case 2:
		return e.encodeValue(reflect.ValueOf(u.b))
	default:
		return e.encodeValue(reflect.ValueOf(u.c))
	}
}

func (u *Union3[A, B, C]) DecodeSelf(d *Decoder) error {
	idx, err := d.r.ReadUint8()
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		u.index = 1
		return d.decodeValue(reflect.ValueOf(&u.a).Elem())
	case 1:
		u.index = 2
		return d.decodeValue(reflect.ValueOf(&u.b).Elem())
	case 2:
		u.index = 3
		return d.decodeValue(reflect.ValueOf(&u.c).Elem())
	default:
		return ErrInvalidUnionIndex
	}
}

// Union4 holds exactly one of four alternatives, or neither.
type Union4[A, B, C, D any] struct {
	index int
	a     A
	b     B
	c     C
	d     D
}

func NewUnion4A[A, B, C, D any](v A) Union4[A, B, C, D] { return Union4[A, B, C, D]{index: 1, a: v} }
func NewUnion4B[A, B, C, D any](v B) Union4[A, B, C, D] { return Union4[A, B, C, D]{index: 2, b: v} }
func NewUnion4C[A, B, C, D any](v C) Union4[A, B, C, D] { return Union4[A, B, C, D]{index: 3, c: v} }
func NewUnion4D[A, B, C, D any](v D) Union4[A, B, C, D] { return Union4[A, B, C, D]{index: 4, d: v} }

func (u Union4[A, B, C, D]) Index() int   { return u.index }
func (u Union4[A, B, C, D]) A() (A, bool) { return u.a, u.index == 1 }
func (u Union4[A, B, C, D]) B() (B, bool) { return u.b, u.index == 2 }
func (u Union4[A, B, C, D]) C() (C, bool) { return u.c, u.index == 3 }
func (u Union4[A, B, C, D]) D() (D, bool) { return u.d, u.index == 4 }

func (u Union4[A, B, C, D]) EncodeSelf(e *Encoder) error {
	if u.index == 0 {
		return ErrInvalidUnionIndex
	}
	if err := e.w.WriteUint8(uint8(u.index - 1)); err != nil {
		return err
	}
	switch u.index {
	case 1:
		return e.encodeValue(reflect.ValueOf(u.a))
	case 2:
		return e.encodeValue(reflect.ValueOf(u.b))
	case 3:
		return e.encodeValue(reflect.ValueOf(u.c))
	default:
		return e.encodeValue(reflect.ValueOf(u.d))
	}
}

func (u *Union4[A, B, C, D]) DecodeSelf(d *Decoder) error {
	idx, err := d.r.ReadUint8()
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		u.index = 1
		return d.decodeValue(reflect.ValueOf(&u.a).Elem())
	case 1:
		u.index = 2
		return d.decodeValue(reflect.ValueOf(&u.b).Elem())
	case 2:
		u.index = 3
		return d.decodeValue(reflect.ValueOf(&u.c).Elem())
	case 3:
		u.index = 4
		return d.decodeValue(reflect.ValueOf(&u.d).Elem())
	default:
		return ErrInvalidUnionIndex
	}
}
