package codec

import (
	"encoding/binary"
	"math"

	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
)

// Primitive field wrappers give every fixed-width Go type a Value/ValuePtr
// implementation with the exact byte pattern §6 specifies: little-endian
// two's complement integers, little-endian IEEE-754 floats, a single byte
// for bool and char. None of these own external resources, so Delete is a
// no-op for all of them.

// Bool is a one-byte boolean field: 0x00 is false, any non-zero is true.
type Bool bool

func (Bool) BinSize() int { return 1 }

func (b Bool) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	if b {
		return append(dst, 1), nil
	}
	return append(dst, 0), nil
}

func (b *Bool) Decode(data []byte, _ recordpath.Path) error {
	*b = data[0] != 0
	return nil
}

func (Bool) Delete(_ recordpath.Path) error { return nil }

// Char is a single code point in [0, 255], encoded as one byte (§6).
type Char byte

func (Char) BinSize() int { return 1 }

func (c Char) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	return append(dst, byte(c)), nil
}

func (c *Char) Decode(data []byte, _ recordpath.Path) error {
	*c = Char(data[0])
	return nil
}

func (Char) Delete(_ recordpath.Path) error { return nil }

// Int8 / Uint8

type Int8 int8

func (Int8) BinSize() int                                       { return 1 }
func (v Int8) Encode(dst []byte, _ recordpath.Path) ([]byte, error) { return append(dst, byte(v)), nil }
func (v *Int8) Decode(data []byte, _ recordpath.Path) error        { *v = Int8(int8(data[0])); return nil }
func (Int8) Delete(_ recordpath.Path) error                        { return nil }

type Uint8 uint8

func (Uint8) BinSize() int                                        { return 1 }
func (v Uint8) Encode(dst []byte, _ recordpath.Path) ([]byte, error) { return append(dst, byte(v)), nil }
func (v *Uint8) Decode(data []byte, _ recordpath.Path) error         { *v = Uint8(data[0]); return nil }
func (Uint8) Delete(_ recordpath.Path) error                         { return nil }

// Int16 / Uint16

type Int16 int16

func (Int16) BinSize() int { return 2 }

func (v Int16) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return append(dst, buf[:]...), nil
}

func (v *Int16) Decode(data []byte, _ recordpath.Path) error {
	*v = Int16(binary.LittleEndian.Uint16(data))
	return nil
}

func (Int16) Delete(_ recordpath.Path) error { return nil }

type Uint16 uint16

func (Uint16) BinSize() int { return 2 }

func (v Uint16) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return append(dst, buf[:]...), nil
}

func (v *Uint16) Decode(data []byte, _ recordpath.Path) error {
	*v = Uint16(binary.LittleEndian.Uint16(data))
	return nil
}

func (Uint16) Delete(_ recordpath.Path) error { return nil }

// Int32 / Uint32

type Int32 int32

func (Int32) BinSize() int { return 4 }

func (v Int32) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return append(dst, buf[:]...), nil
}

func (v *Int32) Decode(data []byte, _ recordpath.Path) error {
	*v = Int32(binary.LittleEndian.Uint32(data))
	return nil
}

func (Int32) Delete(_ recordpath.Path) error { return nil }

type Uint32 uint32

func (Uint32) BinSize() int { return 4 }

func (v Uint32) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return append(dst, buf[:]...), nil
}

func (v *Uint32) Decode(data []byte, _ recordpath.Path) error {
	*v = Uint32(binary.LittleEndian.Uint32(data))
	return nil
}

func (Uint32) Delete(_ recordpath.Path) error { return nil }

// Int64 / Uint64

type Int64 int64

func (Int64) BinSize() int { return 8 }

func (v Int64) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return append(dst, buf[:]...), nil
}

func (v *Int64) Decode(data []byte, _ recordpath.Path) error {
	*v = Int64(binary.LittleEndian.Uint64(data))
	return nil
}

func (Int64) Delete(_ recordpath.Path) error { return nil }

type Uint64 uint64

func (Uint64) BinSize() int { return 8 }

func (v Uint64) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return append(dst, buf[:]...), nil
}

func (v *Uint64) Decode(data []byte, _ recordpath.Path) error {
	*v = Uint64(binary.LittleEndian.Uint64(data))
	return nil
}

func (Uint64) Delete(_ recordpath.Path) error { return nil }

// Float32 / Float64, IEEE-754 bit pattern, little-endian (§6).

type Float32 float32

func (Float32) BinSize() int { return 4 }

func (v Float32) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	return append(dst, buf[:]...), nil
}

func (v *Float32) Decode(data []byte, _ recordpath.Path) error {
	*v = Float32(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	return nil
}

func (Float32) Delete(_ recordpath.Path) error { return nil }

type Float64 float64

func (Float64) BinSize() int { return 8 }

func (v Float64) Encode(dst []byte, _ recordpath.Path) ([]byte, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(float64(v)))
	return append(dst, buf[:]...), nil
}

func (v *Float64) Decode(data []byte, _ recordpath.Path) error {
	*v = Float64(math.Float64frombits(binary.LittleEndian.Uint64(data)))
	return nil
}

func (Float64) Delete(_ recordpath.Path) error { return nil }

// checkLen is a small guard composite fields use before slicing into a
// shared buffer; primitives above trust the caller (record file and array
// codecs) to have already sliced exactly BinSize() bytes.
func checkLen(data []byte, want int, field string) error {
	if len(data) < want {
		return pkgerrors.NewRecordError(
			nil, pkgerrors.ErrorCodeCorrupt, "truncated field during decode",
		).WithDetail("field", field).WithDetail("want", want).WithDetail("got", len(data))
	}
	return nil
}
