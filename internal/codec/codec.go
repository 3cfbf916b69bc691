// Package codec implements the field-level binary contract every record
// type in this store must satisfy (§3, §4.2, C2): a fixed encoded width,
// deterministic little-endian byte patterns for the primitive types, and a
// delete hook for fields that own external resources (side-files).
//
// The contract is expressed as two interfaces instead of Rust's
// associated-function trait (`Binary::from_bin` is a static method with no
// receiver). Value covers what every field exposes regardless of how it is
// held; ValuePtr adds the pointer-receiver Decode method so generic code can
// decode directly into a caller-owned *T without an extra allocation or
// copy, mirroring how this store's table and index layers are generic over
// a record type T with a *T constraint.
package codec

import "github.com/iamNilotpal/rowstore/internal/recordpath"

// Value is the read side of the field contract: every field knows its own
// encoded width, can serialize itself, and can release any out-of-line
// resource it owns (a no-op for primitives and Foreign fields).
type Value interface {
	// BinSize returns the field's constant encoded width in bytes.
	BinSize() int

	// Encode appends this field's byte image to dst and returns the
	// extended slice. path identifies the record file this field lives
	// in, needed by dynamic fields to locate their side-file directory.
	Encode(dst []byte, path recordpath.Path) ([]byte, error)

	// Delete releases any external resource this field owns (a
	// side-file). Primitives, arrays of primitives, and Foreign fields
	// implement this as a no-op.
	Delete(path recordpath.Path) error
}

// ValuePtr is the constraint generic code decodes through: a pointer to a
// value type T that can decode a byte slice of BinSize() bytes in place.
// Callers write:
//
//	var v MyField
//	if err := ValuePtr[MyField](&v).Decode(data, path); err != nil { ... }
//
// which is the idiomatic Go substitute for Rust's `T::from_bin(&data, path)`
// static constructor — Go has no associated functions, so decoding always
// happens through an addressable receiver.
type ValuePtr[T any] interface {
	*T
	Value
	// Decode reads BinSize() bytes from data and populates the pointee.
	// data is guaranteed by callers to be at least BinSize() bytes; a
	// field-specific semantic invariant violation (zero side-file id,
	// invalid UTF-8) must be reported as MalformedRecord (§4.2).
	Decode(data []byte, path recordpath.Path) error
}

// Decode is a free function wrapping the ValuePtr constraint so callers
// don't need to spell out the pointer type at every call site.
func Decode[T any, PT ValuePtr[T]](data []byte, path recordpath.Path) (T, error) {
	var v T
	err := PT(&v).Decode(data, path)
	return v, err
}
