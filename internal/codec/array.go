package codec

import "github.com/iamNilotpal/rowstore/internal/recordpath"

// Array represents a fixed-length array of N fields of type T (§3, §6:
// "Array [T; N]: N encodings of T concatenated"). Go has no const generics,
// so unlike Rust's `[T; LEN]` the length N is a runtime field set at
// construction; callers are responsible for keeping it constant for a given
// schema position, the same discipline the generated code in the original
// system enforces at compile time.
type Array[T any, PT ValuePtr[T]] struct {
	Items []T
}

// NewArray builds an Array of the given length, zero-valued.
func NewArray[T any, PT ValuePtr[T]](n int) Array[T, PT] {
	return Array[T, PT]{Items: make([]T, n)}
}

// BinSize returns n * element BinSize. An empty array built with NewArray(0)
// still reports 0, matching the zero-element case of the Rust const-generic
// array.
func (a Array[T, PT]) BinSize() int {
	if len(a.Items) == 0 {
		return 0
	}
	var zero T
	return PT(&zero).BinSize() * len(a.Items)
}

func (a Array[T, PT]) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	var err error
	for i := range a.Items {
		dst, err = PT(&a.Items[i]).Encode(dst, path)
		if err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// Decode populates a.Items in place, requiring len(a.Items) to already
// reflect the schema's fixed N (set by NewArray or a prior decode).
func (a *Array[T, PT]) Decode(data []byte, path recordpath.Path) error {
	var zero T
	width := PT(&zero).BinSize()
	for i := range a.Items {
		off := i * width
		if err := checkLen(data[off:], width, "array element"); err != nil {
			return err
		}
		if err := PT(&a.Items[i]).Decode(data[off:off+width], path); err != nil {
			return err
		}
	}
	return nil
}

func (a Array[T, PT]) Delete(path recordpath.Path) error {
	for i := range a.Items {
		if err := PT(&a.Items[i]).Delete(path); err != nil {
			return err
		}
	}
	return nil
}
