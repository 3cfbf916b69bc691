package sidefile

import (
	"unicode/utf8"

	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
)

// Payload is the contract a dynamic field's inner value must satisfy (§4.3:
// "supported inner payloads"). Unlike a fixed-width Value, a payload has no
// constant encoded width — its byte image is whatever fits in the
// side-file, read to EOF on decode.
type Payload interface {
	// MarshalPayload returns the payload's full byte image.
	MarshalPayload(path recordpath.Path) ([]byte, error)
}

// PayloadPtr is the pointer-receiver counterpart used for decoding, the
// same pattern codec.ValuePtr uses for fixed-width fields.
type PayloadPtr[T any] interface {
	*T
	Payload
	UnmarshalPayload(data []byte, path recordpath.Path) error
}

// StringPayload is a UTF-8 string stored as a dynamic field (§4.3).
type StringPayload string

func (s StringPayload) MarshalPayload(_ recordpath.Path) ([]byte, error) {
	return []byte(s), nil
}

func (s *StringPayload) UnmarshalPayload(data []byte, _ recordpath.Path) error {
	if !utf8.Valid(data) {
		return pkgerrors.NewRecordError(
			nil, pkgerrors.ErrorCodeMalformedRecord, "side-file payload is not valid UTF-8",
		)
	}
	*s = StringPayload(data)
	return nil
}

// SliceOf is an ordered sequence of a fixed-width field type, stored as a
// dynamic field (§4.3's "ordered sequences of a field type").
type SliceOf[T any, PT codec.ValuePtr[T]] struct {
	Items []T
}

func (s SliceOf[T, PT]) MarshalPayload(path recordpath.Path) ([]byte, error) {
	var out []byte
	var err error
	for i := range s.Items {
		out, err = PT(&s.Items[i]).Encode(out, path)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *SliceOf[T, PT]) UnmarshalPayload(data []byte, path recordpath.Path) error {
	var zero T
	width := PT(&zero).BinSize()
	if width == 0 {
		if len(data) != 0 {
			return pkgerrors.NewRecordError(
				nil, pkgerrors.ErrorCodeCorrupt, "non-empty payload for zero-width element type",
			)
		}
		s.Items = nil
		return nil
	}
	if len(data)%width != 0 {
		return pkgerrors.NewRecordError(
			nil, pkgerrors.ErrorCodeCorrupt, "side-file payload size is not a multiple of element width",
		).WithDetail("width", width).WithDetail("size", len(data))
	}
	n := len(data) / width
	items := make([]T, n)
	for i := 0; i < n; i++ {
		off := i * width
		if err := PT(&items[i]).Decode(data[off:off+width], path); err != nil {
			return err
		}
	}
	s.Items = items
	return nil
}

// MapOf is an unordered key-value mapping whose entries are encoded as
// encode(k) || encode(v) concatenated (§4.3). Iteration order on encode
// follows Go's randomized map iteration; equality of two MapOf payloads
// compares the decoded map contents, not byte order.
type MapOf[K comparable, KPT codec.ValuePtr[K], V any, VPT codec.ValuePtr[V]] struct {
	Entries map[K]V
}

func (m MapOf[K, KPT, V, VPT]) MarshalPayload(path recordpath.Path) ([]byte, error) {
	var out []byte
	var err error
	for k, v := range m.Entries {
		kk := k
		vv := v
		out, err = KPT(&kk).Encode(out, path)
		if err != nil {
			return nil, err
		}
		out, err = VPT(&vv).Encode(out, path)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *MapOf[K, KPT, V, VPT]) UnmarshalPayload(data []byte, path recordpath.Path) error {
	var zk K
	var zv V
	kw := KPT(&zk).BinSize()
	vw := VPT(&zv).BinSize()
	width := kw + vw
	if width == 0 {
		m.Entries = map[K]V{}
		return nil
	}
	if len(data)%width != 0 {
		return pkgerrors.NewRecordError(
			nil, pkgerrors.ErrorCodeCorrupt, "side-file payload size is not a multiple of entry width",
		).WithDetail("width", width).WithDetail("size", len(data))
	}
	n := len(data) / width
	entries := make(map[K]V, n)
	for i := 0; i < n; i++ {
		off := i * width
		var k K
		var v V
		if err := KPT(&k).Decode(data[off:off+kw], path); err != nil {
			return err
		}
		if err := VPT(&v).Decode(data[off+kw:off+width], path); err != nil {
			return err
		}
		entries[k] = v
	}
	m.Entries = entries
	return nil
}
