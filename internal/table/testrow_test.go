package table

import (
	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
)

// testRow and testRow2 stand in for what a generated schema type would look
// like: a plain struct of codec.Value fields implementing codec.ValuePtr
// directly, keyed by a primary ID field (§9's "codec and index-registration
// are generated" resolved as hand-written Go in place of a derive macro).
type testRow struct {
	ID   codec.Int64
	Name codec.Int32
}

func (testRow) BinSize() int { return 12 }

func (r testRow) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	dst, err := r.ID.Encode(dst, path)
	if err != nil {
		return dst, err
	}
	return r.Name.Encode(dst, path)
}

func (r *testRow) Decode(data []byte, path recordpath.Path) error {
	if err := r.ID.Decode(data[:8], path); err != nil {
		return err
	}
	return r.Name.Decode(data[8:12], path)
}

func (testRow) Delete(_ recordpath.Path) error { return nil }

func testRowID(r *testRow) codec.Int64 { return r.ID }

func int64Cmp(a, b codec.Int64) (int, bool) {
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

func int32Cmp(a, b codec.Int32) (int, bool) {
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}
