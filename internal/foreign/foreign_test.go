package foreign

import (
	"testing"

	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	"github.com/iamNilotpal/rowstore/internal/table"
)

func TestForeignRoundTrip(t *testing.T) {
	f := New[codec.Int64, *codec.Int64](codec.Int64(42))
	if f.ID() != 42 {
		t.Fatalf("ID() = %d, want 42", f.ID())
	}

	dst, err := f.Encode(nil, recordpath.Path{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(dst) != f.BinSize() {
		t.Fatalf("Encode produced %d bytes, want BinSize() = %d", len(dst), f.BinSize())
	}

	var got Foreign[codec.Int64, *codec.Int64]
	if err := got.Decode(dst, recordpath.Path{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ID() != 42 {
		t.Fatalf("decoded ID() = %d, want 42", got.ID())
	}
}

// stubResolver stands in for a *table.Table whose rows are keyed by
// codec.Int64, used to exercise Resolve without standing up a real table.
type stubResolver struct {
	rows map[int64]string
}

func (s stubResolver) GetByID(id codec.Int64) table.Get[string] {
	if row, ok := s.rows[int64(id)]; ok {
		return table.Get[string]{Kind: table.KindFound, Row: row}
	}
	return table.Get[string]{Kind: table.KindNotFound}
}

func TestResolveFoundAndDangling(t *testing.T) {
	resolver := stubResolver{rows: map[int64]string{1: "alice"}}

	found := Resolve[string](New[codec.Int64, *codec.Int64](1), resolver)
	if found.Kind != table.KindFound || found.Row != "alice" {
		t.Fatalf("Resolve(1) = %+v, want Found(\"alice\")", found)
	}

	dangling := Resolve[string](New[codec.Int64, *codec.Int64](99), resolver)
	if dangling.Kind != table.KindNotFound {
		t.Fatalf("Resolve(99) = %+v, want NotFound (a dangling foreign is not an error)", dangling)
	}
}
