package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArrayRoundTrip(t *testing.T) {
	want := NewArray[Int32, *Int32](3)
	want.Items[0] = 10
	want.Items[1] = -20
	want.Items[2] = 30

	dst, err := want.Encode(nil, zeroPath)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(dst) != want.BinSize() {
		t.Fatalf("Encode produced %d bytes, want BinSize() = %d", len(dst), want.BinSize())
	}

	got := NewArray[Int32, *Int32](3)
	if err := got.Decode(dst, zeroPath); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want.Items, got.Items); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayZeroLength(t *testing.T) {
	a := NewArray[Int32, *Int32](0)
	if got := a.BinSize(); got != 0 {
		t.Fatalf("BinSize() of a zero-length array = %d, want 0", got)
	}
	dst, err := a.Encode(nil, zeroPath)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(dst) != 0 {
		t.Fatalf("Encode of a zero-length array produced %d bytes, want 0", len(dst))
	}
}
