package cachedfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	"github.com/iamNilotpal/rowstore/pkg/options"
)

type testRow struct {
	ID codec.Int64
}

func (testRow) BinSize() int { return 8 }
func (r testRow) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	return r.ID.Encode(dst, path)
}
func (r *testRow) Decode(data []byte, path recordpath.Path) error { return r.ID.Decode(data, path) }
func (testRow) Delete(_ recordpath.Path) error                    { return nil }

func openTestFile(t *testing.T, cacheEnabled bool) *File[testRow, *testRow] {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{Options: options.Options{CacheEnabled: cacheEnabled, Fsync: false, DirPermissions: 0755, FilePermissions: 0644}}
	f, err := Open[testRow, *testRow](recordpath.Main(dir), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return f
}

func TestGetPopulatesCacheOnMiss(t *testing.T) {
	f := openTestFile(t, true)
	for i := 0; i < 5; i++ {
		if err := f.Insert(i, testRow{codec.Int64(i)}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if got := f.CacheLen(); got != 0 {
		t.Fatalf("CacheLen() before any read = %d, want 0", got)
	}

	row, err := f.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if row.ID != 2 {
		t.Fatalf("Get(2).ID = %d, want 2", row.ID)
	}
	if got := f.CacheLen(); got != 1 {
		t.Fatalf("CacheLen() after one Get = %d, want 1", got)
	}

	row2, err := f.Get(2)
	if err != nil {
		t.Fatalf("Get(2) again: %v", err)
	}
	if row2.ID != 2 {
		t.Fatalf("cached Get(2).ID = %d, want 2", row2.ID)
	}
}

func TestGetsServesFromCacheAndDiskGaps(t *testing.T) {
	f := openTestFile(t, true)
	for i := 0; i < 5; i++ {
		if err := f.Insert(i, testRow{codec.Int64(i * 10)}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if _, err := f.Get(3); err != nil {
		t.Fatalf("Get(3): %v", err)
	}

	n := 5
	got, err := f.Gets(0, &n)
	if err != nil {
		t.Fatalf("Gets: %v", err)
	}
	want := []testRow{{0}, {10}, {20}, {30}, {40}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Gets mismatch (-want +got):\n%s", diff)
	}
	if got := f.CacheLen(); got != 5 {
		t.Fatalf("CacheLen() after reading everything = %d, want 5 (opportunistic caching)", got)
	}
}

func TestGetsNilReadsThroughToEndOfFile(t *testing.T) {
	f := openTestFile(t, true)
	for i := 0; i < 5; i++ {
		if err := f.Insert(i, testRow{codec.Int64(i * 10)}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	// Populate the cache for a middle row only, leaving both a leading and
	// a trailing disk gap for Gets(0, nil) to read through.
	if _, err := f.Get(2); err != nil {
		t.Fatalf("Get(2): %v", err)
	}

	got, err := f.Gets(0, nil)
	if err != nil {
		t.Fatalf("Gets(0, nil): %v", err)
	}
	want := []testRow{{0}, {10}, {20}, {30}, {40}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Gets(0, nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertShiftsCachedPositions(t *testing.T) {
	f := openTestFile(t, true)
	for i := 0; i < 3; i++ {
		if err := f.Insert(i, testRow{codec.Int64(i)}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if _, err := f.Get(1); err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if _, err := f.Get(2); err != nil {
		t.Fatalf("Get(2): %v", err)
	}

	if err := f.Insert(1, testRow{99}); err != nil {
		t.Fatalf("Insert(1, 99): %v", err)
	}

	got, err := f.Get(3)
	if err != nil {
		t.Fatalf("Get(3) after shift: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("Get(3).ID after shift = %d, want 2 (the old row at position 2)", got.ID)
	}
}

func TestGetDisabledCacheAlwaysHitsDisk(t *testing.T) {
	f := openTestFile(t, false)
	for i := 0; i < 3; i++ {
		if err := f.Insert(i, testRow{codec.Int64(i)}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if _, err := f.Get(0); err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if got := f.CacheLen(); got != 0 {
		t.Fatalf("CacheLen() with caching disabled = %d, want 0", got)
	}
}

func TestClearEmptiesCacheAndFile(t *testing.T) {
	f := openTestFile(t, true)
	for i := 0; i < 3; i++ {
		if err := f.Insert(i, testRow{codec.Int64(i)}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if _, err := f.Get(0); err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := f.CacheLen(); got != 0 {
		t.Fatalf("CacheLen() after Clear = %d, want 0", got)
	}
	if empty, err := f.IsEmpty(); err != nil || !empty {
		t.Fatalf("IsEmpty() after Clear = (%v, %v), want (true, nil)", empty, err)
	}
}
