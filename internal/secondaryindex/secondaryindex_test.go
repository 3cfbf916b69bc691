package secondaryindex

import (
	"testing"

	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordfile"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	"github.com/iamNilotpal/rowstore/pkg/options"
)

type row struct {
	ID  codec.Int64
	Age codec.Int32
}

func (row) BinSize() int { return 12 }
func (r row) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	dst, err := r.ID.Encode(dst, path)
	if err != nil {
		return dst, err
	}
	return r.Age.Encode(dst, path)
}
func (r *row) Decode(data []byte, path recordpath.Path) error {
	if err := r.ID.Decode(data[:8], path); err != nil {
		return err
	}
	return r.Age.Decode(data[8:12], path)
}
func (row) Delete(_ recordpath.Path) error { return nil }

func testConfig() recordfile.Config {
	return recordfile.Config{Options: options.Options{CacheEnabled: false, Fsync: false, DirPermissions: 0755, FilePermissions: 0644}}
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

func openAgeIndex(t *testing.T, unique bool) *File[row, *row, codec.Int32, *codec.Int32] {
	t.Helper()
	dir := t.TempDir()
	idx, err := Open[row, *row, codec.Int32, *codec.Int32](
		"age", recordpath.Index(dir, "age"), unique,
		func(r *row) codec.Int32 { return r.Age },
		int32Cmp, testConfig(),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return idx
}

func TestInsertKeepsSortedOrder(t *testing.T) {
	idx := openAgeIndex(t, false)

	rows := []row{{1, 30}, {2, 10}, {3, 20}}
	for i, r := range rows {
		if err := idx.Insert(i, &r); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	positions, err := idx.Positions(10)
	if err != nil {
		t.Fatalf("Positions(10): %v", err)
	}
	if len(positions) != 1 || positions[0] != 1 {
		t.Fatalf("Positions(10) = %v, want [1]", positions)
	}

	positions, err = idx.Positions(30)
	if err != nil {
		t.Fatalf("Positions(30): %v", err)
	}
	if len(positions) != 1 || positions[0] != 0 {
		t.Fatalf("Positions(30) = %v, want [0]", positions)
	}
}

func TestInsertBumpsExistingPositions(t *testing.T) {
	idx := openAgeIndex(t, false)
	a, b := row{1, 10}, row{2, 20}
	if err := idx.Insert(0, &a); err != nil {
		t.Fatalf("Insert a: %v", err)
	}
	if err := idx.Insert(1, &b); err != nil {
		t.Fatalf("Insert b: %v", err)
	}

	// A third row lands at main-table position 0, bumping a and b to 1, 2.
	c := row{3, 5}
	if err := idx.Insert(0, &c); err != nil {
		t.Fatalf("Insert c: %v", err)
	}

	positions, err := idx.Positions(10)
	if err != nil {
		t.Fatalf("Positions(10): %v", err)
	}
	if len(positions) != 1 || positions[0] != 1 {
		t.Fatalf("Positions(10) after bump = %v, want [1]", positions)
	}
}

func TestRemoveDecrementsHigherPositions(t *testing.T) {
	idx := openAgeIndex(t, false)
	rows := []row{{1, 10}, {2, 20}, {3, 30}}
	for i, r := range rows {
		if err := idx.Insert(i, &r); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	if err := idx.Remove(0); err != nil {
		t.Fatalf("Remove(0): %v", err)
	}

	positions, err := idx.Positions(20)
	if err != nil {
		t.Fatalf("Positions(20): %v", err)
	}
	if len(positions) != 1 || positions[0] != 0 {
		t.Fatalf("Positions(20) after remove = %v, want [0]", positions)
	}
}

func TestCheckUniqueRejectsDuplicate(t *testing.T) {
	idx := openAgeIndex(t, true)
	a := row{1, 42}
	if err := idx.Insert(0, &a); err != nil {
		t.Fatalf("Insert a: %v", err)
	}

	b := row{2, 42}
	ok, err := idx.CheckUnique(&b)
	if err != nil {
		t.Fatalf("CheckUnique: %v", err)
	}
	if ok {
		t.Fatalf("CheckUnique should reject a duplicate projected value")
	}

	c := row{3, 7}
	ok, err = idx.CheckUnique(&c)
	if err != nil {
		t.Fatalf("CheckUnique: %v", err)
	}
	if !ok {
		t.Fatalf("CheckUnique should accept a distinct projected value")
	}
}

func TestCheckUniqueAlwaysPassesWhenNotUnique(t *testing.T) {
	idx := openAgeIndex(t, false)
	a := row{1, 42}
	if err := idx.Insert(0, &a); err != nil {
		t.Fatalf("Insert a: %v", err)
	}
	b := row{2, 42}
	ok, err := idx.CheckUnique(&b)
	if err != nil {
		t.Fatalf("CheckUnique: %v", err)
	}
	if !ok {
		t.Fatalf("a non-unique index must never reject")
	}
}

func TestClearEmptiesIndex(t *testing.T) {
	idx := openAgeIndex(t, false)
	a := row{1, 10}
	if err := idx.Insert(0, &a); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := idx.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	positions, err := idx.Positions(10)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if len(positions) != 0 {
		t.Fatalf("Positions after Clear = %v, want empty", positions)
	}
}
