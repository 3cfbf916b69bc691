// Package secondaryindex implements the materialized secondary index (§4.8,
// C8): a record file of (projected_value, row_position) pairs kept sorted by
// the projected value, used to answer get_by_<column> lookups and enforce
// uniqueness constraints without scanning the main table.
//
// Grounded on the reference implementation's IndexFile/UnspecifiedIndex
// split (one interface for the typed bisection lookup, one type-erased over
// the owning row type for the table coordinator's uniform insert/remove/
// clear), adapted to rebuild the on-disk order by projected value rather
// than by main-table position — the position each entry carries is payload,
// not sort key (§4.8: "kept sorted by projected_value").
package secondaryindex

import (
	"go.uber.org/zap"

	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordfile"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	"github.com/iamNilotpal/rowstore/internal/sortedindex"
	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
)

// Comparator orders two projected column values the same way
// sortedindex.Comparator orders a row against a search key: ok is false when
// the two are incomparable.
type Comparator[Col any] func(a, b Col) (cmp int, ok bool)

// entry is one on-disk row of the index file: the projected column value and
// the position of the owning row in the main table (§4.8).
type entry[Col any, ColPT codec.ValuePtr[Col]] struct {
	Value    Col
	Position int64
}

func (entry[Col, ColPT]) BinSize() int {
	var zero Col
	return ColPT(&zero).BinSize() + 8
}

func (e entry[Col, ColPT]) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	dst, err := ColPT(&e.Value).Encode(dst, path)
	if err != nil {
		return dst, err
	}
	pos := codec.Int64(e.Position)
	return pos.Encode(dst, path)
}

func (e *entry[Col, ColPT]) Decode(data []byte, path recordpath.Path) error {
	width := ColPT(&e.Value).BinSize()
	if len(data) < width+8 {
		return pkgerrors.NewRecordError(
			nil, pkgerrors.ErrorCodeMalformedRecord, "secondary index entry truncated",
		)
	}
	if err := ColPT(&e.Value).Decode(data[:width], path); err != nil {
		return err
	}
	var pos codec.Int64
	if err := (&pos).Decode(data[width:width+8], path); err != nil {
		return err
	}
	e.Position = int64(pos)
	return nil
}

func (e entry[Col, ColPT]) Delete(path recordpath.Path) error {
	return ColPT(&e.Value).Delete(path)
}

// Unspecified is the type-erased lifecycle the table coordinator drives
// uniformly across every secondary index attached to a table, regardless of
// each index's projected column type (mirrors the reference
// implementation's UnspecifiedIndex trait).
type Unspecified[T any] interface {
	// Name identifies this index (the projected column's name) for errors
	// and logs.
	Name() string

	// CheckUnique reports whether row's projected value may be inserted
	// without violating this index's uniqueness constraint: false on a
	// conflict, always true when the index isn't declared unique.
	CheckUnique(row *T) (bool, error)

	// Insert splices row into the index at its sorted location, bumping
	// the recorded position of every existing entry at or past position.
	Insert(position int, row *T) error

	// Remove drops the entry recorded at position, decrementing every
	// entry recorded at a higher position.
	Remove(position int) error

	// Clear truncates the index file.
	Clear() error
}

// File is a secondary index over rows of type T, indexed by column type Col
// extracted with Extract.
type File[T any, TPT codec.ValuePtr[T], Col any, ColPT codec.ValuePtr[Col]] struct {
	name    string
	unique  bool
	extract func(*T) Col
	cmp     Comparator[Col]
	bin     *recordfile.File[entry[Col, ColPT], *entry[Col, ColPT]]
	log     *zap.SugaredLogger
}

// Open materializes (or reopens) the index file at path.
func Open[T any, TPT codec.ValuePtr[T], Col any, ColPT codec.ValuePtr[Col]](
	name string,
	path recordpath.Path,
	unique bool,
	extract func(*T) Col,
	cmp Comparator[Col],
	cfg recordfile.Config,
) (*File[T, TPT, Col, ColPT], error) {
	bin, err := recordfile.Open[entry[Col, ColPT], *entry[Col, ColPT]](path, cfg)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &File[T, TPT, Col, ColPT]{
		name: name, unique: unique, extract: extract, cmp: cmp, bin: bin, log: log,
	}, nil
}

// Name returns the index's identifying name.
func (f *File[T, TPT, Col, ColPT]) Name() string { return f.name }

// Unique reports whether this index enforces uniqueness.
func (f *File[T, TPT, Col, ColPT]) Unique() bool { return f.unique }

func (f *File[T, TPT, Col, ColPT]) sorted() *sortedindex.Index[entry[Col, ColPT], Col] {
	return sortedindex.New[entry[Col, ColPT], Col](f.name, f.bin, func(row entry[Col, ColPT], key Col) (int, bool) {
		return f.cmp(row.Value, key)
	})
}

// Positions returns the main-table positions of every row whose projected
// value equals value, via bisection (§4.7, §4.8).
func (f *File[T, TPT, Col, ColPT]) Positions(value Col) ([]int, error) {
	result := f.sorted().Find(value)
	switch result.Kind {
	case sortedindex.KindFound:
		positions := make([]int, len(result.Rows))
		for i, e := range result.Rows {
			positions[i] = int(e.Position)
		}
		return positions, nil
	case sortedindex.KindNotFound:
		return nil, nil
	default:
		return nil, result.Err
	}
}

// CheckUnique linearly scans for any entry whose projected value is equal
// to or incomparable with row's, rejecting on a hit (§4.8: "linear suffices
// because uniqueness checks are rare").
func (f *File[T, TPT, Col, ColPT]) CheckUnique(row *T) (bool, error) {
	if !f.unique {
		return true, nil
	}
	value := f.extract(row)
	entries, err := f.bin.Gets(0, nil)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		cmp, ok := f.cmp(e.Value, value)
		if !ok || cmp == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Insert rewrites the index file: every existing entry recorded at or past
// position is bumped by one, and a new entry for row's projected value is
// spliced in at its sorted location (§4.8).
func (f *File[T, TPT, Col, ColPT]) Insert(position int, row *T) error {
	value := f.extract(row)
	entries, err := f.bin.Gets(0, nil)
	if err != nil {
		return err
	}

	bumped := make([]entry[Col, ColPT], len(entries))
	for i, e := range entries {
		if int(e.Position) >= position {
			e.Position++
		}
		bumped[i] = e
	}

	at, err := f.insertionPoint(bumped, value)
	if err != nil {
		return err
	}

	final := make([]entry[Col, ColPT], 0, len(bumped)+1)
	final = append(final, bumped[:at]...)
	final = append(final, entry[Col, ColPT]{Value: value, Position: int64(position)})
	final = append(final, bumped[at:]...)

	return f.rewrite(final)
}

// insertionPoint finds the first position among entries whose value compares
// Greater than value, preserving sort order on insert. A comparator failure
// against any entry aborts the whole rewrite.
func (f *File[T, TPT, Col, ColPT]) insertionPoint(entries []entry[Col, ColPT], value Col) (int, error) {
	for i, e := range entries {
		cmp, ok := f.cmp(e.Value, value)
		if !ok {
			return 0, pkgerrors.NewComparatorFailureError(f.name, len(entries))
		}
		if cmp > 0 {
			return i, nil
		}
	}
	return len(entries), nil
}

// Remove drops the entry recorded at position and decrements the recorded
// position of every entry above it (§4.8).
func (f *File[T, TPT, Col, ColPT]) Remove(position int) error {
	entries, err := f.bin.Gets(0, nil)
	if err != nil {
		return err
	}

	final := make([]entry[Col, ColPT], 0, len(entries))
	for _, e := range entries {
		switch {
		case int(e.Position) < position:
			final = append(final, e)
		case int(e.Position) == position:
			continue
		default:
			e.Position--
			final = append(final, e)
		}
	}
	return f.rewrite(final)
}

// rewrite replaces the index file's entire contents with entries, the same
// clear-then-reinsert sequence the reference implementation uses for every
// index mutation.
func (f *File[T, TPT, Col, ColPT]) rewrite(entries []entry[Col, ColPT]) error {
	if err := f.bin.Clear(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return f.bin.Inserts(0, entries)
}

// Clear truncates the index file.
func (f *File[T, TPT, Col, ColPT]) Clear() error {
	return f.bin.Clear()
}
