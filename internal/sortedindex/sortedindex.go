// Package sortedindex implements the sorted-index bisection search (§4.7,
// C7): locating the run of rows matching a key inside a record file kept in
// sorted order by some projected column, without scanning the whole file.
//
// The algorithm is a direct port of this store's reference index
// implementation's bin_search/expand_min/expand_max: bisect to find any one
// row comparing Equal, then walk outward in both directions while the
// comparator keeps returning Equal to find the full run's boundaries.
package sortedindex

import (
	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
)

// Source is the minimal record-file shape bisection needs: a row count and
// random-access reads by position. Both recordfile.File and cachedfile.File
// satisfy this without modification.
type Source[Row any] interface {
	Len() (int, error)
	Get(i int) (Row, error)
}

// Comparator orders a row against a search key. ok is false when the two are
// incomparable (the Go analogue of Rust's PartialOrd returning None), which
// aborts the search as a comparator failure rather than silently picking a
// direction (§4.7, §7).
type Comparator[Row, Key any] func(row Row, key Key) (cmp int, ok bool)

// Kind discriminates a Result the way the reference IndexGet enum's variants
// do.
type Kind int

const (
	// KindFound means at least one row matched the key; Index is the first
	// matching position and Rows holds the full contiguous run.
	KindFound Kind = iota
	// KindNotFound means no row matched; Index is where the key would be
	// inserted to keep the file sorted.
	KindNotFound
	// KindInternalError means the comparator reported rows as incomparable
	// partway through the search.
	KindInternalError
	// KindErr means a read from the underlying source failed.
	KindErr
)

// Result is the outcome of a Find call.
type Result[Row any] struct {
	Kind  Kind
	Index int
	Rows  []Row
	Err   error
}

// Index performs bisection search over a Source kept sorted by Comparator.
// name identifies this index in errors and logs (the secondary index's name,
// or "<primary>" for the table's own primary-key index).
type Index[Row, Key any] struct {
	name string
	src  Source[Row]
	cmp  Comparator[Row, Key]
}

// New wraps src as a sorted index, comparing rows against search keys via
// cmp.
func New[Row, Key any](name string, src Source[Row], cmp Comparator[Row, Key]) *Index[Row, Key] {
	return &Index[Row, Key]{name: name, src: src, cmp: cmp}
}

// Find bisects for key, returning the full matching run, an insertion point,
// or a failure (§4.7).
func (x *Index[Row, Key]) Find(key Key) Result[Row] {
	length, err := x.src.Len()
	if err != nil {
		return Result[Row]{Kind: KindErr, Err: err}
	}
	if length == 0 {
		return Result[Row]{Kind: KindNotFound, Index: 0}
	}
	return x.binSearch(0, length-1, key, length)
}

func (x *Index[Row, Key]) binSearch(from, to int, key Key, size int) Result[Row] {
	for from <= to {
		idx := (to-from)/2 + from
		found, err := x.src.Get(idx)
		if err != nil {
			return Result[Row]{Kind: KindErr, Err: err}
		}

		cmp, ok := x.cmp(found, key)
		if !ok {
			return Result[Row]{
				Kind: KindInternalError,
				Err:  pkgerrors.NewComparatorFailureError(x.name, size),
			}
		}

		switch {
		case cmp == 0:
			start, err := x.expandMin(idx, key)
			if err != nil {
				return Result[Row]{Kind: KindErr, Err: err}
			}
			end, err := x.expandMax(idx, key, size)
			if err != nil {
				return Result[Row]{Kind: KindErr, Err: err}
			}

			rows := make([]Row, 0, end-start+1)
			for i := start; i <= end; i++ {
				row, err := x.src.Get(i)
				if err != nil {
					return Result[Row]{Kind: KindErr, Err: err}
				}
				rows = append(rows, row)
			}
			return Result[Row]{Kind: KindFound, Index: start, Rows: rows}

		case cmp > 0: // found > key: search the left half
			if idx == from {
				return Result[Row]{Kind: KindNotFound, Index: idx}
			}
			to = idx - 1

		default: // found < key: search the right half
			if idx == to {
				return Result[Row]{Kind: KindNotFound, Index: idx + 1}
			}
			from = idx + 1
		}
	}
	return Result[Row]{
		Kind: KindInternalError,
		Err:  pkgerrors.NewIndexError(nil, pkgerrors.ErrorCodeInternal, "bisection fell outside range").WithName(x.name),
	}
}

// expandMin walks left from idx while rows keep comparing Equal to key,
// returning the first index of the matching run.
func (x *Index[Row, Key]) expandMin(idx int, key Key) (int, error) {
	if idx == 0 {
		return idx, nil
	}
	idx--
	for {
		row, err := x.src.Get(idx)
		if err != nil {
			return 0, err
		}
		cmp, ok := x.cmp(row, key)
		if !ok || cmp != 0 {
			return idx + 1, nil
		}
		if idx == 0 {
			return idx, nil
		}
		idx--
	}
}

// expandMax walks right from idx while rows keep comparing Equal to key,
// returning the last index of the matching run.
func (x *Index[Row, Key]) expandMax(idx int, key Key, size int) (int, error) {
	if idx+1 == size {
		return idx, nil
	}
	idx++
	for {
		row, err := x.src.Get(idx)
		if err != nil {
			return 0, err
		}
		cmp, ok := x.cmp(row, key)
		if !ok || cmp != 0 {
			return idx - 1, nil
		}
		if idx+1 == size {
			return idx, nil
		}
		idx++
	}
}
