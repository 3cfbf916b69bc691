// Package table implements the table coordinator (§4.9, C9): the main
// record file (optionally cached), a primary-key sorted index computed
// directly over the main file, and zero or more secondary indexes, composed
// into one consistent unit of insert/remove/lookup.
//
// Grounded on the reference implementation's SpecificTableFile: insert runs
// every secondary index's uniqueness check, then the primary-key index's
// insertion point, then the main-file write, then each secondary index's
// own insert; remove runs the same lookup in reverse, dropping from every
// secondary index before the main file. A table is generic over its own row
// type the same way SpecificTableFile is generic over Row and its backing
// BaseBinFile implementation — Cached selects which backing the table opens
// with, mirroring the reference's TableFile/CachedTableFile type aliases.
package table

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iamNilotpal/rowstore/internal/cachedfile"
	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordfile"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	"github.com/iamNilotpal/rowstore/internal/secondaryindex"
	"github.com/iamNilotpal/rowstore/internal/sortedindex"
	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
	"github.com/iamNilotpal/rowstore/pkg/options"
)

// Kind discriminates a Get result the way the reference TableGet enum's
// variants do.
type Kind int

const (
	// KindFound means the lookup matched exactly one row.
	KindFound Kind = iota
	// KindNotFound means no row matched.
	KindNotFound
	// KindInternalError means an on-disk invariant was violated, e.g. more
	// than one row sharing a primary key.
	KindInternalError
	// KindErr means a read from the underlying file failed.
	KindErr
)

// Get is the outcome of an id-keyed lookup (GetByID, RemoveFromCache).
type Get[Row any] struct {
	Kind Kind
	Row  Row
	Err  error
}

// mainFile is the shape both recordfile.File and cachedfile.File satisfy,
// letting Table stay agnostic to whether the main file is cached.
type mainFile[Row any] interface {
	Path() recordpath.Path
	RowSize() int
	Len() (int, error)
	IsEmpty() (bool, error)
	Get(i int) (Row, error)
	Gets(i int, n *int) ([]Row, error)
	Insert(i int, row Row) error
	Inserts(i int, rows []Row) error
	Remove(i int, n *int) error
	Clear() error
}

// Config controls how a Table opens its main file.
type Config struct {
	Options options.Options
	Logger  *zap.SugaredLogger
	// Cached selects a cachedfile.File backing (C6) over a plain
	// recordfile.File (C4).
	Cached bool
}

// Table composes the main file, the primary-key index, and every attached
// secondary index into one coordinated unit.
type Table[T any, TPT codec.ValuePtr[T], ID any, IDPT codec.ValuePtr[ID]] struct {
	name      string
	bin       mainFile[T]
	idOf      func(*T) ID
	idCmp     func(a, b ID) (cmp int, ok bool)
	secondary []secondaryindex.Unspecified[T]
	log       *zap.SugaredLogger
}

// Open returns a Table rooted at dir. idOf projects a row's primary key;
// idCmp orders two primary-key values. secondary is the fully constructed
// set of secondary indexes this table maintains — callers build each with
// secondaryindex.Open against recordpath.Index(dir, name) before calling
// Open, the same way the reference implementation's generated
// Table::get_indexes constructs them ahead of SpecificTableFile::new.
func Open[T any, TPT codec.ValuePtr[T], ID any, IDPT codec.ValuePtr[ID]](
	dir string,
	idOf func(*T) ID,
	idCmp func(a, b ID) (cmp int, ok bool),
	secondary []secondaryindex.Unspecified[T],
	cfg Config,
) (*Table[T, TPT, ID, IDPT], error) {
	dir = options.SanitizePath(dir)
	path := recordpath.Main(dir)
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	var bin mainFile[T]
	if cfg.Cached {
		f, err := cachedfile.Open[T, TPT](path, cachedfile.Config{Options: cfg.Options, Logger: log})
		if err != nil {
			return nil, err
		}
		bin = f
	} else {
		f, err := recordfile.Open[T, TPT](path, recordfile.Config{Options: cfg.Options, Logger: log})
		if err != nil {
			return nil, err
		}
		bin = f
	}

	return &Table[T, TPT, ID, IDPT]{
		name:      filepath.Base(dir),
		bin:       bin,
		idOf:      idOf,
		idCmp:     idCmp,
		secondary: secondary,
		log:       log,
	}, nil
}

func (t *Table[T, TPT, ID, IDPT]) primaryIndex() *sortedindex.Index[T, ID] {
	return sortedindex.New[T, ID]("<primary>", t.bin, func(row T, key ID) (int, bool) {
		return t.idCmp(t.idOf(&row), key)
	})
}

// GetByIndex fetches the row at the exact main-file position k.
func (t *Table[T, TPT, ID, IDPT]) GetByIndex(k int) (T, error) {
	return t.bin.Get(k)
}

// GetByID bisects the primary-key index for id (§4.9).
func (t *Table[T, TPT, ID, IDPT]) GetByID(id ID) Get[T] {
	result := t.primaryIndex().Find(id)
	switch result.Kind {
	case sortedindex.KindFound:
		switch len(result.Rows) {
		case 1:
			return Get[T]{Kind: KindFound, Row: result.Rows[0]}
		case 0:
			return Get[T]{Kind: KindInternalError, Err: pkgerrors.NewConsistencyViolationError(t.name, "primary index returned an empty run")}
		default:
			return Get[T]{Kind: KindInternalError, Err: pkgerrors.NewConsistencyViolationError(t.name, "multiple rows with the same id")}
		}
	case sortedindex.KindNotFound:
		return Get[T]{Kind: KindNotFound}
	case sortedindex.KindInternalError:
		return Get[T]{Kind: KindInternalError, Err: result.Err}
	default:
		return Get[T]{Kind: KindErr, Err: result.Err}
	}
}

// GetAll returns every row in on-disk (primary-key) order.
func (t *Table[T, TPT, ID, IDPT]) GetAll() ([]T, error) {
	return t.bin.Gets(0, nil)
}

// IsEmpty reports whether the table holds zero rows.
func (t *Table[T, TPT, ID, IDPT]) IsEmpty() (bool, error) { return t.bin.IsEmpty() }

// Len returns the table's row count.
func (t *Table[T, TPT, ID, IDPT]) Len() (int, error) { return t.bin.Len() }

// Insert adds row if no uniqueness constraint rejects it and its primary
// key isn't already present, returning false (not an error) on either
// rejection (§4.9).
func (t *Table[T, TPT, ID, IDPT]) Insert(row T) (bool, error) {
	for _, idx := range t.secondary {
		ok, err := idx.CheckUnique(&row)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	result := t.primaryIndex().Find(t.idOf(&row))
	var at int
	switch result.Kind {
	case sortedindex.KindFound:
		return false, nil
	case sortedindex.KindNotFound:
		at = result.Index
	default:
		return false, result.Err
	}

	if err := t.bin.Insert(at, row); err != nil {
		return false, err
	}
	for _, idx := range t.secondary {
		if err := idx.Insert(at, &row); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Remove locates id via the primary index, drops it from every secondary
// index, then removes it from the main file, which also releases any
// side-files the row owns (§4.9, §4.4).
func (t *Table[T, TPT, ID, IDPT]) Remove(id ID) error {
	result := t.primaryIndex().Find(id)
	switch result.Kind {
	case sortedindex.KindFound:
		if len(result.Rows) != 1 {
			return pkgerrors.NewConsistencyViolationError(t.name, "multiple rows with the same id")
		}
	case sortedindex.KindNotFound:
		return pkgerrors.NewRecordError(nil, pkgerrors.ErrorCodeOutOfBounds, "remove: id not found").WithFileName(t.name)
	default:
		return result.Err
	}

	at := result.Index
	for _, idx := range t.secondary {
		if err := idx.Remove(at); err != nil {
			return err
		}
	}
	return t.bin.Remove(at, intPtr(1))
}

// Clear empties the main file and every secondary index.
func (t *Table[T, TPT, ID, IDPT]) Clear() error {
	if err := t.bin.Clear(); err != nil {
		return err
	}
	for _, idx := range t.secondary {
		if err := idx.Clear(); err != nil {
			return err
		}
	}
	return nil
}

// Rebuild reconstructs every secondary index from the main file's current
// contents, one goroutine per index (a supplemented operation — not in the
// distilled spec — addressing §4.8's documented hazard that "a crash
// between [main file and index writes] leaves indexes out of sync").
func (t *Table[T, TPT, ID, IDPT]) Rebuild(ctx context.Context) error {
	rows, err := t.GetAll()
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	for _, idx := range t.secondary {
		idx := idx
		g.Go(func() error {
			if err := idx.Clear(); err != nil {
				return err
			}
			for i := range rows {
				if err := idx.Insert(i, &rows[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// cacheEvictor is implemented by cachedfile.File; RemoveFromCache type-
// asserts against it so Table stays agnostic to the main file's backing.
type cacheEvictor interface {
	RemoveFromCache(i int, n *int)
}

// RemoveFromCache evicts id's row from the cache layer only, without
// touching disk — a supplemented operation (mirrors
// CachedTableFile::remove_from_cache) that only does something useful when
// this Table was opened with Config.Cached.
func (t *Table[T, TPT, ID, IDPT]) RemoveFromCache(id ID) Get[struct{}] {
	evictor, ok := t.bin.(cacheEvictor)
	if !ok {
		return Get[struct{}]{
			Kind: KindInternalError,
			Err:  pkgerrors.NewIndexError(nil, pkgerrors.ErrorCodeInvalidInput, "table is not cache-backed").WithName(t.name),
		}
	}

	result := t.primaryIndex().Find(id)
	switch result.Kind {
	case sortedindex.KindFound:
		if len(result.Rows) != 1 {
			return Get[struct{}]{Kind: KindInternalError, Err: pkgerrors.NewConsistencyViolationError(t.name, "multiple rows with the same id")}
		}
		evictor.RemoveFromCache(result.Index, intPtr(1))
		return Get[struct{}]{Kind: KindFound}
	case sortedindex.KindNotFound:
		return Get[struct{}]{Kind: KindNotFound}
	case sortedindex.KindInternalError:
		return Get[struct{}]{Kind: KindInternalError, Err: result.Err}
	default:
		return Get[struct{}]{Kind: KindErr, Err: result.Err}
	}
}

func intPtr(v int) *int { return &v }
