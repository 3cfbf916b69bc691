// Package rowstore is the primary entry point for opening a table: it wires
// a service logger, resolved options, and a constructed set of secondary
// indexes into one table.Table, the same role the reference implementation's
// generated Table::open plays for a concrete schema.
package rowstore

import (
	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/secondaryindex"
	"github.com/iamNilotpal/rowstore/internal/table"
	"github.com/iamNilotpal/rowstore/pkg/logger"
	"github.com/iamNilotpal/rowstore/pkg/options"
)

// Instance wraps an open table, giving callers every table.Table method
// directly (Insert, GetByID, GetAll, Remove, Rebuild, ...) while keeping the
// construction details — logger, option resolution, secondary-index wiring
// — out of application code.
type Instance[T any, TPT codec.ValuePtr[T], ID any, IDPT codec.ValuePtr[ID]] struct {
	*table.Table[T, TPT, ID, IDPT]
}

// Open resolves opts against the package defaults, builds a logger tagged
// with service, and opens the table rooted at dir.
//
// idOf projects a row's primary key and idCmp orders two primary-key
// values, the same pair a generated schema would supply. secondary is the
// fully constructed set of secondary indexes this table maintains; build
// each with secondaryindex.Open against recordpath.Index(dir, name) before
// calling Open.
func Open[T any, TPT codec.ValuePtr[T], ID any, IDPT codec.ValuePtr[ID]](
	dir string,
	service string,
	idOf func(*T) ID,
	idCmp func(a, b ID) (cmp int, ok bool),
	secondary []secondaryindex.Unspecified[T],
	cached bool,
	opts ...options.OptionFunc,
) (*Instance[T, TPT, ID, IDPT], error) {
	dir = options.SanitizePath(dir)
	log := logger.New(service)

	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	tbl, err := table.Open[T, TPT, ID, IDPT](
		dir, idOf, idCmp, secondary,
		table.Config{Options: resolved, Logger: log, Cached: cached},
	)
	if err != nil {
		return nil, err
	}

	return &Instance[T, TPT, ID, IDPT]{Table: tbl}, nil
}
