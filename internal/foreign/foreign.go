// Package foreign implements cross-table references (§4.9, C9): a field
// holding another table's primary-key value, dereferenced on demand through
// that table without any referential-integrity enforcement — a foreign may
// dangle (§4.9: "No referential-integrity enforcement across tables").
//
// Grounded on the reference implementation's Foreign<Row>: a thin Binary
// wrapper around Row::ID whose data() delegates to the target table's
// get_by_id and returns the same result shape.
package foreign

import (
	"github.com/iamNilotpal/rowstore/internal/codec"
	"github.com/iamNilotpal/rowstore/internal/recordpath"
	"github.com/iamNilotpal/rowstore/internal/table"
)

// Foreign carries the primary-key value of a row in another table, encoded
// exactly as that table's ID field (§6: "Foreign: encoding of the target
// table's ID field").
type Foreign[ID any, IDPT codec.ValuePtr[ID]] struct {
	id ID
}

// New wraps an ID as a foreign reference.
func New[ID any, IDPT codec.ValuePtr[ID]](id ID) Foreign[ID, IDPT] {
	return Foreign[ID, IDPT]{id: id}
}

// ID returns the referenced primary-key value.
func (f Foreign[ID, IDPT]) ID() ID { return f.id }

func (Foreign[ID, IDPT]) BinSize() int {
	var zero ID
	return IDPT(&zero).BinSize()
}

func (f Foreign[ID, IDPT]) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	return IDPT(&f.id).Encode(dst, path)
}

func (f *Foreign[ID, IDPT]) Decode(data []byte, path recordpath.Path) error {
	return IDPT(&f.id).Decode(data, path)
}

// Delete is a no-op: a foreign reference owns no external resource (§4.2:
// "Foreign and primitives have no-op delete").
func (Foreign[ID, IDPT]) Delete(_ recordpath.Path) error { return nil }

// Resolver is the minimal shape a Foreign dereferences through — satisfied
// by *table.Table[Row, RowPT, ID, IDPT] without requiring Foreign to know
// the target table's full generic signature.
type Resolver[Row, ID any] interface {
	GetByID(id ID) table.Get[Row]
}

// Resolve dereferences f through r, returning the same Found/NotFound/
// InternalError/Err shape the target table's own lookups return (§4.9:
// "exposes data(&table_T) that delegates to table_T.get_by_id").
func Resolve[Row any, ID any, IDPT codec.ValuePtr[ID]](f Foreign[ID, IDPT], r Resolver[Row, ID]) table.Get[Row] {
	return r.GetByID(f.id)
}
