// Package sidefile implements the dynamic-field side-file store (§4.3, C3):
// a variable-length payload persisted in its own file under a table's dyn/
// directory, referenced from the owning record by a stable nonzero 64-bit
// identifier.
//
// Identifier allocation is randomized with collision retry rather than
// derived from directory entry counts — a deliberate redesign from the
// reference implementation this store's semantics were distilled from,
// which assigned ids by counting existing side-files. Counting races
// against concurrent inserts within a single mutating session and produces
// reused ids if a side-file is removed and another inserted before the
// count is re-read; drawing from the full 64-bit space and retrying on
// collision sidesteps both problems at the cost of a few wasted stat calls,
// vanishingly rare at any realistic table size.
package sidefile

import (
	"encoding/binary"
	"io"
	"math/rand/v2"
	"os"

	"github.com/iamNilotpal/rowstore/internal/recordpath"
	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
	"github.com/iamNilotpal/rowstore/pkg/options"
)

func appendUint64LE(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func parseUint64LE(data []byte) uint64 {
	return binary.LittleEndian.Uint64(data)
}

// maxIDAttempts bounds the collision-retry loop; with a 64-bit id space a
// real collision run this long would indicate a broken RNG, not bad luck.
const maxIDAttempts = 64

// Binary is a dynamic field: an in-memory payload of type T, plus the
// side-file id it has been assigned (zero means "not yet written").
type Binary[T any, PT PayloadPtr[T]] struct {
	id   uint64
	data T
}

// NewBinary wraps a freshly constructed payload with no side-file id yet.
func NewBinary[T any, PT PayloadPtr[T]](data T) Binary[T, PT] {
	return Binary[T, PT]{data: data}
}

// ID returns the assigned side-file id, or 0 if this value has never been
// encoded.
func (b Binary[T, PT]) ID() uint64 {
	return b.id
}

// Data returns the decoded payload.
func (b Binary[T, PT]) Data() T {
	return b.data
}

// SetData replaces the payload; the existing side-file id (if any) is kept
// so the next encode overwrites the same file in place (§4.3: "IDs are
// assigned at first write and preserved through subsequent rewrites").
func (b *Binary[T, PT]) SetData(data T) {
	b.data = data
}

// BinSize is the fixed 8-byte width of the id field stored in the main
// record (§6: "Dynamic field: 8-byte little-endian NonZero<u64>").
func (Binary[T, PT]) BinSize() int { return 8 }

// Encode assigns a side-file id on first call, writes the payload to
// dyn/<id>.bin (overwriting in place on subsequent calls), and appends the
// 8-byte little-endian id to dst (§4.3). Durability and permission behavior
// follow path.Options(), which the table and record-file layers populate
// from the table's configured options.Options before any field ever sees
// the path.
func (b *Binary[T, PT]) Encode(dst []byte, path recordpath.Path) ([]byte, error) {
	if err := b.encode(path, path.Options()); err != nil {
		return dst, err
	}
	return appendUint64LE(dst, b.id), nil
}

func (b *Binary[T, PT]) encode(path recordpath.Path, opts options.Options) error {
	payload, err := PT(&b.data).MarshalPayload(path)
	if err != nil {
		return err
	}

	dynDir := path.DynDir()
	if b.id == 0 {
		if err := os.MkdirAll(dynDir, opts.DirPermissions); err != nil {
			return pkgerrors.ClassifyDirError(err, dynDir)
		}
		id, err := allocateID(path.Dir)
		if err != nil {
			return err
		}
		b.id = id
	}

	sidePath := recordpath.Dyn(path.Dir, b.id)
	f, err := os.OpenFile(sidePath.Full(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, opts.FilePermissions)
	if err != nil {
		return pkgerrors.ClassifyFileOpenError(err, sidePath.Full(), sidePath.Rel)
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		return pkgerrors.NewRecordError(err, pkgerrors.ErrorCodeIO, "failed to write side-file").
			WithPath(sidePath.Full()).WithFileName(sidePath.Rel)
	}

	if opts.Fsync {
		if err := f.Sync(); err != nil {
			return pkgerrors.ClassifySyncError(err, sidePath.Rel, sidePath.Full(), 0)
		}
	}

	return nil
}

// Decode parses the 8-byte id, opens dyn/<id>.bin, reads it to EOF, and
// decodes the bytes through the inner payload codec (§4.3).
func (b *Binary[T, PT]) Decode(data []byte, path recordpath.Path) error {
	id := parseUint64LE(data)
	if id == 0 {
		return pkgerrors.NewRecordError(
			nil, pkgerrors.ErrorCodeMalformedRecord, "dynamic field id is zero",
		)
	}

	sidePath := recordpath.Dyn(path.Dir, id)
	f, err := os.Open(sidePath.Full())
	if err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.NewRecordError(
				err, pkgerrors.ErrorCodeMissingSideFile, "side-file not found",
			).WithPath(sidePath.Full()).WithFileName(sidePath.Rel)
		}
		return pkgerrors.ClassifyFileOpenError(err, sidePath.Full(), sidePath.Rel)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return pkgerrors.NewRecordError(err, pkgerrors.ErrorCodeIO, "failed to read side-file").
			WithPath(sidePath.Full()).WithFileName(sidePath.Rel)
	}

	var payload T
	if err := PT(&payload).UnmarshalPayload(raw, path); err != nil {
		return err
	}

	b.id = id
	b.data = payload
	return nil
}

// Delete removes dyn/<id>.bin. Calling Delete twice on the same value
// returns MissingSideFile on the second call (§4.3: "idempotent only in
// that a second delete fails with MissingSideFile").
func (b Binary[T, PT]) Delete(path recordpath.Path) error {
	if b.id == 0 {
		return nil
	}
	sidePath := recordpath.Dyn(path.Dir, b.id)
	if err := os.Remove(sidePath.Full()); err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.NewRecordError(
				err, pkgerrors.ErrorCodeMissingSideFile, "side-file already removed",
			).WithPath(sidePath.Full()).WithFileName(sidePath.Rel)
		}
		return pkgerrors.NewRecordError(err, pkgerrors.ErrorCodeIO, "failed to remove side-file").
			WithPath(sidePath.Full()).WithFileName(sidePath.Rel)
	}
	return nil
}

// allocateID draws a random nonzero 64-bit value and retries on collision
// with an existing dyn/<id>.bin (§4.3, §9 "Side-file identifier
// allocation"). tableDir is the table root, not the dyn/ directory itself —
// recordpath.Dyn derives the full side-file path from it.
func allocateID(tableDir string) (uint64, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := rand.Uint64()
		if id == 0 {
			continue
		}
		p := recordpath.Dyn(tableDir, id).Full()
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return id, nil
		}
	}
	return 0, pkgerrors.NewRecordError(
		nil, pkgerrors.ErrorCodeInternal, "exhausted side-file id allocation attempts",
	)
}
