package sidefile

import (
	"os"
	"testing"

	"github.com/iamNilotpal/rowstore/internal/recordpath"
	pkgerrors "github.com/iamNilotpal/rowstore/pkg/errors"
	"github.com/iamNilotpal/rowstore/pkg/options"
)

func testPath(t *testing.T) recordpath.Path {
	t.Helper()
	dir := t.TempDir()
	opts := options.Options{CacheEnabled: false, Fsync: false, DirPermissions: 0755, FilePermissions: 0644}
	return recordpath.Main(dir).WithOptions(opts)
}

func TestBinaryStringPayloadRoundTrip(t *testing.T) {
	path := testPath(t)

	b := NewBinary[StringPayload, *StringPayload]("hello side-file")
	dst, err := b.Encode(nil, path)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(dst) != b.BinSize() {
		t.Fatalf("Encode produced %d bytes, want BinSize() = %d", len(dst), b.BinSize())
	}
	if b.ID() == 0 {
		t.Fatalf("Encode should assign a nonzero id")
	}

	var got Binary[StringPayload, *StringPayload]
	if err := got.Decode(dst, path); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Data() != "hello side-file" {
		t.Fatalf("Data() = %q, want %q", got.Data(), "hello side-file")
	}
	if got.ID() != b.ID() {
		t.Fatalf("decoded id = %d, want %d", got.ID(), b.ID())
	}
}

func TestBinaryRewriteKeepsSameID(t *testing.T) {
	path := testPath(t)

	b := NewBinary[StringPayload, *StringPayload]("first")
	if _, err := b.Encode(nil, path); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	firstID := b.ID()

	b.SetData("second")
	dst, err := b.Encode(nil, path)
	if err != nil {
		t.Fatalf("Encode (rewrite): %v", err)
	}
	if b.ID() != firstID {
		t.Fatalf("rewrite changed id: got %d, want %d", b.ID(), firstID)
	}

	var got Binary[StringPayload, *StringPayload]
	if err := got.Decode(dst, path); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Data() != "second" {
		t.Fatalf("Data() after rewrite = %q, want %q", got.Data(), "second")
	}
}

func TestBinaryDeleteThenDeleteAgainFails(t *testing.T) {
	path := testPath(t)

	b := NewBinary[StringPayload, *StringPayload]("to delete")
	if _, err := b.Encode(nil, path); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if err := b.Delete(path); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if _, err := os.Stat(recordpath.Dyn(path.Dir, b.ID()).Full()); !os.IsNotExist(err) {
		t.Fatalf("side-file should be gone after Delete, stat err = %v", err)
	}

	err := b.Delete(path)
	if err == nil {
		t.Fatalf("second Delete should fail with MissingSideFile")
	}
	if code := pkgerrors.GetErrorCode(err); code != pkgerrors.ErrorCodeMissingSideFile {
		t.Fatalf("second Delete error code = %v, want %v", code, pkgerrors.ErrorCodeMissingSideFile)
	}
}

func TestBinaryDecodeMissingSideFile(t *testing.T) {
	path := testPath(t)
	if err := os.MkdirAll(path.DynDir(), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	var buf [8]byte
	buf[0] = 7 // nonzero, never-written id
	var b Binary[StringPayload, *StringPayload]
	err := b.Decode(buf[:], path)
	if err == nil {
		t.Fatalf("Decode of an unwritten id should fail")
	}
	if code := pkgerrors.GetErrorCode(err); code != pkgerrors.ErrorCodeMissingSideFile {
		t.Fatalf("error code = %v, want %v", code, pkgerrors.ErrorCodeMissingSideFile)
	}
}

func TestBinaryDecodeZeroIDIsMalformed(t *testing.T) {
	path := testPath(t)
	var buf [8]byte
	var b Binary[StringPayload, *StringPayload]
	err := b.Decode(buf[:], path)
	if err == nil {
		t.Fatalf("Decode of a zero id should fail")
	}
	if code := pkgerrors.GetErrorCode(err); code != pkgerrors.ErrorCodeMalformedRecord {
		t.Fatalf("error code = %v, want %v", code, pkgerrors.ErrorCodeMalformedRecord)
	}
}
