// Package errors implements the error taxonomy spec'd in §7 of the row
// store design: every fallible operation surfaces one of a small set of
// typed errors rather than an opaque string, so callers can distinguish
// "not found" from "corrupt" from "I/O failed" without parsing messages.
//
// The system is built around a hierarchical structure that starts with a
// foundational baseError and extends into domain-specific error types:
// ValidationError for bad configuration/input, RecordError for record-file
// and side-file failures, and IndexError for sorted/secondary index
// failures. Each embeds baseError and overrides its fluent With* methods so
// that chaining preserves the concrete type instead of widening back to
// baseError.
//
// Error codes (codes.go) provide a stable, comparable classification that
// doesn't require type assertions: ErrorCodeOutOfBounds, ErrorCodeCorrupt,
// ErrorCodeMalformedRecord, and ErrorCodeMissingSideFile map directly onto
// the error kinds spec.md §7 names. Classification helpers in this file
// (ClassifyFileOpenError, ClassifySyncError) inspect the underlying OS
// error and pick the most specific code available, the way the teacher's
// segment-file classification did for its own domain.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsRecordError determines if an error originated in the record-file or
// side-file layer, such as file I/O, out-of-bounds offsets, or corruption.
func IsRecordError(err error) bool {
	var re *RecordError
	return stdErrors.As(err, &re)
}

// IsIndexError identifies errors that occurred during sorted or secondary
// index operations such as bisection, insert, or remove.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsRecordError safely extracts a RecordError from an error chain, giving
// access to the row index, byte offset, file name, and path involved.
func AsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if stdErrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// AsIndexError safely extracts an IndexError from an error chain, giving
// access to the index name, operation, and size involved.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't have specific codes.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if re, ok := AsRecordError(err); ok {
		return re.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports
// them, returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if re, ok := AsRecordError(err); ok {
		if details := re.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIndexError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	return map[string]any{}
}

// ClassifyDirError analyzes directory-creation failures (table root, dyn/,
// index/) and returns the most specific RecordError available.
func ClassifyDirError(err error, path string) error {
	if err == nil {
		return nil
	}
	if os.IsPermission(err) {
		return NewRecordError(
			err, ErrorCodePermissionDenied, "insufficient permissions to create directory",
		).WithPath(path).WithDetail("operation", "directory_creation")
	}
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewRecordError(
					err, ErrorCodeDiskFull, "insufficient disk space to create directory",
				).WithPath(path).WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewRecordError(
					err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem",
				).WithPath(path).WithDetail("operation", "directory_creation")
			}
		}
	}
	return NewRecordError(err, ErrorCodeIO, "failed to create table directory").
		WithPath(path).WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError analyzes file-opening failures (main.bin,
// dyn/<id>.bin, index/<name>.bin) and returns appropriate error codes based
// on the underlying system error.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if err == nil {
		return nil
	}
	if os.IsPermission(err) {
		return NewRecordError(
			err, ErrorCodePermissionDenied, "insufficient permissions to open file",
		).WithPath(filePath).
			WithFileName(fileName).
			WithDetail("operation", "file_open")
	}
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewRecordError(
					err, ErrorCodeDiskFull, "insufficient disk space to create file",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewRecordError(
					err, ErrorCodeFilesystemReadonly, "cannot create file on read-only filesystem",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			}
		}
	}
	return NewRecordError(err, ErrorCodeIO, "failed to open file").
		WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
}

// ClassifySyncError analyzes fsync failures and returns the most specific
// RecordError available. Sync failures can indicate disk space exhaustion,
// a read-only remount, or underlying hardware/filesystem corruption.
func ClassifySyncError(err error, fileName, filePath string, offset int64) error {
	if err == nil {
		return nil
	}
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewRecordError(
					err, ErrorCodeDiskFull, "cannot sync file: insufficient disk space",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EROFS:
				return NewRecordError(
					err, ErrorCodeFilesystemReadonly, "cannot sync file: filesystem is read-only",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EIO:
				return NewRecordError(
					err, ErrorCodeIO, "I/O error during file sync",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
					WithDetail("operation", "file_sync").
					WithDetail("suggestion", "check filesystem integrity and hardware health")
			}
		}
	}
	return NewRecordError(err, ErrorCodeIO, "failed to sync file to disk").
		WithFileName(fileName).WithPath(filePath).WithOffset(offset).
		WithDetail("operation", "file_sync")
}
