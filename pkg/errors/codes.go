package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary. This includes file system operations like reading or
	// writing record, side-file and index files, and device I/O when
	// accessing storage hardware.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints. This maps
	// to HTTP 400-series errors and indicates problems with the request itself
	// rather than system failures.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These are the equivalent of HTTP 500 errors and
	// indicate bugs, assertion failures, or other programming errors that
	// shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base error taxonomy to handle the
// unique failure modes that occur in a fixed-width record file: bad offsets,
// corrupt lengths, and resource-limited environments.
const (
	// ErrorCodeOutOfBounds indicates an index or byte offset past the end of
	// a record file, e.g. get(i) where i >= len().
	ErrorCodeOutOfBounds ErrorCode = "OUT_OF_BOUNDS"

	// ErrorCodeCorrupt indicates a record file whose size isn't a multiple of
	// the row width, or a decoder that rejected the bytes it was given.
	ErrorCodeCorrupt ErrorCode = "CORRUPT"

	// ErrorCodePermissionDenied indicates insufficient permissions to access a resource.
	// This is distinct from generic IO errors because it has a specific resolution path:
	// the user needs to adjust file/directory permissions or run with elevated privileges.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	// This requires specific handling like cleanup operations or alerting administrators.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	// This requires administrative intervention to remount the filesystem with write permissions.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)

// Field-level error codes cover the decode-time semantic checks a field's
// codec is responsible for (§4.2) and the side-file lifecycle (§4.3).
const (
	// ErrorCodeMalformedRecord indicates a field-specific invariant was
	// violated while decoding, such as a zero side-file id or invalid UTF-8.
	ErrorCodeMalformedRecord ErrorCode = "MALFORMED_RECORD"

	// ErrorCodeMissingSideFile indicates a dynamic field's backing file in
	// dyn/ could not be found where a live record's id says it should be.
	ErrorCodeMissingSideFile ErrorCode = "MISSING_SIDE_FILE"
)

// Index-specific error codes cover the sorted/secondary index layer (§4.7, §4.8).
const (
	// ErrorCodeComparatorFailure indicates a user-supplied comparator
	// returned "incomparable" (e.g. NaN) during a bisection search.
	ErrorCodeComparatorFailure ErrorCode = "COMPARATOR_FAILURE"

	// ErrorCodeConsistencyViolation indicates an on-disk invariant was
	// broken, such as two rows sharing the same primary key.
	ErrorCodeConsistencyViolation ErrorCode = "CONSISTENCY_VIOLATION"
)
