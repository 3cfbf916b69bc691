package errors

// IndexError provides specialized error handling for the sorted-index (§4.7)
// and secondary-index (§4.8) layers. It extends the base error system with
// index-specific context while properly supporting method chaining through
// all base error methods.
type IndexError struct {
	// Embed the base error to inherit all standard error functionality
	// including error chaining, structured details, and error codes.
	*baseError

	// name identifies which index file was involved (the secondary index's
	// name, or "<primary>" for the primary-key index).
	name string

	// operation describes what index operation was being performed when the
	// error occurred (e.g. "Insert", "Remove", "Indx").
	operation string

	// indexSize captures the number of entries the index held at the time
	// of the error, useful context for diagnosing corruption.
	indexSize int
}

// NewIndexError creates a new index-specific error with the provided context.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(err, code, msg)}
}

// Override base error methods to return *IndexError instead of *baseError.

// WithMessage updates the error message while maintaining the IndexError type.
func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

// WithCode sets the error code while preserving the IndexError type.
func (ie *IndexError) WithCode(code ErrorCode) *IndexError {
	ie.baseError.WithCode(code)
	return ie
}

// WithDetail adds contextual information while maintaining the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithName records which index file was involved in the error.
func (ie *IndexError) WithName(name string) *IndexError {
	ie.name = name
	return ie
}

// WithOperation records what index operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// WithIndexSize captures the size of the index when the error occurred.
func (ie *IndexError) WithIndexSize(size int) *IndexError {
	ie.indexSize = size
	return ie
}

// Name returns the index file name involved in the error.
func (ie *IndexError) Name() string {
	return ie.name
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// IndexSize returns the size of the index when the error occurred.
func (ie *IndexError) IndexSize() int {
	return ie.indexSize
}

// NewComparatorFailureError builds the error surfaced when a user-supplied
// comparator returns "incomparable" during a bisection search (§4.7).
func NewComparatorFailureError(name string, size int) *IndexError {
	return NewIndexError(nil, ErrorCodeComparatorFailure, "comparator returned an incomparable result").
		WithName(name).
		WithOperation("Indx").
		WithIndexSize(size)
}

// NewConsistencyViolationError builds the error surfaced when an on-disk
// invariant is broken, e.g. more than one row sharing a primary key (§4.9).
func NewConsistencyViolationError(name, detail string) *IndexError {
	return NewIndexError(nil, ErrorCodeConsistencyViolation, detail).
		WithName(name).
		WithOperation("Indx")
}
