package errors

// RecordError is a specialized error type for the fixed-width record file
// (§4.4) and its side-file store (§4.3). It embeds baseError to inherit the
// standard error functionality, then adds the location context needed to
// pinpoint exactly where in a table's on-disk layout a problem occurred.
type RecordError struct {
	*baseError
	rowIndex int    // Row position being accessed when the error occurred, -1 if not applicable.
	offset   int64  // Byte offset within the file where the problem happened.
	fileName string // Name of the file that caused the issue.
	path     string // Full path of the file that caused the issue.
}

// NewRecordError creates a new record-file error.
func NewRecordError(err error, code ErrorCode, msg string) *RecordError {
	return &RecordError{baseError: NewBaseError(err, code, msg), rowIndex: -1}
}

// Override base error methods to return *RecordError instead of *baseError.

// WithMessage updates the error message while maintaining the RecordError type.
func (re *RecordError) WithMessage(msg string) *RecordError {
	re.baseError.WithMessage(msg)
	return re
}

// WithCode sets the error code while preserving the RecordError type.
func (re *RecordError) WithCode(code ErrorCode) *RecordError {
	re.baseError.WithCode(code)
	return re
}

// WithDetail adds contextual information while preserving the RecordError type.
func (re *RecordError) WithDetail(key string, value any) *RecordError {
	re.baseError.WithDetail(key, value)
	return re
}

// WithRowIndex records which row was being accessed when the error occurred.
func (re *RecordError) WithRowIndex(index int) *RecordError {
	re.rowIndex = index
	return re
}

// WithOffset records the byte position where the error occurred.
func (re *RecordError) WithOffset(offset int64) *RecordError {
	re.offset = offset
	return re
}

// WithFileName captures which file was being processed when the error occurred.
func (re *RecordError) WithFileName(fileName string) *RecordError {
	re.fileName = fileName
	return re
}

// WithPath captures which path was being processed when the error occurred.
func (re *RecordError) WithPath(path string) *RecordError {
	re.path = path
	return re
}

// RowIndex returns the row position involved in the error, or -1 if none.
func (re *RecordError) RowIndex() int {
	return re.rowIndex
}

// Offset returns the byte offset within the file where the error happened.
func (re *RecordError) Offset() int64 {
	return re.offset
}

// FileName returns the name of the file that was being processed.
func (re *RecordError) FileName() string {
	return re.fileName
}

// Path returns the path of the file that was being processed.
func (re *RecordError) Path() string {
	return re.path
}
