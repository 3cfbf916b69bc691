package options

import "os"

const (
	// DefaultDirPermissions is applied to the table root, dyn/, and index/
	// directories when this library creates them.
	DefaultDirPermissions os.FileMode = 0755

	// DefaultFilePermissions is applied to main.bin, dyn/<id>.bin, and
	// index/<name>.bin when this library creates them.
	DefaultFilePermissions os.FileMode = 0644
)

// defaultOptions holds the default configuration settings for a table.
var defaultOptions = Options{
	CacheEnabled:    true,
	Fsync:           true,
	DirPermissions:  DefaultDirPermissions,
	FilePermissions: DefaultFilePermissions,
}

// NewDefaultOptions returns a copy of the default table configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
