// Package recordpath resolves the concrete filesystem paths a table is made
// of — the main record file, the side-file directory, and the secondary
// index directory — from a single logical table root (§4.1, C1).
package recordpath

import (
	"path/filepath"
	"strconv"

	"github.com/iamNilotpal/rowstore/pkg/options"
)

// MainFile is the fixed name of a table's main record file, relative to the
// table root.
const MainFile = "main.bin"

// dynSubdir and indexSubdir are the fixed names of the side-file and
// secondary-index subdirectories, relative to the table root.
const (
	dynSubdir   = "dyn"
	indexSubdir = "index"
)

// Path identifies one file belonging to a table: the table root directory
// and a path relative to it. It is deliberately a thin value type — callers
// compare and copy it freely.
type Path struct {
	// Dir is the table root directory.
	Dir string

	// Rel is the file's path relative to Dir, e.g. "main.bin" or
	// "dyn/7.bin" or "index/email.bin".
	Rel string

	// Opts carries the table's durability/permission configuration down
	// to field codecs that need it — chiefly the side-file store, which
	// must know whether to fsync and which modes to create dyn/ and its
	// files with. Zero value behaves as options.NewDefaultOptions().
	Opts options.Options
}

// WithOptions returns a copy of p carrying the given table options, used by
// the record-file and table layers to thread their configured Options down
// to every field a row encodes.
func (p Path) WithOptions(o options.Options) Path {
	p.Opts = o
	return p
}

// Options returns the configuration this path was built with, falling back
// to the package defaults if WithOptions was never called — a Path built
// directly via Main/Dyn/Index still behaves sensibly.
func (p Path) Options() options.Options {
	if p.Opts == (options.Options{}) {
		return options.NewDefaultOptions()
	}
	return p.Opts
}

// Main builds the Path for a table's root main record file.
func Main(dir string) Path {
	return Path{Dir: dir, Rel: MainFile}
}

// Dyn builds the Path for the side-file backing dynamic-field id.
func Dyn(dir string, id uint64) Path {
	return Path{Dir: dir, Rel: filepath.Join(dynSubdir, dynFileName(id))}
}

// Index builds the Path for the secondary index file named name.
func Index(dir, name string) Path {
	return Path{Dir: dir, Rel: filepath.Join(indexSubdir, name+".bin")}
}

// Full returns the complete filesystem path D/r.
func (p Path) Full() string {
	return filepath.Join(p.Dir, p.Rel)
}

// Folder returns the directory containing this path: for "main.bin" that's
// Dir itself, for "dyn/7.bin" it's Dir/dyn, for "index/email.bin" it's
// Dir/index.
func (p Path) Folder() string {
	rel := filepath.Dir(p.Rel)
	if rel == "." {
		return p.Dir
	}
	return filepath.Join(p.Dir, rel)
}

// DynDir returns the table's side-file directory, D/dyn.
func (p Path) DynDir() string {
	return filepath.Join(p.Dir, dynSubdir)
}

// IndexDir returns the table's secondary-index directory, D/index.
func (p Path) IndexDir() string {
	return filepath.Join(p.Dir, indexSubdir)
}

// IsRootMain reports whether this path is the table's own root main file,
// as opposed to some other record file opened at this relative name (used
// by §4.4's clear() to decide whether wiping dyn/ in bulk is safe).
func (p Path) IsRootMain() bool {
	return p.Rel == MainFile && p.Folder() == p.Dir
}

// dynFileName formats the side-file's name as decimal ASCII of id (§6).
func dynFileName(id uint64) string {
	return strconv.FormatUint(id, 10) + ".bin"
}
